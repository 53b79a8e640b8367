package planner

// parseRequirementsPrompt turns the manager's free-text staffing statement
// into a structured weekly demand table.
const parseRequirementsPrompt = `Analyze the following restaurant staffing requirements and convert them into a structured JSON object representing the demand for each role, in each shift (lunch and dinner), for each day of the week (monday to sunday).

Requirements:
"%s"

Instructions:
1. Interpret phrases like "weekends" as saturday and sunday.
2. If a role is not mentioned for a specific shift, set its value to 0.
3. The result must be only a JSON object that follows the provided schema. Do not include explanations.`

// generateSchedulePrompt asks the model to draft the full weekly schedule
// from the roster and the requirements text.
const generateSchedulePrompt = `You are an expert restaurant manager tasked with creating a fair and balanced weekly schedule for the employees.

Based on the following list of employees, their roles, availability and unique IDs, together with the shift requirements, generate a complete schedule for the week (monday to sunday).

Employees:
%s

Shift requirements:
%s

Important considerations:
1. For each shift, define a 'start_time' and 'end_time' in HH:MM format (e.g. '12:00', '16:00'). The lunch shift usually runs 12:00 to 16:00 and the dinner shift 19:00 to 23:00, but you may adjust when necessary.
2. In the shift 'employees' structure, use the employee's numeric 'id', not their name.
3. Respect each employee's availability as strictly as possible.
4. Distribute shifts evenly to avoid burnout.
5. Make sure every required role for each shift is covered.
6. The result must be a JSON object that strictly follows the provided schema. Do not include any additional explanation, only the JSON.
7. For any shift or role with no employee assigned, return an empty array [].`
