package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/capileggi/horarios-api/pkg/auth"
	"github.com/capileggi/horarios-api/pkg/database"
	"github.com/capileggi/horarios-api/pkg/handlers"
	"github.com/capileggi/horarios-api/pkg/planner"
	"github.com/capileggi/horarios-api/pkg/session"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	gemini := planner.NewGeminiClient(
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("GEMINI_BASE_URL"),
		os.Getenv("GEMINI_MODEL"),
		nil,
	)

	h := &handlers.Handler{
		DB:       db,
		Sessions: session.NewStore(),
		Planner:  gemini,
	}

	r := gin.Default()

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Restaurant Staff-Scheduling API",
			"version": "1.0.0",
		})
	})

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Scheduling Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions/:id", h.GetSession)

		api.POST("/sessions/:id/employees", h.AddEmployee)
		api.PUT("/sessions/:id/employees/:eid", h.UpdateEmployee)
		api.DELETE("/sessions/:id/employees/:eid", h.RemoveEmployee)

		api.PUT("/sessions/:id/requirements", h.UpdateRequirements)
		api.POST("/sessions/:id/generate", h.GenerateSchedule)

		api.POST("/sessions/:id/schedule/move", h.MoveAssignment)
		api.POST("/sessions/:id/schedule/remove", h.RemoveAssignment)
		api.POST("/sessions/:id/schedule/window", h.SetShiftWindow)
		api.POST("/sessions/:id/schedule/participation", h.SetParticipation)

		api.GET("/sessions/:id/hours", h.GetHours)
		api.GET("/sessions/:id/hours/csv", h.GetHoursCSV)
		api.GET("/sessions/:id/staffing", h.GetStaffing)

		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
