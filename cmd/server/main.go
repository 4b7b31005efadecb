package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"shiftsync/pkg/assignment"
	"shiftsync/pkg/auth"
	"shiftsync/pkg/database"
	"shiftsync/pkg/fatigue"
	"shiftsync/pkg/handlers"
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

	fatigueSvc := fatigue.NewService(db)
	assignSvc := assignment.NewService(db, fatigueSvc)

	h := &handlers.Handler{
		DB:         db,
		Assignment: assignSvc,
		Fatigue:    fatigueSvc,
	}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ShiftSync Dispatch API",
			"version": "1.2.0",
		})
	})

	api := r.Group("/api")

	// Auth
	api.POST("/auth/login", h.Login)
	api.POST("/auth/seed-admin", h.SeedAdmin)
	api.POST("/auth/change-password", h.AuthMiddleware(), h.ChangePassword)
	api.POST("/auth/admin-reset-driver-password", h.AuthMiddleware(), h.RequireRole(auth.RoleAdmin), h.ResetDriverPassword)

	// Driver self-service
	driver := api.Group("/attendance")
	driver.Use(h.AuthMiddleware())
	{
		driver.POST("/check-in", h.CheckIn)
		driver.POST("/check-out", h.CheckOut)
		driver.GET("", h.ListAttendance)
	}

	// Admin endpoints
	admin := api.Group("")
	admin.Use(h.AuthMiddleware(), h.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/drivers", h.ListDrivers)
		admin.POST("/drivers", h.CreateDriver)
		admin.GET("/drivers/:id", h.GetDriver)
		admin.PUT("/drivers/:id", h.UpdateDriver)
		admin.DELETE("/drivers/:id", h.DeleteDriver)

		admin.GET("/loads", h.ListLoads)
		admin.POST("/loads", h.CreateLoad)
		admin.POST("/loads/csv", h.UploadLoadsCSV)
		admin.PATCH("/loads/status/:id", h.UpdateLoadStatus)

		admin.POST("/assignment/recommend", h.Recommend)
		admin.POST("/assignment/assign", h.Assign)
		admin.POST("/assignment/auto-assign", h.AutoAssign)
		admin.POST("/assignment/auto-assign-all", h.AutoAssignAll)
		admin.GET("/assignment/overload/:driverId/:loadId", h.GetOverload)
		admin.GET("/assignment/suitability/:driverId/:loadId", h.GetSuitability)
		admin.GET("/assignment/eligibility/:driverId/:loadId", h.GetEligibility)
		admin.GET("/assignment/list", h.ListAssignments)
		admin.GET("/assignment/stats", h.AssignmentStats)
		admin.PATCH("/assignment/status/:id", h.UpdateAssignmentStatus)

		admin.POST("/fatigue/recompute/:driverId", h.RecomputeFatigue)
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
