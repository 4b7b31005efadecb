// Command seed populates the database with demo drivers, pending loads
// and today's attendance so the assignment engine has something to chew
// on during local development.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"shiftsync/pkg/auth"
	"shiftsync/pkg/database"
	"shiftsync/pkg/models"
)

func main() {
	_ = godotenv.Load("../.env")
	_ = godotenv.Load(".env")

	db := database.InitDB()
	if err := auth.EnsureAdminExists(db); err != nil {
		log.Fatalf("could not seed admin: %v", err)
	}

	password, err := auth.HashPassword("Driver@123")
	if err != nil {
		log.Fatalf("could not hash default password: %v", err)
	}

	drivers := []models.Driver{
		{Name: "Asha Pillai", Phone: "9000000001", Email: "asha@shiftsync.local", Region: "North", VehicleType: "VAN", WeeklyOff: "SUNDAY"},
		{Name: "Ben Okafor", Phone: "9000000002", Email: "ben@shiftsync.local", Region: "North", VehicleType: "TRUCK", WeeklyOff: "MONDAY"},
		{Name: "Carla Reyes", Phone: "9000000003", Email: "carla@shiftsync.local", Region: "South", VehicleType: "VAN", WeeklyOff: "SATURDAY"},
		{Name: "Dev Sharma", Phone: "9000000004", Email: "dev@shiftsync.local", Region: "East", VehicleType: "BIKE", WeeklyOff: "SUNDAY"},
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for i := range drivers {
		drivers[i].Status = models.DriverActive
		drivers[i].PasswordHash = password
		if err := db.Where("phone = ?", drivers[i].Phone).FirstOrCreate(&drivers[i]).Error; err != nil {
			log.Fatalf("could not seed driver %s: %v", drivers[i].Name, err)
		}

		checkIn := today.Add(8 * time.Hour)
		attendance := models.Attendance{
			DriverID:    drivers[i].DriverID,
			Date:        today,
			CheckInTime: &checkIn,
		}
		db.Where("driver_id = ? AND date = ?", drivers[i].DriverID, today).FirstOrCreate(&attendance)
	}

	regions := []string{"North", "North", "South", "East", "West"}
	priorities := []models.LoadPriority{
		models.PriorityHigh, models.PriorityMedium, models.PriorityHigh,
		models.PriorityLow, models.PriorityMedium,
	}

	created := 0
	for i, region := range regions {
		load := models.Load{
			LoadRef:           "LD-" + strings.ToUpper(uuid.NewString()[:8]),
			Region:            region,
			Stops:             8 + 3*i,
			EstimatedHours:    1.5 + 0.5*float64(i),
			EstimatedDistance: 25 + 10*float64(i),
			Priority:          priorities[i],
			Status:            models.LoadPending,
		}
		if err := db.Create(&load).Error; err != nil {
			log.Fatalf("could not seed load: %v", err)
		}
		created++
	}

	fmt.Printf("Seeded %d drivers and %d pending loads\n", len(drivers), created)
	os.Exit(0)
}
