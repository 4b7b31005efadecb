package assignment

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shiftsync/pkg/database"
	"shiftsync/pkg/models"
)

// Monday, so a SUNDAY weekly off never trips the gate by accident.
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

var seedSeq atomic.Uint64

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("could not migrate test schema: %v", err)
	}

	s := NewService(db, nil)
	s.Now = func() time.Time { return testNow }
	return s
}

func seedDriver(t *testing.T, s *Service, driver models.Driver) models.Driver {
	t.Helper()

	if driver.Name == "" {
		driver.Name = "Test Driver"
	}
	if driver.Phone == "" {
		driver.Phone = fmt.Sprintf("9%09d", seedSeq.Add(1))
	}
	if driver.Region == "" {
		driver.Region = "North"
	}
	if driver.Status == "" {
		driver.Status = models.DriverActive
	}
	if driver.WeeklyOff == "" {
		driver.WeeklyOff = "SUNDAY"
	}
	if err := s.DB.Create(&driver).Error; err != nil {
		t.Fatalf("could not seed driver: %v", err)
	}
	return driver
}

func seedLoad(t *testing.T, s *Service, load models.Load) models.Load {
	t.Helper()

	if load.LoadRef == "" {
		load.LoadRef = fmt.Sprintf("LD-%d", seedSeq.Add(1))
	}
	if load.Region == "" {
		load.Region = "North"
	}
	if load.Priority == "" {
		load.Priority = models.PriorityMedium
	}
	if load.Status == "" {
		load.Status = models.LoadPending
	}
	if err := s.DB.Create(&load).Error; err != nil {
		t.Fatalf("could not seed load: %v", err)
	}
	return load
}

func checkInToday(t *testing.T, s *Service, driverID uint) {
	t.Helper()

	start, _ := s.todayWindow()
	checkIn := start.Add(8 * time.Hour)
	attendance := models.Attendance{
		DriverID:    driverID,
		Date:        start,
		CheckInTime: &checkIn,
	}
	if err := s.DB.Create(&attendance).Error; err != nil {
		t.Fatalf("could not seed attendance: %v", err)
	}
}

// eligibleDriver seeds an active, rested, checked-in driver.
func eligibleDriver(t *testing.T, s *Service, mutate func(*models.Driver)) models.Driver {
	t.Helper()

	driver := models.Driver{}
	if mutate != nil {
		mutate(&driver)
	}
	driver = seedDriver(t, s, driver)
	checkInToday(t, s, driver.DriverID)
	return driver
}
