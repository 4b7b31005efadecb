package assignment

import (
	"testing"
	"time"

	"shiftsync/pkg/models"
)

type stubFatigue struct {
	calls []uint
}

func (f *stubFatigue) Recompute(driverID uint) error {
	f.calls = append(f.calls, driverID)
	return nil
}

func TestAutoAssignBatch_EmptyInput(t *testing.T) {
	s := newTestService(t)

	results, err := s.AutoAssignBatch(nil)
	if err != nil {
		t.Fatalf("AutoAssignBatch failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results for empty input, got %d", len(results))
	}
}

func TestAutoAssignBatch_NoActiveDrivers(t *testing.T) {
	s := newTestService(t)
	seedDriver(t, s, models.Driver{Status: models.DriverInactive})
	load := seedLoad(t, s, models.Load{})

	results, err := s.AutoAssignBatch([]uint{load.LoadID})
	if err != nil {
		t.Fatalf("AutoAssignBatch failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Success {
		t.Error("Expected failure result")
	}
	if results[0].LoadID != load.LoadID || results[0].Message != "No active drivers available" {
		t.Errorf("Unexpected result: %+v", results[0])
	}

	var reloaded models.Load
	s.DB.First(&reloaded, load.LoadID)
	if reloaded.Status != models.LoadPending {
		t.Errorf("Load must stay PENDING, got %s", reloaded.Status)
	}
	var count int64
	s.DB.Model(&models.ShiftAssignment{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected zero store mutations, got %d assignment rows", count)
	}
}

func TestAutoAssignBatch_PriorityBeforeAge(t *testing.T) {
	s := newTestService(t)
	driver := eligibleDriver(t, s, nil)
	fatigue := &stubFatigue{}
	s.Fatigue = fatigue

	// The MEDIUM load is a day older, but HIGH goes first.
	high := seedLoad(t, s, models.Load{
		Region:         "North",
		Stops:          5,
		EstimatedHours: 1,
		Priority:       models.PriorityHigh,
		CreatedAt:      testNow,
	})
	medium := seedLoad(t, s, models.Load{
		Region:         "North",
		Stops:          5,
		EstimatedHours: 1,
		Priority:       models.PriorityMedium,
		CreatedAt:      testNow.AddDate(0, 0, -1),
	})

	results, err := s.AutoAssignBatch([]uint{medium.LoadID, high.LoadID})
	if err != nil {
		t.Fatalf("AutoAssignBatch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if results[0].LoadID != high.LoadID {
		t.Errorf("HIGH priority must be processed first, got load %d", results[0].LoadID)
	}
	if results[1].LoadID != medium.LoadID {
		t.Errorf("MEDIUM priority must be processed second, got load %d", results[1].LoadID)
	}
	for _, r := range results {
		if !r.Success {
			t.Errorf("Expected success for load %d, got: %s", r.LoadID, r.Message)
		}
		if r.DriverID != driver.DriverID {
			t.Errorf("Expected both loads on driver %d, got %d", driver.DriverID, r.DriverID)
		}
	}

	// Fatigue recomputation fires once per successful assignment.
	if len(fatigue.calls) != 2 {
		t.Errorf("Expected 2 fatigue recomputations, got %d", len(fatigue.calls))
	}

	var count int64
	s.DB.Model(&models.ShiftAssignment{}).Where("driver_id = ?", driver.DriverID).Count(&count)
	if count != 2 {
		t.Errorf("Expected 2 assignment rows for the driver, got %d", count)
	}
}

func TestAutoAssignBatch_AgeBreaksPriorityTies(t *testing.T) {
	s := newTestService(t)
	eligibleDriver(t, s, nil)

	older := seedLoad(t, s, models.Load{
		Priority:  models.PriorityHigh,
		CreatedAt: testNow.Add(-2 * time.Hour),
	})
	newer := seedLoad(t, s, models.Load{
		Priority:  models.PriorityHigh,
		CreatedAt: testNow.Add(-1 * time.Hour),
	})

	results, err := s.AutoAssignBatch([]uint{newer.LoadID, older.LoadID})
	if err != nil {
		t.Fatalf("AutoAssignBatch failed: %v", err)
	}
	if len(results) != 2 || results[0].LoadID != older.LoadID {
		t.Errorf("Oldest load must go first within a priority, got %+v", results)
	}
}

func TestAutoAssignBatch_PrefersSameRegion(t *testing.T) {
	s := newTestService(t)
	// The cross-region driver is better rested, but region wins.
	eligibleDriver(t, s, func(d *models.Driver) {
		d.Phone = "9111111111"
		d.Region = "South"
		d.FatigueScore = 5
	})
	local := eligibleDriver(t, s, func(d *models.Driver) {
		d.Phone = "9222222222"
		d.Region = "North"
		d.FatigueScore = 40
	})
	load := seedLoad(t, s, models.Load{Region: "North", Stops: 5, EstimatedHours: 1})

	results, err := s.AutoAssignBatch([]uint{load.LoadID})
	if err != nil {
		t.Fatalf("AutoAssignBatch failed: %v", err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("Expected one successful result, got %+v", results)
	}
	if results[0].DriverID != local.DriverID {
		t.Errorf("Same-region driver must be preferred, got driver %d", results[0].DriverID)
	}
}

func TestAutoAssignBatch_PicksLeastFatigued(t *testing.T) {
	s := newTestService(t)
	rested := eligibleDriver(t, s, func(d *models.Driver) {
		d.Phone = "9111111111"
		d.FatigueScore = 10
	})
	eligibleDriver(t, s, func(d *models.Driver) {
		d.Phone = "9222222222"
		d.FatigueScore = 70
	})
	load := seedLoad(t, s, models.Load{Stops: 5, EstimatedHours: 1})

	results, err := s.AutoAssignBatch([]uint{load.LoadID})
	if err != nil {
		t.Fatalf("AutoAssignBatch failed: %v", err)
	}
	if results[0].DriverID != rested.DriverID {
		t.Errorf("Least fatigued driver must win, got driver %d", results[0].DriverID)
	}
}

func TestAutoAssignBatch_IsolatesPerLoadFailures(t *testing.T) {
	s := newTestService(t)
	eligibleDriver(t, s, nil)

	ok1 := seedLoad(t, s, models.Load{
		Priority:       models.PriorityHigh,
		Stops:          5,
		EstimatedHours: 1,
		CreatedAt:      testNow.Add(-3 * time.Hour),
	})
	// Unsafe for every driver, so the gate rejects it.
	unsafe := seedLoad(t, s, models.Load{
		Priority:          models.PriorityHigh,
		Stops:             60,
		EstimatedHours:    10,
		EstimatedDistance: 200,
		CreatedAt:         testNow.Add(-2 * time.Hour),
	})
	ok2 := seedLoad(t, s, models.Load{
		Priority:       models.PriorityHigh,
		Stops:          5,
		EstimatedHours: 1,
		CreatedAt:      testNow.Add(-1 * time.Hour),
	})

	results, err := s.AutoAssignBatch([]uint{ok1.LoadID, unsafe.LoadID, ok2.LoadID})
	if err != nil {
		t.Fatalf("AutoAssignBatch failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	if !results[0].Success || results[0].LoadID != ok1.LoadID {
		t.Errorf("First load should assign: %+v", results[0])
	}
	if results[1].Success || results[1].LoadID != unsafe.LoadID {
		t.Errorf("Unsafe load should fail: %+v", results[1])
	}
	if results[1].Message != "No eligible drivers for this load" {
		t.Errorf("Unexpected failure message: %s", results[1].Message)
	}
	if !results[2].Success || results[2].LoadID != ok2.LoadID {
		t.Errorf("A failed load must not abort the batch: %+v", results[2])
	}
}

func TestAutoAssignBatch_SoftCapFallback(t *testing.T) {
	s := newTestService(t)
	driver := eligibleDriver(t, s, nil)

	// Four small loads against a single driver: the third hits the
	// tracked cap, and the fourth only assigns through the soft-cap
	// fallback — but by then the store-side gate count is 3, so it is
	// rejected there instead.
	var ids []uint
	for i := 0; i < 4; i++ {
		load := seedLoad(t, s, models.Load{
			Stops:          2,
			EstimatedHours: 0.5,
			CreatedAt:      testNow.Add(time.Duration(i) * time.Minute),
		})
		ids = append(ids, load.LoadID)
	}

	results, err := s.AutoAssignBatch(ids)
	if err != nil {
		t.Fatalf("AutoAssignBatch failed: %v", err)
	}

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
			if r.DriverID != driver.DriverID {
				t.Errorf("Expected driver %d, got %d", driver.DriverID, r.DriverID)
			}
		}
	}
	if succeeded != 3 {
		t.Errorf("Expected exactly 3 assignments before the gate blocks, got %d", succeeded)
	}
	if results[3].Success {
		t.Error("Fourth load must fail once the driver holds 3 active loads")
	}
}
