package assignment

import (
	"sort"

	"shiftsync/pkg/models"
)

// AutoAssignBatch assigns many pending loads with fair distribution:
// same-region drivers are preferred, the least fatigued candidate wins,
// and the 3-loads-per-day cap is honored as a soft limit. Loads are
// processed HIGH before MEDIUM before LOW, oldest first within a
// priority. One load's failure never aborts the batch; it is recorded as
// a failure result and processing continues.
func (s *Service) AutoAssignBatch(loadIDs []uint) ([]Result, error) {
	results := []Result{}

	if len(loadIDs) == 0 {
		return results, nil
	}

	var loads []models.Load
	err := s.DB.
		Where("load_id IN ? AND status = ?", loadIDs, models.LoadPending).
		Order("CASE priority WHEN 'HIGH' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END, created_at ASC").
		Find(&loads).Error
	if err != nil {
		return nil, err
	}
	if len(loads) == 0 {
		return results, nil
	}

	var activeDrivers []models.Driver
	if err := s.DB.Where("status = ?", models.DriverActive).Find(&activeDrivers).Error; err != nil {
		return nil, err
	}

	if len(activeDrivers) == 0 {
		for _, load := range loads {
			results = append(results, Result{
				Success: false,
				LoadID:  load.LoadID,
				LoadRef: load.LoadRef,
				Message: "No active drivers available",
			})
		}
		return results, nil
	}

	// Request-local capacity tracker, seeded once. It keeps the batch
	// internally consistent without re-querying per load; assignments
	// made outside this batch while it runs are accepted as stale.
	start, end := s.todayWindow()
	var todayAssignments []models.ShiftAssignment
	err = s.DB.
		Where("assigned_date >= ? AND assigned_date < ? AND status <> ?", start, end, models.AssignmentCompleted).
		Find(&todayAssignments).Error
	if err != nil {
		return nil, err
	}

	activeLoadCounts := make(map[uint]int, len(activeDrivers))
	for _, driver := range activeDrivers {
		activeLoadCounts[driver.DriverID] = 0
	}
	for _, a := range todayAssignments {
		if _, ok := activeLoadCounts[a.DriverID]; ok {
			activeLoadCounts[a.DriverID]++
		}
	}

	for _, load := range loads {
		results = append(results, s.assignOne(load, activeLoadCounts))
	}

	return results, nil
}

// assignOne processes a single load within a batch run, converting any
// failure into a result row.
func (s *Service) assignOne(load models.Load, activeLoadCounts map[uint]int) Result {
	recommendation, err := s.GetRecommendations(load.LoadID)
	if err != nil {
		return Result{Success: false, LoadID: load.LoadID, LoadRef: load.LoadRef, Message: err.Error()}
	}

	var eligible []DriverRecommendation
	for _, r := range recommendation.Recommendations {
		if r.IsEligible {
			eligible = append(eligible, r)
		}
	}

	if len(eligible) == 0 {
		return Result{
			Success: false,
			LoadID:  load.LoadID,
			LoadRef: load.LoadRef,
			Message: "No eligible drivers for this load",
		}
	}

	var sameRegion, crossRegion []DriverRecommendation
	for _, r := range eligible {
		if r.RegionMatch {
			sameRegion = append(sameRegion, r)
		} else {
			crossRegion = append(crossRegion, r)
		}
	}

	chosen := pickBest(sameRegion, activeLoadCounts)
	if chosen == nil {
		chosen = pickBest(crossRegion, activeLoadCounts)
	}
	if chosen == nil {
		return Result{
			Success: false,
			LoadID:  load.LoadID,
			LoadRef: load.LoadRef,
			Message: "No suitable driver found",
		}
	}

	result, err := s.AssignLoad(load.LoadID, chosen.DriverID, false)
	if err != nil {
		return Result{Success: false, LoadID: load.LoadID, LoadRef: load.LoadRef, Message: err.Error()}
	}

	if result.Success {
		activeLoadCounts[chosen.DriverID]++
		if s.Fatigue != nil {
			// Fatigue rises with the new load; later picks in this
			// batch compare against the refreshed score. The
			// assignment stands even if the refresh fails.
			_ = s.Fatigue.Recompute(chosen.DriverID)
		}
	}

	return *result
}

// pickBest chooses the least fatigued candidate, tie-broken by highest
// suitability. Candidates under the daily cap are preferred; when all are
// at capacity the same ordering applies over everyone (soft cap, not a
// hard block).
func pickBest(candidates []DriverRecommendation, activeLoadCounts map[uint]int) *DriverRecommendation {
	if len(candidates) == 0 {
		return nil
	}

	withCapacity := make([]DriverRecommendation, 0, len(candidates))
	for _, r := range candidates {
		if count, ok := activeLoadCounts[r.DriverID]; !ok || count < maxDailyLoads {
			withCapacity = append(withCapacity, r)
		}
	}

	pool := candidates
	if len(withCapacity) > 0 {
		pool = withCapacity
	}

	best := make([]DriverRecommendation, len(pool))
	copy(best, pool)
	sort.SliceStable(best, func(i, j int) bool {
		if best[i].FatigueScore != best[j].FatigueScore {
			return best[i].FatigueScore < best[j].FatigueScore
		}
		return best[i].SuitabilityScore > best[j].SuitabilityScore
	})

	return &best[0]
}
