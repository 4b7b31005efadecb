package assignment

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shiftsync/pkg/models"
)

// AssignLoad commits a single driver-load assignment. Unless isOverride,
// the eligibility gate and the overload prediction both have to clear.
// The assignment row, the load status flip and the driver stamp commit as
// one transaction; the status flip is conditional on the load still being
// PENDING so two concurrent calls cannot both win.
func (s *Service) AssignLoad(loadID, driverID uint, isOverride bool) (*Result, error) {
	var load models.Load
	if err := s.DB.First(&load, loadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	var driver models.Driver
	if err := s.DB.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}

	if load.Status != models.LoadPending {
		return nil, fmt.Errorf("%w (current status: %s)", ErrLoadNotPending, load.Status)
	}

	if !isOverride {
		eligibility, err := s.CheckEligibility(driverID, loadID)
		if err != nil {
			return nil, err
		}
		if !eligibility.IsEligible {
			return nil, fmt.Errorf("%w: %s", ErrDriverIneligible, eligibility.Reason)
		}
	}

	suitability, err := s.ComputeSuitability(driverID, loadID)
	if err != nil {
		return nil, err
	}
	overload, err := s.ComputeOverload(driverID, loadID)
	if err != nil {
		return nil, err
	}

	if !isOverride && overload.Status == OverloadUnsafe {
		return nil, ErrUnsafeOverload
	}

	now := s.Now().UTC()
	assignment := models.ShiftAssignment{
		DriverID:         driverID,
		LoadID:           loadID,
		LoadRef:          load.LoadRef,
		AssignedDate:     now,
		Status:           models.AssignmentAssigned,
		SuitabilityScore: suitability.Score,
		OverloadScore:    overload.Score,
		IsOverride:       isOverride,
		CreatedAt:        now,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Conditional flip keyed on status keeps a second concurrent
		// assignment of the same load from committing.
		res := tx.Model(&models.Load{}).
			Where("load_id = ? AND status = ?", loadID, models.LoadPending).
			Updates(map[string]interface{}{
				"status":             models.LoadAssigned,
				"assigned_driver_id": driverID,
				"assigned_at":        now,
				"updated_at":         now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w (claimed concurrently)", ErrLoadNotPending)
		}

		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Driver{}).
			Where("driver_id = ?", driverID).
			Updates(map[string]interface{}{
				"last_assignment_date": now,
				"updated_at":           now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	message := "Load assigned successfully"
	if isOverride {
		message = "Load assigned with admin override"
	}

	return &Result{
		Success:          true,
		AssignmentID:     assignment.AssignmentID,
		LoadID:           loadID,
		LoadRef:          load.LoadRef,
		DriverID:         driverID,
		DriverName:       driver.Name,
		SuitabilityScore: suitability.Score,
		OverloadScore:    overload.Score,
		OverloadStatus:   overload.Status,
		IsOverride:       isOverride,
		Message:          message,
	}, nil
}

// AutoAssign assigns the load to the top recommended driver. Having no
// eligible driver is an expected outcome and comes back as a failure
// result, not an error.
func (s *Service) AutoAssign(loadID uint) (*Result, error) {
	recommendation, err := s.GetRecommendations(loadID)
	if err != nil {
		return nil, err
	}

	if recommendation.TopRecommendation == nil {
		return &Result{
			Success: false,
			LoadID:  loadID,
			LoadRef: recommendation.LoadRef,
			Message: "No eligible drivers available for this load",
		}, nil
	}

	return s.AssignLoad(loadID, recommendation.TopRecommendation.DriverID, false)
}
