package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shiftsync/pkg/assignment"
	"shiftsync/pkg/models"
)

// statusFor maps assignment errors to HTTP status codes. The error
// message itself is shown to the caller verbatim.
func statusFor(err error) int {
	switch {
	case errors.Is(err, assignment.ErrDriverNotFound), errors.Is(err, assignment.ErrLoadNotFound):
		return http.StatusNotFound
	case errors.Is(err, assignment.ErrLoadNotPending):
		return http.StatusConflict
	case errors.Is(err, assignment.ErrDriverIneligible), errors.Is(err, assignment.ErrUnsafeOverload):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// GetOverload returns the overload prediction for a driver-load pair
func (h *Handler) GetOverload(c *gin.Context) {
	driverID, ok := parseID(c, "driverId")
	if !ok {
		return
	}
	loadID, ok := parseID(c, "loadId")
	if !ok {
		return
	}

	result, err := h.Assignment.ComputeOverload(driverID, loadID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSuitability returns the suitability score for a driver-load pair
func (h *Handler) GetSuitability(c *gin.Context) {
	driverID, ok := parseID(c, "driverId")
	if !ok {
		return
	}
	loadID, ok := parseID(c, "loadId")
	if !ok {
		return
	}

	result, err := h.Assignment.ComputeSuitability(driverID, loadID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEligibility returns the eligibility gate verdict for a driver,
// optionally against a specific load
func (h *Handler) GetEligibility(c *gin.Context) {
	driverID, ok := parseID(c, "driverId")
	if !ok {
		return
	}
	loadID, ok := parseID(c, "loadId")
	if !ok {
		return
	}

	result, err := h.Assignment.CheckEligibility(driverID, loadID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Recommend returns the ranked driver list for a pending load
func (h *Handler) Recommend(c *gin.Context) {
	var req struct {
		LoadID uint `json:"load_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Assignment.GetRecommendations(req.LoadID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Assign commits a manual driver-load assignment, optionally overriding
// the eligibility gate
func (h *Handler) Assign(c *gin.Context) {
	var req struct {
		LoadID     uint `json:"load_id"`
		DriverID   uint `json:"driver_id"`
		IsOverride bool `json:"is_override"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Assignment.AssignLoad(req.LoadID, req.DriverID, req.IsOverride)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// AutoAssign assigns a single load to the best eligible driver
func (h *Handler) AutoAssign(c *gin.Context) {
	var req struct {
		LoadID uint `json:"load_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Assignment.AutoAssign(req.LoadID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// AutoAssignAll batch-assigns every pending load (or an explicit subset)
func (h *Handler) AutoAssignAll(c *gin.Context) {
	var req struct {
		LoadIDs []uint `json:"load_ids"`
	}
	// Body is optional; an empty body means "all pending loads".
	_ = c.ShouldBindJSON(&req)

	if len(req.LoadIDs) == 0 {
		var pending []models.Load
		if err := h.DB.Where("status = ?", models.LoadPending).Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, load := range pending {
			req.LoadIDs = append(req.LoadIDs, load.LoadID)
		}
	}

	results, err := h.Assignment.AutoAssignBatch(req.LoadIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	assigned := 0
	for _, r := range results {
		if r.Success {
			assigned++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":  results,
		"total":    len(results),
		"assigned": assigned,
		"failed":   len(results) - assigned,
	})
}

// ListAssignments returns assignments, optionally filtered by driver,
// status or date (YYYY-MM-DD)
func (h *Handler) ListAssignments(c *gin.Context) {
	query := h.DB.Preload("Driver").Preload("Load").Order("assigned_date DESC")

	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("DATE(assigned_date) = ?", date)
	}

	var assignments []models.ShiftAssignment
	if err := query.Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// AssignmentStats returns counts by assignment status plus load totals
func (h *Handler) AssignmentStats(c *gin.Context) {
	type statusCount struct {
		Status models.AssignmentStatus `json:"status"`
		Count  int64                   `json:"count"`
	}

	var byStatus []statusCount
	h.DB.Model(&models.ShiftAssignment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus)

	var pendingLoads, assignedLoads int64
	h.DB.Model(&models.Load{}).Where("status = ?", models.LoadPending).Count(&pendingLoads)
	h.DB.Model(&models.Load{}).Where("status = ?", models.LoadAssigned).Count(&assignedLoads)

	var overrides int64
	h.DB.Model(&models.ShiftAssignment{}).Where("is_override = ?", true).Count(&overrides)

	c.JSON(http.StatusOK, gin.H{
		"by_status":      byStatus,
		"pending_loads":  pendingLoads,
		"assigned_loads": assignedLoads,
		"overrides":      overrides,
	})
}

// UpdateAssignmentStatus transitions an assignment (and completes its
// load when the assignment completes)
func (h *Handler) UpdateAssignmentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.AssignmentStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Status {
	case models.AssignmentAssigned, models.AssignmentInProgress, models.AssignmentCompleted, models.AssignmentCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	var a models.ShiftAssignment
	if err := h.DB.First(&a, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	if err := h.DB.Model(&a).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Status == models.AssignmentCompleted {
		h.DB.Model(&models.Load{}).
			Where("load_id = ?", a.LoadID).
			Update("status", models.LoadCompleted)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment status updated"})
}

// RecomputeFatigue triggers a fatigue recomputation for one driver
func (h *Handler) RecomputeFatigue(c *gin.Context) {
	driverID, ok := parseID(c, "driverId")
	if !ok {
		return
	}

	if err := h.Fatigue.Recompute(driverID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var driver models.Driver
	h.DB.First(&driver, driverID)
	c.JSON(http.StatusOK, gin.H{
		"driver_id":     driver.DriverID,
		"fatigue_score": driver.FatigueScore,
	})
}
