package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shiftsync/pkg/auth"
	"shiftsync/pkg/models"
)

// ListDrivers returns all drivers, optionally filtered by status or region
func (h *Handler) ListDrivers(c *gin.Context) {
	query := h.DB.Order("name ASC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if region := c.Query("region"); region != "" {
		query = query.Where("region = ?", region)
	}

	var drivers []models.Driver
	if err := query.Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// GetDriver returns one driver
func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var driver models.Driver
	if err := h.DB.First(&driver, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	c.JSON(http.StatusOK, driver)
}

// CreateDriver registers a driver with an initial default password
func (h *Handler) CreateDriver(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Phone       string `json:"phone" binding:"required"`
		Email       string `json:"email"`
		Region      string `json:"region" binding:"required"`
		VehicleType string `json:"vehicle_type"`
		WeeklyOff   string `json:"weekly_off"`
		Password    string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing int64
	h.DB.Model(&models.Driver{}).Where("phone = ?", req.Phone).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone already exists"})
		return
	}

	if req.Password == "" {
		req.Password = "Driver@123"
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	if req.WeeklyOff == "" {
		req.WeeklyOff = "SUNDAY"
	}

	driver := models.Driver{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Region:       req.Region,
		VehicleType:  req.VehicleType,
		Status:       models.DriverActive,
		WeeklyOff:    req.WeeklyOff,
		PasswordHash: hash,
	}

	if err := h.DB.Create(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create driver"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driver_id": driver.DriverID})
}

// UpdateDriver edits driver master data
func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var driver models.Driver
	if err := h.DB.First(&driver, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	var req struct {
		Name        *string              `json:"name"`
		Email       *string              `json:"email"`
		Region      *string              `json:"region"`
		VehicleType *string              `json:"vehicle_type"`
		Status      *models.DriverStatus `json:"status"`
		WeeklyOff   *string              `json:"weekly_off"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Region != nil {
		updates["region"] = *req.Region
	}
	if req.VehicleType != nil {
		updates["vehicle_type"] = *req.VehicleType
	}
	if req.Status != nil {
		if *req.Status != models.DriverActive && *req.Status != models.DriverInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		updates["status"] = *req.Status
	}
	if req.WeeklyOff != nil {
		updates["weekly_off"] = *req.WeeklyOff
	}

	if err := h.DB.Model(&driver).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update driver"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver updated"})
}

// DeleteDriver deactivates a driver instead of removing the row, so
// historical assignments keep their reference
func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res := h.DB.Model(&models.Driver{}).
		Where("driver_id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.DriverInactive,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deactivated"})
}
