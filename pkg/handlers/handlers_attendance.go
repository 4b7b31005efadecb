package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shiftsync/pkg/models"
)

func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn records the authenticated driver's check-in for today and
// maintains the consecutive-days counter: a check-in the day after the
// previous one increments it, anything else resets it to 1.
func (h *Handler) CheckIn(c *gin.Context) {
	driverID := c.GetUint("userID")

	var driver models.Driver
	if err := h.DB.First(&driver, driverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	now := time.Now().UTC()
	today := utcDay(now)

	var attendance models.Attendance
	err := h.DB.Where("driver_id = ? AND date = ?", driverID, today).First(&attendance).Error
	if err == nil && attendance.CheckInTime != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already checked in today"})
		return
	}

	if err != nil {
		attendance = models.Attendance{
			DriverID: driverID,
			Date:     today,
		}
	}
	attendance.CheckInTime = &now

	if err := h.DB.Save(&attendance).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record check-in"})
		return
	}

	yesterday := today.AddDate(0, 0, -1)
	var workedYesterday int64
	h.DB.Model(&models.Attendance{}).
		Where("driver_id = ? AND date = ? AND check_in_time IS NOT NULL", driverID, yesterday).
		Count(&workedYesterday)

	consecutive := 1
	if workedYesterday > 0 {
		consecutive = driver.ConsecutiveDays + 1
	}
	h.DB.Model(&driver).Updates(map[string]interface{}{
		"consecutive_days": consecutive,
		"updated_at":       now,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":          "Checked in",
		"check_in_time":    now,
		"consecutive_days": consecutive,
	})
}

// CheckOut records the authenticated driver's check-out for today
func (h *Handler) CheckOut(c *gin.Context) {
	driverID := c.GetUint("userID")

	now := time.Now().UTC()
	today := utcDay(now)

	var attendance models.Attendance
	err := h.DB.Where("driver_id = ? AND date = ?", driverID, today).First(&attendance).Error
	if err != nil || attendance.CheckInTime == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Not checked in today"})
		return
	}
	if attendance.CheckOutTime != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already checked out today"})
		return
	}

	attendance.CheckOutTime = &now
	if err := h.DB.Save(&attendance).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record check-out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Checked out",
		"check_out_time": now,
	})
}

// ListAttendance returns attendance rows, optionally for one driver or
// one date (YYYY-MM-DD)
func (h *Handler) ListAttendance(c *gin.Context) {
	query := h.DB.Order("date DESC")

	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("date = ?", utcDay(day))
	}

	var rows []models.Attendance
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": rows})
}
