package handlers

import (
	"encoding/csv"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shiftsync/pkg/models"
)

// newLoadRef generates a display reference code for a load
func newLoadRef() string {
	return "LD-" + strings.ToUpper(uuid.NewString()[:8])
}

// ListLoads returns loads, optionally filtered by status, region or priority
func (h *Handler) ListLoads(c *gin.Context) {
	query := h.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if region := c.Query("region"); region != "" {
		query = query.Where("region = ?", region)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var loads []models.Load
	if err := query.Find(&loads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loads": loads})
}

// CreateLoad registers a pending load, generating a reference code when
// none is supplied
func (h *Handler) CreateLoad(c *gin.Context) {
	var req struct {
		LoadRef           string              `json:"load_ref"`
		Region            string              `json:"region" binding:"required"`
		Stops             int                 `json:"stops"`
		EstimatedHours    float64             `json:"estimated_hours"`
		EstimatedDistance float64             `json:"estimated_distance"`
		Priority          models.LoadPriority `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.LoadRef == "" {
		req.LoadRef = newLoadRef()
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	switch req.Priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		return
	}

	load := models.Load{
		LoadRef:           req.LoadRef,
		Region:            req.Region,
		Stops:             req.Stops,
		EstimatedHours:    req.EstimatedHours,
		EstimatedDistance: req.EstimatedDistance,
		Priority:          req.Priority,
		Status:            models.LoadPending,
	}

	if err := h.DB.Create(&load).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create load"})
		return
	}
	c.JSON(http.StatusCreated, load)
}

// UploadLoadsCSV bulk-imports pending loads from a CSV file with columns
// load_ref, region, stops, estimated_hours, estimated_distance, priority
func (h *Handler) UploadLoadsCSV(c *gin.Context) {
	file, err := c.FormFile("loads_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "loads_file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open loads file"})
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read loads header"})
		return
	}
	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := cols["region"]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "region column is required"})
		return
	}

	field := func(record []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	created := 0
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		region := field(record, "region")
		if region == "" {
			skipped++
			continue
		}

		loadRef := field(record, "load_ref")
		if loadRef == "" {
			loadRef = newLoadRef()
		}

		stops, _ := strconv.Atoi(field(record, "stops"))
		hours, _ := strconv.ParseFloat(field(record, "estimated_hours"), 64)
		distance, _ := strconv.ParseFloat(field(record, "estimated_distance"), 64)

		priority := models.LoadPriority(strings.ToUpper(field(record, "priority")))
		switch priority {
		case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		default:
			priority = models.PriorityMedium
		}

		load := models.Load{
			LoadRef:           loadRef,
			Region:            region,
			Stops:             stops,
			EstimatedHours:    hours,
			EstimatedDistance: distance,
			Priority:          priority,
			Status:            models.LoadPending,
		}
		if err := h.DB.Create(&load).Error; err != nil {
			skipped++
			continue
		}
		created++
	}

	c.JSON(http.StatusOK, gin.H{"created": created, "skipped": skipped})
}

// UpdateLoadStatus transitions a load between non-assignment states.
// PENDING to ASSIGNED goes exclusively through the assignment engine.
func (h *Handler) UpdateLoadStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.LoadStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Status {
	case models.LoadInProgress, models.LoadCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be IN_PROGRESS or COMPLETED"})
		return
	}

	var load models.Load
	if err := h.DB.First(&load, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
		return
	}
	if load.Status == models.LoadPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Load has not been assigned yet"})
		return
	}

	if err := h.DB.Model(&load).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Load status updated"})
}
