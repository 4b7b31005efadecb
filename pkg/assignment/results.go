package assignment

import (
	"time"

	"shiftsync/pkg/models"
)

// Overload status bands.
const (
	OverloadSafe    = "SAFE"
	OverloadWarning = "WARNING"
	OverloadUnsafe  = "UNSAFE"
)

// OverloadResult is the outcome of an overload prediction for a
// (driver, load) pair, with the raw and normalized components kept for
// auditability.
type OverloadResult struct {
	DriverID   uint    `json:"driver_id"`
	DriverName string  `json:"driver_name"`
	LoadID     uint    `json:"load_id"`
	Score      float64 `json:"overload_score"`
	Status     string  `json:"status"`

	CurrentStops    int     `json:"current_stops"`
	CurrentHours    float64 `json:"current_hours"`
	CurrentDistance float64 `json:"current_distance"`

	ProjectedStops    int     `json:"projected_stops"`
	ProjectedHours    float64 `json:"projected_hours"`
	ProjectedDistance float64 `json:"projected_distance"`

	StopsNormalized    float64 `json:"stops_normalized"`
	HoursNormalized    float64 `json:"hours_normalized"`
	DistanceNormalized float64 `json:"distance_normalized"`
}

// SuitabilityResult is the outcome of a suitability computation with the
// component breakdown.
type SuitabilityResult struct {
	DriverID   uint    `json:"driver_id"`
	DriverName string  `json:"driver_name"`
	LoadID     uint    `json:"load_id"`
	Score      float64 `json:"suitability_score"`

	RegionMatch     bool    `json:"region_match"`
	RegionScore     float64 `json:"region_score"`
	WorkloadScore   float64 `json:"workload_score"`
	FatigueScore    float64 `json:"fatigue_score"`
	DistanceScore   float64 `json:"distance_score"`
	RotationPenalty float64 `json:"rotation_penalty"`

	ConsecutiveDays     int     `json:"consecutive_days"`
	CurrentFatigueScore float64 `json:"current_fatigue_score"`
}

// EligibilityResult is the eligibility gate verdict with every failing
// reason joined into Reason.
type EligibilityResult struct {
	DriverID   uint   `json:"driver_id"`
	DriverName string `json:"driver_name"`
	IsEligible bool   `json:"is_eligible"`
	Reason     string `json:"reason"`
}

// DriverRecommendation is one candidate row in a recommendation list.
// Ineligible drivers carry zero scores and the rejection reason.
type DriverRecommendation struct {
	DriverID          uint    `json:"driver_id"`
	DriverName        string  `json:"driver_name"`
	Region            string  `json:"region"`
	VehicleType       string  `json:"vehicle_type"`
	SuitabilityScore  float64 `json:"suitability_score"`
	OverloadScore     float64 `json:"overload_score"`
	OverloadStatus    string  `json:"overload_status"`
	FatigueScore      float64 `json:"fatigue_score"`
	RegionMatch       bool    `json:"region_match"`
	ConsecutiveDays   int     `json:"consecutive_days"`
	IsEligible        bool    `json:"is_eligible"`
	EligibilityReason string  `json:"eligibility_reason"`
}

// Recommendation is the full ranked candidate list for one load.
type Recommendation struct {
	LoadID              uint                   `json:"load_id"`
	LoadRef             string                 `json:"load_ref"`
	LoadRegion          string                 `json:"load_region"`
	LoadStops           int                    `json:"load_stops"`
	LoadEstimatedHours  float64                `json:"load_estimated_hours"`
	LoadPriority        models.LoadPriority    `json:"load_priority"`
	EligibleDriverCount int                    `json:"eligible_driver_count"`
	TotalDriverCount    int                    `json:"total_driver_count"`
	Recommendations     []DriverRecommendation `json:"recommendations"`
	TopRecommendation   *DriverRecommendation  `json:"top_recommendation"`
	GeneratedAt         time.Time              `json:"generated_at"`
}

// Result is the outcome of an assignment attempt. Batch operations return
// one Result per load; Success false with a Message is the expected
// steady-state outcome when no driver is available, not a defect.
type Result struct {
	Success          bool    `json:"success"`
	AssignmentID     uint    `json:"assignment_id,omitempty"`
	LoadID           uint    `json:"load_id"`
	LoadRef          string  `json:"load_ref,omitempty"`
	DriverID         uint    `json:"driver_id,omitempty"`
	DriverName       string  `json:"driver_name,omitempty"`
	SuitabilityScore float64 `json:"suitability_score,omitempty"`
	OverloadScore    float64 `json:"overload_score,omitempty"`
	OverloadStatus   string  `json:"overload_status,omitempty"`
	IsOverride       bool    `json:"is_override,omitempty"`
	Message          string  `json:"message"`
}
