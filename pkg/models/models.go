package models

import "time"

// DriverStatus is the lifecycle state of a driver.
type DriverStatus string

const (
	DriverActive   DriverStatus = "ACTIVE"
	DriverInactive DriverStatus = "INACTIVE"
)

// LoadStatus is the lifecycle state of a delivery load.
type LoadStatus string

const (
	LoadPending    LoadStatus = "PENDING"
	LoadAssigned   LoadStatus = "ASSIGNED"
	LoadInProgress LoadStatus = "IN_PROGRESS"
	LoadCompleted  LoadStatus = "COMPLETED"
)

// LoadPriority orders loads for batch assignment.
type LoadPriority string

const (
	PriorityHigh   LoadPriority = "HIGH"
	PriorityMedium LoadPriority = "MEDIUM"
	PriorityLow    LoadPriority = "LOW"
)

// Rank maps priorities to a sortable position, HIGH first.
func (p LoadPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// AssignmentStatus is the lifecycle state of a shift assignment.
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "ASSIGNED"
	AssignmentInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentCompleted  AssignmentStatus = "COMPLETED"
	AssignmentCancelled  AssignmentStatus = "CANCELLED"
)

// Driver represents the drivers table
type Driver struct {
	DriverID           uint         `gorm:"primaryKey;column:driver_id" json:"driver_id"`
	Name               string       `gorm:"not null" json:"name"`
	Phone              string       `gorm:"uniqueIndex;not null" json:"phone"`
	Email              string       `gorm:"index" json:"email"`
	Region             string       `gorm:"not null" json:"region"`
	VehicleType        string       `json:"vehicle_type"`
	Status             DriverStatus `gorm:"default:ACTIVE" json:"status"`
	WeeklyOff          string       `gorm:"default:SUNDAY" json:"weekly_off"`
	FatigueScore       float64      `gorm:"default:0" json:"fatigue_score"`
	ConsecutiveDays    int          `gorm:"default:0" json:"consecutive_days"`
	LastAssignmentDate *time.Time   `json:"last_assignment_date"`
	PasswordHash       string       `json:"-"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Load represents the loads table
type Load struct {
	LoadID            uint         `gorm:"primaryKey;column:load_id" json:"load_id"`
	LoadRef           string       `gorm:"uniqueIndex;not null" json:"load_ref"`
	Region            string       `gorm:"not null" json:"region"`
	Stops             int          `gorm:"default:0" json:"stops"`
	EstimatedHours    float64      `gorm:"default:0" json:"estimated_hours"`
	EstimatedDistance float64      `gorm:"default:0" json:"estimated_distance"`
	Priority          LoadPriority `gorm:"default:MEDIUM" json:"priority"`
	Status            LoadStatus   `gorm:"default:PENDING" json:"status"`
	AssignedDriverID  *uint        `json:"assigned_driver_id"`
	AssignedAt        *time.Time   `json:"assigned_at"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// ShiftAssignment represents the shift_assignments table.
// Scores are frozen at assignment time; a new load means a new row.
type ShiftAssignment struct {
	AssignmentID     uint             `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	DriverID         uint             `gorm:"index;not null" json:"driver_id"`
	LoadID           uint             `gorm:"index;not null" json:"load_id"`
	LoadRef          string           `json:"load_ref"`
	AssignedDate     time.Time        `gorm:"index" json:"assigned_date"`
	Status           AssignmentStatus `gorm:"default:ASSIGNED" json:"status"`
	SuitabilityScore float64          `json:"suitability_score"`
	OverloadScore    float64          `json:"overload_score"`
	IsOverride       bool             `gorm:"default:false" json:"is_override"`
	CreatedAt        time.Time        `json:"created_at"`

	Driver *Driver `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Load   *Load   `gorm:"foreignKey:LoadID" json:"load,omitempty"`
}

// Attendance represents the attendances table, one row per driver per UTC day
type Attendance struct {
	AttendanceID uint       `gorm:"primaryKey;column:attendance_id" json:"attendance_id"`
	DriverID     uint       `gorm:"uniqueIndex:idx_driver_date;not null" json:"driver_id"`
	Date         time.Time  `gorm:"uniqueIndex:idx_driver_date;not null" json:"date"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AdminUser represents the admin_users table
type AdminUser struct {
	AdminID      uint       `gorm:"primaryKey;column:admin_id" json:"admin_id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `json:"full_name"`
	Role         string     `gorm:"default:ADMIN" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}
