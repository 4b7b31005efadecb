package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftsync/pkg/assignment"
	"shiftsync/pkg/auth"
	"shiftsync/pkg/fatigue"
	"shiftsync/pkg/models"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB         *gorm.DB
	Assignment *assignment.Service
	Fatigue    *fatigue.Service
}

// AuthMiddleware verifies the JWT token on protected routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole aborts requests whose token does not carry the given role
func (h *Handler) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Login authenticates an admin (username or email) or a driver (phone or
// email) and returns a bearer token
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var admin models.AdminUser
	err := h.DB.Where("username = ? OR email = ?", req.Username, req.Username).First(&admin).Error
	if err == nil && auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		token, err := auth.CreateToken(admin.AdminID, admin.Username, admin.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
			return
		}

		now := time.Now().UTC()
		h.DB.Model(&admin).Update("last_login", now)

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":    admin.AdminID,
				"name":  admin.FullName,
				"role":  admin.Role,
				"email": admin.Email,
			},
		})
		return
	}

	var driver models.Driver
	err = h.DB.Where("phone = ? OR email = ?", req.Username, req.Username).First(&driver).Error
	if err == nil && driver.PasswordHash != "" && auth.CheckPasswordHash(req.Password, driver.PasswordHash) {
		token, err := auth.CreateToken(driver.DriverID, driver.Name, auth.RoleDriver)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":    driver.DriverID,
				"name":  driver.Name,
				"role":  auth.RoleDriver,
				"email": driver.Email,
			},
		})
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
}

// SeedAdmin creates an admin account when none exists yet (bootstrap
// helper, mirrors the startup env-based seeding)
func (h *Handler) SeedAdmin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing int64
	h.DB.Model(&models.AdminUser{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	if req.FullName == "" {
		req.FullName = req.Username
	}

	admin := models.AdminUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         auth.RoleAdmin,
		IsActive:     true,
	}
	if err := h.DB.Create(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create admin"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"admin_id": admin.AdminID})
}

// ChangePassword lets the authenticated driver rotate their own password
func (h *Handler) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driverID := c.GetUint("userID")
	var driver models.Driver
	if err := h.DB.First(&driver, driverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	if driver.PasswordHash == "" || !auth.CheckPasswordHash(req.OldPassword, driver.PasswordHash) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect current password"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	h.DB.Model(&driver).Updates(map[string]interface{}{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// ResetDriverPassword lets an admin reset a driver's password
func (h *Handler) ResetDriverPassword(c *gin.Context) {
	var req struct {
		DriverID    uint   `json:"driver_id"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.NewPassword == "" {
		req.NewPassword = "Driver@123"
	}

	var driver models.Driver
	if err := h.DB.First(&driver, req.DriverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	h.DB.Model(&driver).Updates(map[string]interface{}{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Driver password reset"})
}
