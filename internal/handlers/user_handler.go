package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	BaseHandler
	userService      services.UserService
	analyticsService services.AnalyticsService
}

func NewUserHandler(userService services.UserService, analyticsService services.AnalyticsService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:      NewBaseHandler(logger),
		userService:      userService,
		analyticsService: analyticsService,
	}
}

// ListUsers lists users, or returns one user when ?id= is given
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	if hasIDQuery(c) {
		h.GetUser(c)
		return
	}

	limit, offset := pagination(c)
	filters := repositories.UserFilters{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  limit,
		Offset: offset,
	}
	if role := c.Query("role"); role != "" {
		userRole := models.UserRole(role)
		filters.Role = &userRole
	}

	users, total, err := h.userService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, users, total)
}

// GetUser retrieves a user by ID
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser creates a new user
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !h.decodeJSON(c, &req, services.CreateUserCodes) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "User created", "user_id", user.ID)
	c.JSON(http.StatusCreated, user)
}

// UpdateUser applies a partial update
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if !h.decodeJSON(c, &req, services.UpdateUserCodes) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user and everything owned by them
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	user, err := h.userService.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "User deleted", "user_id", id)
	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"user":    user,
	})
}

// GetUserPerformance returns the performance statistics of a user
// @Router /users/{id}/performance [get]
func (h *UserHandler) GetUserPerformance(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	stats, err := h.analyticsService.UserPerformance(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
