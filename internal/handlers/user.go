package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaydipchangani/project-management-backend/internal/dto"
	apierrors "github.com/jaydipchangani/project-management-backend/internal/errors"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/services"
	"github.com/jaydipchangani/project-management-backend/internal/utils"
)

// UserHandler serves the user administration endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns users matching the query parameters
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := h.userService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.List(dto.Map(page.Items, dto.ToUserDTO), page.Page, page.Total))
}

// GetUser returns a user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToUserDTO(*user)))
}

// UpdateUser changes a user's name, email or role
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		Name  *string `json:"name"`
		Email *string `json:"email" binding:"omitempty,email"`
		Role  *string `json:"role"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateUserInput{Name: req.Name, Email: req.Email}
	if req.Role != nil {
		role, err := models.ParseRole(*req.Role)
		if err != nil {
			apierrors.Validation(c, err.Error(), gin.H{"allowed": models.Roles})
			return
		}
		input.Role = &role
	}

	user, err := h.userService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "User updated successfully", Data: dto.ToUserDTO(*user)})
}

// DeleteUser soft deletes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "User deleted successfully"})
}
