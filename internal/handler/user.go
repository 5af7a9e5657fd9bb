package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/middleware"
	"collabhub/internal/model"
	"collabhub/internal/service"
)

// UserHandler handles provisioning and user endpoints
type UserHandler struct {
	users  *service.UserService
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// Provision handles POST /api/provision. Idempotent: repeated calls leave
// exactly one super admin in place.
func (h *UserHandler) Provision(c *gin.Context) {
	admin, created, err := h.users.ProvisionSuperAdmin(c.Request.Context())
	if err != nil {
		h.logger.Error("provisioning failed", zap.Error(err))
		respondError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, model.NewSuccessResponse("Super admin provisioned", admin.ToResponse()))
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Super admin already provisioned", admin.ToResponse()))
}

// CreateCompanyAdmin handles POST /api/company-admins
func (h *UserHandler) CreateCompanyAdmin(c *gin.Context) {
	var req model.CreateCompanyAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	admin, err := h.users.CreateCompanyAdmin(c.Request.Context(), middleware.Actor(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Company admin created", admin.ToResponse()))
}

// CreateEmployee handles POST /api/employees
func (h *UserHandler) CreateEmployee(c *gin.Context) {
	var req model.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employee, err := h.users.CreateEmployee(c.Request.Context(), middleware.Actor(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Employee created", employee.ToResponse()))
}

// Get handles GET /api/employees/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", user.ToResponse()))
}

// UpdateEmployee handles PATCH /api/employees/:id
func (h *UserHandler) UpdateEmployee(c *gin.Context) {
	var req model.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employee, err := h.users.UpdateEmployee(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Employee updated", employee.ToResponse()))
}

// DeleteEmployee handles DELETE /api/employees/:id
func (h *UserHandler) DeleteEmployee(c *gin.Context) {
	if err := h.users.DeleteEmployee(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Employee deleted", nil))
}
