package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/middleware"
	"collabhub/internal/model"
	"collabhub/internal/service"
)

// CompanyHandler handles tenant endpoints
type CompanyHandler struct {
	companies *service.CompanyService
	logger    *zap.Logger
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companies *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{companies: companies, logger: logger}
}

// Create handles POST /api/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	var req model.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	company, err := h.companies.Create(c.Request.Context(), middleware.Actor(c), &req)
	if err != nil {
		h.logger.Warn("create company failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Company created", company.ToResponse()))
}

// Get handles GET /api/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companies.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", company.ToResponse()))
}

// Delete handles DELETE /api/companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.companies.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Company deleted", nil))
}
