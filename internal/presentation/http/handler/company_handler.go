package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/application/service"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/dto/request"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/dto/response"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/middleware"
)

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create handles creating a company owned by the authenticated user
func (h *CompanyHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), &service.CreateCompanyInput{
		Name:      req.Name,
		VATNumber: req.VATNumber,
		Address:   req.Address,
		OwnerID:   *userID,
		Settings:  req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Company created successfully", company)
}

// List handles listing the authenticated user's companies
func (h *CompanyHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := listParams(c)
	result, err := h.companyService.GetUserCompanies(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Companies retrieved successfully", result)
}

// GetCurrent handles retrieving the active company
func (h *CompanyHandler) GetCurrent(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		response.BadRequest(c, "No active company")
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", company)
}

// UpdateCurrent handles updating the active company
func (h *CompanyHandler) UpdateCurrent(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		response.BadRequest(c, "No active company")
		return
	}

	var req request.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), &service.UpdateCompanyInput{
		ID:        companyID,
		Name:      req.Name,
		VATNumber: req.VATNumber,
		Address:   req.Address,
		Settings:  req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", company)
}

// ListMembers handles listing the active company's members
func (h *CompanyHandler) ListMembers(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		response.BadRequest(c, "No active company")
		return
	}

	members, err := h.companyService.GetMembers(c.Request.Context(), companyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", members)
}

// AddMember handles adding a user to the active company
func (h *CompanyHandler) AddMember(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		response.BadRequest(c, "No active company")
		return
	}

	var req request.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.companyService.AddMember(c.Request.Context(), &service.AddMemberInput{
		CompanyID: companyID,
		UserID:    req.UserID,
		Role:      req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", nil)
}

// UpdateMemberRole handles changing a member's role
func (h *CompanyHandler) UpdateMemberRole(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		response.BadRequest(c, "No active company")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.companyService.UpdateMemberRole(c.Request.Context(), companyID, userID, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member role updated successfully", nil)
}

// RemoveMember handles removing a user from the active company
func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		response.BadRequest(c, "No active company")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.companyService.RemoveMember(c.Request.Context(), companyID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member removed successfully", nil)
}
