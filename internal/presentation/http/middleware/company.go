package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/repository"
	infraRepo "github.com/vatbooks/vatbooks-api/internal/infrastructure/repository"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/dto/response"
)

// CompanyIDHeader names the header carrying the active company for the request
const CompanyIDHeader = "X-Company-ID"

// CompanyMiddleware resolves the active company from the X-Company-ID header,
// verifies the authenticated user is a member, and scopes the request context
// so every repository query is limited to that company.
func CompanyMiddleware(companyRepo repository.CompanyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(CompanyIDHeader)
		if header == "" {
			response.BadRequest(c, "X-Company-ID header is required")
			c.Abort()
			return
		}

		companyID, err := uuid.Parse(header)
		if err != nil {
			response.BadRequest(c, "Invalid company ID")
			c.Abort()
			return
		}

		company, err := companyRepo.GetByID(c.Request.Context(), companyID)
		if err != nil || company == nil {
			response.NotFound(c, "Company not found")
			c.Abort()
			return
		}

		userIDVal, exists := c.Get("user_id")
		userID, ok := userIDVal.(uuid.UUID)
		if !exists || !ok || userID == uuid.Nil {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		isMember, _ := companyRepo.IsMember(c.Request.Context(), company.ID, userID)
		if !isMember {
			response.Forbidden(c, "Access denied to this company")
			c.Abort()
			return
		}

		// Set company in Gin context (for middleware/handlers)
		c.Set("company_id", company.ID)
		c.Set("company", company)

		// Also set company ID in request context (for services/repositories)
		ctx := infraRepo.WithCompany(c.Request.Context(), company.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCompanyID retrieves the company ID from gin context
func GetCompanyID(c *gin.Context) uuid.UUID {
	companyID, exists := c.Get("company_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := companyID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
