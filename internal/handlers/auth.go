// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookxchange/backend/internal/i18n"
	"github.com/bookxchange/backend/internal/utils"
)

// AuthHandler issues HS256 tokens for local development when the server
// runs with the jwt auth provider. It is never mounted in production.
type AuthHandler struct {
	secret   string
	ttlHours int
}

type DevTokenRequest struct {
	UserID string `json:"user_id" validate:"notblank,max=128"`
	Email  string `json:"email" validate:"required,email"`
}

func NewAuthHandler(secret string, ttlHours int) *AuthHandler {
	return &AuthHandler{
		secret:   secret,
		ttlHours: ttlHours,
	}
}

// POST /dev/token
func (h *AuthHandler) IssueDevToken(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req DevTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, "", utils.GetValidationErrors(err))
		return
	}

	token, err := utils.GenerateJWT(h.secret, req.UserID, req.Email, h.ttlHours)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": h.ttlHours * 3600,
	})
}
