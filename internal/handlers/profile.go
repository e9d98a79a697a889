// internal/handlers/profile.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookxchange/backend/internal/i18n"
	"github.com/bookxchange/backend/internal/services"
	"github.com/bookxchange/backend/internal/utils"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	log            *logrus.Logger
}

func NewProfileHandler(profileService *services.ProfileService, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		log:            log,
	}
}

// POST /api/profile
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// The verified token's email wins over the body.
	if email := utils.GetUserEmailFromContext(c); email != "" {
		req.Email = email
	}

	profile, err := h.profileService.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProfileUpdated),
		"profile": profile,
	})
}

// GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// GET /api/profile/:userId
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.profileService.GetPublic(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// DELETE /api/profile/picture
func (h *ProfileHandler) RemovePicture(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.profileService.RemovePicture(c.Request.Context(), userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyProfilePictureRemoved)})
}
