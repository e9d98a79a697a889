// internal/handlers/favorite.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookxchange/backend/internal/i18n"
	"github.com/bookxchange/backend/internal/services"
	"github.com/bookxchange/backend/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
	log             *logrus.Logger
}

type AddFavoriteRequest struct {
	BookID string `json:"bookId" binding:"required"`
}

func NewFavoriteHandler(favoriteService *services.FavoriteService, log *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		log:             log,
	}
}

// POST /api/favorites
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "bookId"), err.Error())
		return
	}

	favorite, err := h.favoriteService.AddFavorite(c.Request.Context(), userID, req.BookID)
	if err != nil {
		if services.IsConflict(err) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyFavoriteExists))
			return
		}
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyFavoriteAdded),
		"favorite": favorite,
	})
}

// DELETE /api/favorites/:bookId
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), userID, c.Param("bookId")); err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyFavoriteRemoved)})
}

// GET /api/favorites
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	favorites, err := h.favoriteService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, favorites)
}

// GET /api/favorites/check/:bookId
func (h *FavoriteHandler) CheckFavorite(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	favorited, err := h.favoriteService.IsFavorited(c.Request.Context(), userID, c.Param("bookId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"isFavorited": favorited})
}
