// internal/handlers/listing.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookxchange/backend/internal/i18n"
	"github.com/bookxchange/backend/internal/services"
	"github.com/bookxchange/backend/internal/utils"
)

type ListingHandler struct {
	listingService *services.ListingService
	log            *logrus.Logger
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

func NewListingHandler(listingService *services.ListingService, log *logrus.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		log:            log,
	}
}

// POST /api/exchange-books
func (h *ListingHandler) CreateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if services.IsNotFound(err) {
			utils.ErrorResponse(c, http.StatusNotFound, "PROFILE_REQUIRED", i18n.T(lang, i18n.KeyProfileRequired), nil)
			return
		}
		respondError(c, h.log, err)
		return
	}

	utils.CreatedResponse(c, listing)
}

// GET /api/exchange-books
func (h *ListingHandler) GetMyListings(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	listings, err := h.listingService.ListOwnedAvailable(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, listings)
}

// GET /api/exchange-books/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	listing, err := h.listingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, listing)
}

// DELETE /api/exchange-books/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.listingService.DeleteOwned(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyListingDeleted)})
}

// DELETE /api/exchange-books/:id/images/:imageIndex
func (h *ListingHandler) DeleteImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("imageIndex"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyListingImageIndex), nil)
		return
	}

	listing, err := h.listingService.DeleteImage(c.Request.Context(), c.Param("id"), userID, index)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingImageDeleted),
		"book":    listing,
	})
}

// PUT /api/exchange-books/:id/availability
func (h *ListingHandler) SetAvailability(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "is_available"), err.Error())
		return
	}

	listing, err := h.listingService.SetAvailability(c.Request.Context(), c.Param("id"), userID, *req.IsAvailable)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingUpdated),
		"book":    listing,
	})
}

// GET /api/find-books
func (h *ListingHandler) FindBooks(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	listings, err := h.listingService.ListOthersAvailable(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, listings)
}

// GET /api/find-books/search
func (h *ListingHandler) SearchBooks(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	params := services.ListingSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Condition:        c.Query("condition"),
	}

	listings, total, err := h.listingService.SearchOthersAvailable(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	result := utils.CreatePaginationResult(listings, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}
