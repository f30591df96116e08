package handler

import (
	"github.com/gin-gonic/gin"

	"storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/domains/place/service"
	"storymap-backend/internal/shared/query"
	"storymap-backend/internal/shared/response"
	"storymap-backend/internal/shared/utils"
)

type PlaceHandler struct {
	placeService service.ServiceInterface
}

func NewPlaceHandler(placeService service.ServiceInterface) *PlaceHandler {
	return &PlaceHandler{
		placeService: placeService,
	}
}

// ListPlaces lists places, optionally inside a map viewport
// GET /api/v1/places?bounds=south,west,north,east&limit=1000
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	// Step 1: Parse query
	bounds, err := query.ParseBounds(c.Query("bounds"))
	if err != nil {
		response.Error(c, err)
		return
	}

	limit, err := query.ParsePlaceLimit(c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	// Step 2: Call service
	places, err := h.placeService.ListPlaces(c.Request.Context(), bounds, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"places": places})
}

// CreatePlace creates a place with a generated slug
// POST /api/v1/places
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var req model.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	place, err := h.placeService.CreatePlace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Place created successfully", "place", place)
}

// GetPlace gets place by ID
// GET /api/v1/places/:id
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid place ID")
		return
	}

	place, err := h.placeService.GetPlace(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"place": place})
}

// GetPlaceBySlug gets place by its URL slug
// GET /api/v1/places/by-slug/:slug
func (h *PlaceHandler) GetPlaceBySlug(c *gin.Context) {
	place, err := h.placeService.GetPlaceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"place": place})
}
