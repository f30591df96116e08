package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storymap-backend/internal/domains/story/model"
	"storymap-backend/internal/domains/story/service"
	"storymap-backend/internal/shared/query"
	"storymap-backend/internal/shared/response"
	"storymap-backend/internal/shared/utils"
)

type StoryHandler struct {
	storyService service.ServiceInterface
}

func NewStoryHandler(storyService service.ServiceInterface) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
	}
}

// ListStories lists a place's stories, approved only unless status says otherwise
// GET /api/v1/stories?placeId=...&status=approved&limit=10&offset=0
func (h *StoryHandler) ListStories(c *gin.Context) {
	// Step 1: Parse query
	rawPlaceID := strings.TrimSpace(c.Query("placeId"))
	if rawPlaceID == "" {
		response.BadRequest(c, model.MsgPlaceIDQueryNeeded)
		return
	}
	placeID, ok := utils.ParseUUID(rawPlaceID)
	if !ok {
		response.BadRequest(c, model.MsgPlaceIDInvalid)
		return
	}

	page, err := query.ParsePage(c.Query("limit"), c.Query("offset"))
	if err != nil {
		response.Error(c, err)
		return
	}

	params := model.ListStoriesParams{
		PlaceID: placeID,
		Status:  model.Status(strings.TrimSpace(c.Query("status"))),
		Limit:   page.Limit,
		Offset:  page.Offset,
	}

	// Step 2: Call service
	stories, meta, err := h.storyService.ListStories(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"stories":    stories,
		"pagination": meta,
	})
}

// CreateStory submits a story for moderation
// POST /api/v1/stories
func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req model.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	story, err := h.storyService.CreateStory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Story created successfully and is pending moderation", "story", story)
}

// GetStory gets an approved story by ID
// GET /api/v1/stories/:id
func (h *StoryHandler) GetStory(c *gin.Context) {
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid story ID")
		return
	}

	story, err := h.storyService.GetStory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"story": story})
}

// Vote records an up or down vote
// POST /api/v1/stories/:id/vote
func (h *StoryHandler) Vote(c *gin.Context) {
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid story ID")
		return
	}

	var req model.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	story, err := h.storyService.Vote(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"story": story})
}
