package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storymap-backend/internal/domains/story/model"
	"storymap-backend/internal/domains/story/service"
	"storymap-backend/internal/shared/query"
	"storymap-backend/internal/shared/response"
	"storymap-backend/internal/shared/utils"
)

// ModerationHandler serves the moderator routes. Responses include the
// submitter email, which the public handler never renders.
type ModerationHandler struct {
	moderationService service.ModerationService
}

func NewModerationHandler(moderationService service.ModerationService) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
	}
}

// ListQueue lists stories awaiting (or past) moderation, oldest first
// GET /api/v1/moderation/stories?status=pending&limit=10&offset=0
func (h *ModerationHandler) ListQueue(c *gin.Context) {
	page, err := query.ParsePage(c.Query("limit"), c.Query("offset"))
	if err != nil {
		response.Error(c, err)
		return
	}

	status := model.Status(strings.TrimSpace(c.Query("status")))
	stories, meta, err := h.moderationService.ListQueue(c.Request.Context(), status, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]model.ModerationStory, 0, len(stories))
	for _, s := range stories {
		out = append(out, model.NewModerationStory(s))
	}

	response.OK(c, gin.H{
		"stories":    out,
		"pagination": meta,
	})
}

// ModerateStory approves or rejects a story
// PATCH /api/v1/moderation/stories/:id
func (h *ModerationHandler) ModerateStory(c *gin.Context) {
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid story ID")
		return
	}

	var req model.ModerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	story, changed, err := h.moderationService.ModerateStory(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Story status updated"
	if !changed {
		message = "Story status unchanged"
	}
	response.Success(c, http.StatusOK, message, "story", model.NewModerationStory(story))
}
