package handler

import (
	"github.com/gin-gonic/gin"

	"storymap-backend/internal/domains/poll/model"
	"storymap-backend/internal/domains/poll/service"
	"storymap-backend/internal/shared/response"
	"storymap-backend/internal/shared/utils"
)

type PollHandler struct {
	pollService service.ServiceInterface
}

func NewPollHandler(pollService service.ServiceInterface) *PollHandler {
	return &PollHandler{
		pollService: pollService,
	}
}

// SubmitPoll records one respondent's answers for a place
// POST /api/v1/places/:id/polls
func (h *PollHandler) SubmitPoll(c *gin.Context) {
	placeID, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid place ID")
		return
	}

	var req model.SubmitPollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	if err := h.pollService.SubmitPoll(c.Request.Context(), placeID, req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Poll submitted successfully", "", nil)
}

// GetResults returns per-dimension averages for locals and travelers
// GET /api/v1/places/:id/polls/results
func (h *PollHandler) GetResults(c *gin.Context) {
	placeID, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid place ID")
		return
	}

	results, err := h.pollService.GetResults(c.Request.Context(), placeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"labels":    results.Labels,
		"locals":    results.Locals,
		"travelers": results.Travelers,
		"counts":    results.Counts,
	})
}
