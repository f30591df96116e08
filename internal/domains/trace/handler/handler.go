package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storymap-backend/internal/domains/trace/model"
	"storymap-backend/internal/domains/trace/service"
	"storymap-backend/internal/shared/query"
	"storymap-backend/internal/shared/response"
	"storymap-backend/internal/shared/utils"
)

type TraceHandler struct {
	traceService service.ServiceInterface
}

func NewTraceHandler(traceService service.ServiceInterface) *TraceHandler {
	return &TraceHandler{
		traceService: traceService,
	}
}

// ListTraces lists a place's traces, newest first
// GET /api/v1/traces?placeId=...&limit=10&offset=0
func (h *TraceHandler) ListTraces(c *gin.Context) {
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

	traces, meta, err := h.traceService.ListTraces(c.Request.Context(), placeID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"traces":     traces,
		"pagination": meta,
	})
}

// CreateTrace pins an external article to a place
// POST /api/v1/traces
func (h *TraceHandler) CreateTrace(c *gin.Context) {
	var req model.CreateTraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	trace, err := h.traceService.CreateTrace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Trace created successfully", "trace", trace)
}
