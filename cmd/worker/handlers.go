package main

import (
	"github.com/hibiken/asynq"

	storyJob "storymap-backend/internal/domains/story/job"
	traceJob "storymap-backend/internal/domains/trace/job"
	"storymap-backend/internal/shared"
	"storymap-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Story maintenance
	compensateOrphan *storyJob.CompensateOrphanHandler
	sweepOrphans     *storyJob.SweepOrphansHandler

	// Trace enrichment
	fetchMetadata *traceJob.FetchMetadataHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		compensateOrphan: storyJob.NewCompensateOrphanHandler(c.MaintenanceService, c.Metrics),
		sweepOrphans:     storyJob.NewSweepOrphansHandler(c.MaintenanceService, c.Metrics),
		fetchMetadata:    traceJob.NewFetchMetadataHandler(c.EnrichmentService, c.Metrics),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeCompensateOrphanStory, h.compensateOrphan.ProcessTask)
	mux.HandleFunc(shared.TypeSweepOrphanStories, h.sweepOrphans.ProcessTask)
	mux.HandleFunc(shared.TypeFetchTraceMetadata, h.fetchMetadata.ProcessTask)
}
