package handler

import (
	"github.com/gin-gonic/gin"

	appprinting "github.com/possuite/backend/internal/application/printing"
	domainprinting "github.com/possuite/backend/internal/domain/printing"
	"github.com/possuite/backend/internal/interfaces/http/dto"
)

// PrintHandler serves the print job queue
type PrintHandler struct {
	BaseHandler
	prints *appprinting.PrintService
}

// NewPrintHandler creates the print handler
func NewPrintHandler(prints *appprinting.PrintService) *PrintHandler {
	return &PrintHandler{prints: prints}
}

// ListJobs lists print jobs by status within the property
func (h *PrintHandler) ListJobs(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	status := domainprinting.JobStatus(c.DefaultQuery("status", string(domainprinting.JobStatusPending)))
	jobs, err := h.prints.ListJobs(c.Request.Context(), propertyID, status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, jobs)
}

// GetJob returns one print job
func (h *PrintHandler) GetJob(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	job, err := h.prints.GetJob(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// RequeueJob puts a failed job back on the queue
func (h *PrintHandler) RequeueJob(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	job, err := h.prints.RequeueJob(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// QueueOverview reports printers alongside job counts per status
func (h *PrintHandler) QueueOverview(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	printers, counts, err := h.prints.QueueOverview(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.QueueOverviewResponse{
		Printers: printers,
		Jobs:     counts,
	})
}
