package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/huellitas-app/service-adoption/internal/application"
	"github.com/huellitas-app/service-adoption/internal/platform/response"
)

// ReportHandler handles abuse-report requests.
type ReportHandler struct {
	service *application.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *application.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers all report routes. Every route requires authentication.
func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	reports := r.Group("/reports", authMW)
	{
		reports.POST("", h.CreateReport)
		reports.GET("", h.ListReports)
		reports.GET("/:id", h.GetReport)
		reports.PUT("/:id", h.UpdateReport)
		reports.POST("/:id/seguimiento", h.AddFollowUp)
	}
}

// CreateReport files a report.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req application.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.CreateReport(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"denuncia": result})
}

// ListReports returns the caller's reports.
func (h *ReportHandler) ListReports(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	result, err := h.service.ListUserReports(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"denuncias": result})
}

// GetReport returns a report filed by the caller.
func (h *ReportHandler) GetReport(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	reportID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetReport(c.Request.Context(), caller, reportID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"denuncia": result})
}

// UpdateReport edits a report filed by the caller.
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	reportID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req application.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.UpdateReport(c.Request.Context(), caller, reportID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"denuncia": result})
}

// AddFollowUp appends an entry to the report's audit trail.
func (h *ReportHandler) AddFollowUp(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	reportID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req application.FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.AddFollowUp(c.Request.Context(), reportID, req, caller.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"denuncia": result})
}
