package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reportDomain "github.com/huellitas-app/service-adoption/internal/domain/report"
	"github.com/huellitas-app/service-adoption/internal/platform/auth"
	"github.com/huellitas-app/service-adoption/internal/platform/domain"
	"github.com/huellitas-app/service-adoption/internal/proto/events"
)

// ReportLocationRequest is the ubicacion object of report requests.
type ReportLocationRequest struct {
	Address string `json:"direccion" binding:"required"`
	City    string `json:"ciudad" binding:"required"`
	Country string `json:"pais" binding:"required"`
}

// ContactRequest is the optional contactoAdicional object.
type ContactRequest struct {
	Phone string `json:"telefono"`
	Email string `json:"email" binding:"omitempty,email"`
}

// CreateReportRequest is the request DTO for filing a report.
type CreateReportRequest struct {
	Type        string                `json:"tipo" binding:"required,report_type"`
	Description string                `json:"descripcion" binding:"required,min=20"`
	Location    ReportLocationRequest `json:"ubicacion" binding:"required"`
	Images      []string              `json:"imagenes" binding:"omitempty,dive,url"`
	Urgent      bool                  `json:"urgente"`
	Contact     *ContactRequest       `json:"contactoAdicional"`
}

// UpdateReportRequest is the request DTO for the reporter-editable fields.
type UpdateReportRequest struct {
	Description *string                `json:"descripcion" binding:"omitempty,min=20"`
	Location    *ReportLocationRequest `json:"ubicacion"`
	Contact     *ContactRequest        `json:"contactoAdicional"`
}

// FollowUpRequest is the request DTO for appending to the audit trail.
type FollowUpRequest struct {
	Status  string `json:"estado" binding:"required,report_status"`
	Comment string `json:"comentario"`
}

// FollowUpDTO is the API representation of an audit entry.
type FollowUpDTO struct {
	Date      time.Time `json:"fecha"`
	Status    string    `json:"estado"`
	Comment   string    `json:"comentario"`
	UpdatedBy uuid.UUID `json:"actualizadoPor"`
}

// ReportDTO is the API representation of a report.
type ReportDTO struct {
	ID          uuid.UUID             `json:"_id"`
	ReporterID  uuid.UUID             `json:"denunciante"`
	Type        string                `json:"tipo"`
	Description string                `json:"descripcion"`
	Location    reportDomain.Location `json:"ubicacion"`
	Images      []string              `json:"imagenes"`
	Status      string                `json:"estado"`
	FollowUps   []FollowUpDTO         `json:"seguimiento"`
	Urgent      bool                  `json:"urgente"`
	Contact     reportDomain.Contact  `json:"contactoAdicional"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ReportService implements abuse-report use cases.
type ReportService struct {
	repo      reportDomain.ReportRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(repo reportDomain.ReportRepository, publisher EventPublisher, logger *zap.Logger) *ReportService {
	return &ReportService{repo: repo, publisher: publisher, logger: logger}
}

// CreateReport files a report on behalf of the caller.
func (s *ReportService) CreateReport(ctx context.Context, caller auth.Identity, req CreateReportRequest) (*ReportDTO, error) {
	var contact reportDomain.Contact
	if req.Contact != nil {
		contact = toContact(*req.Contact)
	}

	report, err := reportDomain.NewReport(
		caller.UserID,
		reportDomain.Type(req.Type),
		sanitizeText(req.Description),
		toReportLocation(req.Location),
		req.Images,
		req.Urgent,
		contact,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid report data: %w", err)
	}

	if err := s.repo.Save(ctx, report); err != nil {
		s.logger.Error("failed to create report", zap.Error(err))
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.logger.Info("report created",
		zap.String("report_id", report.ID().String()),
		zap.String("user_id", caller.UserID.String()),
	)
	publishEvent(ctx, s.publisher, s.logger, events.TopicReportEvents, events.ReportCreated, report.ID().String(), events.ReportCreatedEvent{
		ReportID:   report.ID(),
		ReporterID: caller.UserID,
		Type:       string(report.Type()),
		City:       report.Location().City,
		Urgent:     report.Urgent(),
		OccurredAt: time.Now().UTC(),
	})

	result := toReportDTO(report)
	return &result, nil
}

// ListUserReports returns the caller's reports, newest first.
func (s *ReportService) ListUserReports(ctx context.Context, caller auth.Identity) ([]ReportDTO, error) {
	reports, err := s.repo.FindByReporterID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	dtos := make([]ReportDTO, len(reports))
	for i, r := range reports {
		dtos[i] = toReportDTO(r)
	}
	return dtos, nil
}

// GetReport returns a report filed by the caller.
func (s *ReportService) GetReport(ctx context.Context, caller auth.Identity, reportID uuid.UUID) (*ReportDTO, error) {
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsReportedBy(caller.UserID) {
		return nil, domain.NewForbiddenError("No tienes permiso para ver esta denuncia")
	}
	result := toReportDTO(report)
	return &result, nil
}

// UpdateReport changes the description, location or contact of the caller's report.
func (s *ReportService) UpdateReport(ctx context.Context, caller auth.Identity, reportID uuid.UUID, req UpdateReportRequest) (*ReportDTO, error) {
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsReportedBy(caller.UserID) {
		return nil, domain.NewForbiddenError("No tienes permiso para actualizar esta denuncia")
	}

	patch := reportDomain.Patch{Description: sanitizeOptional(req.Description)}
	if req.Location != nil {
		loc := toReportLocation(*req.Location)
		patch.Location = &loc
	}
	if req.Contact != nil {
		contact := toContact(*req.Contact)
		patch.Contact = &contact
	}
	if err := report.Update(patch); err != nil {
		return nil, fmt.Errorf("invalid report data: %w", err)
	}

	if err := s.repo.Update(ctx, report); err != nil {
		s.logger.Error("failed to update report", zap.String("report_id", reportID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	s.logger.Info("report updated", zap.String("report_id", reportID.String()))
	result := toReportDTO(report)
	return &result, nil
}

// AddFollowUp appends an audit entry and sets the report status to match.
// Any authenticated user or the moderation consumer may call it.
func (s *ReportService) AddFollowUp(ctx context.Context, reportID uuid.UUID, req FollowUpRequest, updatedBy uuid.UUID) (*ReportDTO, error) {
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	entry, err := report.AddFollowUp(reportDomain.Status(req.Status), sanitizeText(req.Comment), updatedBy)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, report); err != nil {
		s.logger.Error("failed to add follow-up", zap.String("report_id", reportID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to add follow-up: %w", err)
	}

	s.logger.Info("report follow-up added",
		zap.String("report_id", reportID.String()),
		zap.String("status", string(entry.Status)),
		zap.String("user_id", updatedBy.String()),
	)
	publishEvent(ctx, s.publisher, s.logger, events.TopicReportEvents, events.ReportFollowUpAdded, reportID.String(), events.ReportFollowUpAddedEvent{
		ReportID:   reportID,
		Status:     string(entry.Status),
		Comment:    entry.Comment,
		UpdatedBy:  updatedBy,
		OccurredAt: entry.Date,
	})

	result := toReportDTO(report)
	return &result, nil
}

func toReportLocation(req ReportLocationRequest) reportDomain.Location {
	return reportDomain.Location{
		Address: sanitizeText(req.Address),
		City:    sanitizeText(req.City),
		Country: sanitizeText(req.Country),
	}
}

func toContact(req ContactRequest) reportDomain.Contact {
	return reportDomain.Contact{
		Phone: sanitizeText(req.Phone),
		Email: sanitizeText(req.Email),
	}
}

func toReportDTO(r *reportDomain.Report) ReportDTO {
	trail := r.FollowUps()
	followUps := make([]FollowUpDTO, len(trail))
	for i, f := range trail {
		followUps[i] = FollowUpDTO{
			Date:      f.Date,
			Status:    string(f.Status),
			Comment:   f.Comment,
			UpdatedBy: f.UpdatedBy,
		}
	}
	return ReportDTO{
		ID:          r.ID(),
		ReporterID:  r.ReporterID(),
		Type:        string(r.Type()),
		Description: r.Description(),
		Location:    r.Location(),
		Images:      r.Images(),
		Status:      string(r.Status()),
		FollowUps:   followUps,
		Urgent:      r.Urgent(),
		Contact:     r.Contact(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}
