package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	reportDomain "github.com/huellitas-app/service-adoption/internal/domain/report"
	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// ReportModel is the GORM model for the reports table.
type ReportModel struct {
	ID           uuid.UUID                                  `gorm:"type:uuid;primaryKey"`
	ReporterID   uuid.UUID                                  `gorm:"type:uuid;not null;index"`
	Type         string                                     `gorm:"type:varchar(30);not null"`
	Description  string                                     `gorm:"type:text;not null"`
	Address      string                                     `gorm:"type:varchar(255);not null"`
	City         string                                     `gorm:"type:varchar(100);not null"`
	Country      string                                     `gorm:"type:varchar(100);not null"`
	Images       datatypes.JSONSlice[string]                `gorm:"not null"`
	Status       string                                     `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	FollowUps    datatypes.JSONSlice[reportDomain.FollowUp] `gorm:"not null"`
	Urgent       bool                                       `gorm:"not null;default:false"`
	ContactPhone string                                     `gorm:"type:varchar(50);not null;default:''"`
	ContactEmail string                                     `gorm:"type:varchar(255);not null;default:''"`
	Version      int64                                      `gorm:"not null;default:1"`
	CreatedAt    time.Time                                  `gorm:"not null"`
	UpdatedAt    time.Time                                  `gorm:"not null"`
}

func (ReportModel) TableName() string { return "reports" }

// GormReportRepository implements ReportRepository using GORM.
type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*reportDomain.Report, error) {
	var model ReportModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Denuncia", id.String())
		}
		return nil, fmt.Errorf("failed to find report by ID: %w", err)
	}
	return toReportDomain(&model)
}

func (r *GormReportRepository) FindByReporterID(ctx context.Context, reporterID uuid.UUID) ([]*reportDomain.Report, error) {
	var models []ReportModel
	if err := r.db.WithContext(ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports by reporter: %w", err)
	}
	reports := make([]*reportDomain.Report, len(models))
	for i := range models {
		report, err := toReportDomain(&models[i])
		if err != nil {
			return nil, err
		}
		reports[i] = report
	}
	return reports, nil
}

func (r *GormReportRepository) Save(ctx context.Context, report *reportDomain.Report) error {
	if err := r.db.WithContext(ctx).Create(toReportModel(report)).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (r *GormReportRepository) Update(ctx context.Context, report *reportDomain.Report) error {
	expectedVersion := report.Version()
	model := toReportModel(report)
	model.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&ReportModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Select("*").
		Omit("id", "reporter_id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("la denuncia fue modificada por otra operación")
	}
	report.IncrementVersion()
	return nil
}

// --- Conversions ---

func toReportModel(r *reportDomain.Report) *ReportModel {
	loc := r.Location()
	contact := r.Contact()
	return &ReportModel{
		ID:           r.ID(),
		ReporterID:   r.ReporterID(),
		Type:         string(r.Type()),
		Description:  r.Description(),
		Address:      loc.Address,
		City:         loc.City,
		Country:      loc.Country,
		Images:       datatypes.JSONSlice[string](r.Images()),
		Status:       string(r.Status()),
		FollowUps:    datatypes.JSONSlice[reportDomain.FollowUp](r.FollowUps()),
		Urgent:       r.Urgent(),
		ContactPhone: contact.Phone,
		ContactEmail: contact.Email,
		Version:      r.Version(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

func toReportDomain(m *ReportModel) (*reportDomain.Report, error) {
	status, err := reportDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("corrupt report row %s: %w", m.ID, err)
	}

	return reportDomain.Reconstruct(
		m.ID, m.ReporterID,
		reportDomain.Type(m.Type),
		m.Description,
		reportDomain.Location{Address: m.Address, City: m.City, Country: m.Country},
		[]string(m.Images),
		status,
		[]reportDomain.FollowUp(m.FollowUps),
		m.Urgent,
		reportDomain.Contact{Phone: m.ContactPhone, Email: m.ContactEmail},
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
