package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// MinDescriptionLength is the minimum number of characters in a description.
const MinDescriptionLength = 20

const receivedComment = "Denuncia recibida"

// Location is where the reported situation takes place.
type Location struct {
	Address string `json:"direccion"`
	City    string `json:"ciudad"`
	Country string `json:"pais"`
}

// Contact holds optional extra contact details from the reporter.
type Contact struct {
	Phone string `json:"telefono,omitempty"`
	Email string `json:"email,omitempty"`
}

// FollowUp is one entry of the append-only audit trail.
type FollowUp struct {
	Date      time.Time `json:"fecha"`
	Status    Status    `json:"estado"`
	Comment   string    `json:"comentario"`
	UpdatedBy uuid.UUID `json:"actualizadoPor"`
}

// Patch holds the reporter-editable fields; nil fields are left unchanged.
type Patch struct {
	Description *string
	Location    *Location
	Contact     *Contact
}

// Report is the aggregate root for an animal-abuse report.
type Report struct {
	id          uuid.UUID
	reporterID  uuid.UUID
	reportType  Type
	description string
	location    Location
	images      []string
	status      Status
	followUps   []FollowUp
	urgent      bool
	contact     Contact
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewReport creates a Pendiente report seeded with the initial follow-up entry.
func NewReport(
	reporterID uuid.UUID,
	reportType Type,
	description string,
	location Location,
	images []string,
	urgent bool,
	contact Contact,
) (*Report, error) {
	if reporterID == uuid.Nil {
		return nil, domain.NewValidationError("El denunciante es obligatorio")
	}
	if !reportType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("Tipo de denuncia no válido: %s", reportType))
	}
	description = strings.TrimSpace(description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	location = normalizeLocation(location)
	if err := validateLocation(location); err != nil {
		return nil, err
	}
	if images == nil {
		images = []string{}
	}

	now := time.Now().UTC()
	return &Report{
		id:          uuid.New(),
		reporterID:  reporterID,
		reportType:  reportType,
		description: description,
		location:    location,
		images:      images,
		status:      StatusPending,
		followUps: []FollowUp{{
			Date:      now,
			Status:    StatusPending,
			Comment:   receivedComment,
			UpdatedBy: reporterID,
		}},
		urgent:    urgent,
		contact:   contact,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Report from persistence data (no validation).
func Reconstruct(
	id, reporterID uuid.UUID,
	reportType Type,
	description string,
	location Location,
	images []string,
	status Status,
	followUps []FollowUp,
	urgent bool,
	contact Contact,
	version int64,
	createdAt, updatedAt time.Time,
) *Report {
	if images == nil {
		images = []string{}
	}
	if followUps == nil {
		followUps = []FollowUp{}
	}
	return &Report{
		id:          id,
		reporterID:  reporterID,
		reportType:  reportType,
		description: description,
		location:    location,
		images:      images,
		status:      status,
		followUps:   followUps,
		urgent:      urgent,
		contact:     contact,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (r *Report) ID() uuid.UUID         { return r.id }
func (r *Report) ReporterID() uuid.UUID { return r.reporterID }
func (r *Report) Type() Type            { return r.reportType }
func (r *Report) Description() string   { return r.description }
func (r *Report) Location() Location    { return r.location }
func (r *Report) Status() Status        { return r.status }
func (r *Report) Urgent() bool          { return r.urgent }
func (r *Report) Contact() Contact      { return r.contact }
func (r *Report) Version() int64        { return r.version }
func (r *Report) CreatedAt() time.Time  { return r.createdAt }
func (r *Report) UpdatedAt() time.Time  { return r.updatedAt }

// Images returns a copy of the attached image URLs.
func (r *Report) Images() []string {
	out := make([]string, len(r.images))
	copy(out, r.images)
	return out
}

// FollowUps returns the audit trail, oldest first.
func (r *Report) FollowUps() []FollowUp {
	out := make([]FollowUp, len(r.followUps))
	copy(out, r.followUps)
	return out
}

// --- Behavior ---

// IsReportedBy checks if the report was filed by the given user.
func (r *Report) IsReportedBy(userID uuid.UUID) bool {
	return r.reporterID == userID
}

// Update applies the reporter-editable fields.
func (r *Report) Update(patch Patch) error {
	description := r.description
	if patch.Description != nil {
		description = strings.TrimSpace(*patch.Description)
		if err := validateDescription(description); err != nil {
			return err
		}
	}
	location := r.location
	if patch.Location != nil {
		location = normalizeLocation(*patch.Location)
		if err := validateLocation(location); err != nil {
			return err
		}
	}
	if patch.Contact != nil {
		r.contact = *patch.Contact
	}
	r.description = description
	r.location = location
	r.touch()
	return nil
}

// AddFollowUp appends an audit entry and moves the report to its status.
func (r *Report) AddFollowUp(status Status, comment string, updatedBy uuid.UUID) (FollowUp, error) {
	if !status.IsValid() {
		return FollowUp{}, domain.NewValidationError(fmt.Sprintf("Estado no válido: %s", status))
	}
	entry := FollowUp{
		Date:      time.Now().UTC(),
		Status:    status,
		Comment:   strings.TrimSpace(comment),
		UpdatedBy: updatedBy,
	}
	r.followUps = append(r.followUps, entry)
	r.status = status
	r.touch()
	return entry, nil
}

// IncrementVersion bumps the version for optimistic locking. Called once per save.
func (r *Report) IncrementVersion() {
	r.version++
}

func (r *Report) touch() {
	r.updatedAt = time.Now().UTC()
}

func validateDescription(description string) error {
	if description == "" {
		return domain.NewValidationError("La descripción es obligatoria")
	}
	if len([]rune(description)) < MinDescriptionLength {
		return domain.NewValidationError(fmt.Sprintf("La descripción debe tener al menos %d caracteres", MinDescriptionLength))
	}
	return nil
}

func normalizeLocation(l Location) Location {
	return Location{
		Address: strings.TrimSpace(l.Address),
		City:    strings.TrimSpace(l.City),
		Country: strings.TrimSpace(l.Country),
	}
}

func validateLocation(l Location) error {
	switch {
	case l.Address == "":
		return domain.NewValidationError("La dirección es obligatoria")
	case l.City == "":
		return domain.NewValidationError("La ciudad es obligatoria")
	case l.Country == "":
		return domain.NewValidationError("El país es obligatorio")
	}
	return nil
}
