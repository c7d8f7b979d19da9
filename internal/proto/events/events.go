// Package events defines the topics, event types and payloads exchanged over Kafka.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicPetEvents        = "pet.events"
	TopicReportEvents     = "report.events"
	TopicModerationEvents = "moderation.events"
)

// Event types on pet.events.
const (
	PetCreated           = "pet.created"
	PetDeleted           = "pet.deleted"
	PetAdoptionRequested = "pet.adoption_requested"
	PetAdoptionRejected  = "pet.adoption_rejected"
)

// Event types on report.events.
const (
	ReportCreated       = "report.created"
	ReportFollowUpAdded = "report.follow_up_added"
)

// Event types on moderation.events.
const (
	ModerationReportReviewed = "moderation.report_reviewed"
)

// PetCreatedEvent is published when a listing is created.
type PetCreatedEvent struct {
	PetID      uuid.UUID `json:"pet_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	Species    string    `json:"species"`
	City       string    `json:"city"`
	Urgent     bool      `json:"urgent"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PetDeletedEvent is published when a listing is removed.
type PetDeletedEvent struct {
	PetID      uuid.UUID `json:"pet_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AdoptionRequestedEvent is published when a listing moves to En proceso.
type AdoptionRequestedEvent struct {
	PetID         uuid.UUID `json:"pet_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	AdopterID     uuid.UUID `json:"adopter_id"`
	AdopterName   string    `json:"adopter_name"`
	AdopterEmail  string    `json:"adopter_email"`
	SelfRequested bool      `json:"self_requested"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// AdoptionRejectedEvent is published when the owner rejects a pending request.
type AdoptionRejectedEvent struct {
	PetID      uuid.UUID `json:"pet_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	AdopterID  uuid.UUID `json:"adopter_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReportCreatedEvent is published when a report is filed.
type ReportCreatedEvent struct {
	ReportID   uuid.UUID `json:"report_id"`
	ReporterID uuid.UUID `json:"reporter_id"`
	Type       string    `json:"type"`
	City       string    `json:"city"`
	Urgent     bool      `json:"urgent"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReportFollowUpAddedEvent is published for every follow-up entry.
type ReportFollowUpAddedEvent struct {
	ReportID   uuid.UUID `json:"report_id"`
	Status     string    `json:"status"`
	Comment    string    `json:"comment"`
	UpdatedBy  uuid.UUID `json:"updated_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReportReviewedEvent is consumed from the moderation tooling.
type ReportReviewedEvent struct {
	ReportID    uuid.UUID `json:"report_id"`
	Status      string    `json:"estado"`
	Comment     string    `json:"comentario"`
	ModeratorID uuid.UUID `json:"moderator_id"`
}
