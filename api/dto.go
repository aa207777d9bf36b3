/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Shape validation (parseable times, required fields) is done in handlers;
  policy validation belongs to the engine. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/facility-engine/booking"
)

// =============================================================================
// RESOURCE TYPES
// =============================================================================

// ResourceDTO represents a bookable resource in API responses.
type ResourceDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Capacity         int      `json:"capacity"`
	IsActive         bool     `json:"is_active"`
	RequiresApproval bool     `json:"requires_approval"`
	DefaultEquipment []string `json:"default_equipment,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
}

// CreateResourceRequest is the request to register a resource.
type CreateResourceRequest struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Capacity         int      `json:"capacity"`
	IsActive         *bool    `json:"is_active,omitempty"`
	RequiresApproval bool     `json:"requires_approval"`
	DefaultEquipment []string `json:"default_equipment,omitempty"`
}

// BlockDTO represents a blackout window.
type BlockDTO struct {
	ID         string `json:"id"`
	ResourceID string `json:"resource_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Reason     string `json:"reason,omitempty"`
}

// CreateBlockRequest is the request to add a blackout window.
type CreateBlockRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason,omitempty"`
}

// =============================================================================
// RESERVATION TYPES
// =============================================================================

// ReservationDTO represents a reservation in API responses.
type ReservationDTO struct {
	ID              string   `json:"id"`
	ResourceID      string   `json:"resource_id"`
	RequesterID     string   `json:"requester_id"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	PartySize       int      `json:"party_size"`
	Purpose         string   `json:"purpose,omitempty"`
	Equipment       []string `json:"equipment,omitempty"`
	Status          string   `json:"status"`
	AdminNote       string   `json:"admin_note,omitempty"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	ApprovedBy      string   `json:"approved_by,omitempty"`
	ApprovedAt      string   `json:"approved_at,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// CreateReservationRequest is the request to book a resource.
type CreateReservationRequest struct {
	ResourceID string   `json:"resource_id"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	PartySize  int      `json:"party_size"`
	Purpose    string   `json:"purpose,omitempty"`
	Equipment  []string `json:"equipment,omitempty"`
}

// DecideRequest carries the admin's note or reason for approve/reject.
type DecideRequest struct {
	Note   string `json:"note,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// =============================================================================
// AVAILABILITY / STATS TYPES
// =============================================================================

// WindowDTO is a half-open time interval.
type WindowDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityDTO is the result of an availability check.
type AvailabilityDTO struct {
	IsAvailable bool        `json:"is_available"`
	Kind        string      `json:"conflict_kind,omitempty"`
	Conflicts   []WindowDTO `json:"conflicts,omitempty"`
}

// StatsDTO summarizes reservations over a reporting window.
type StatsDTO struct {
	ResourceID      string         `json:"resource_id,omitempty"`
	From            string         `json:"from"`
	To              string         `json:"to"`
	ByStatus        map[string]int `json:"by_status"`
	Total           int            `json:"total"`
	BookedMinutes   int64          `json:"booked_minutes"`
	UtilizationRate string         `json:"utilization_rate"`
}

// LogEntryDTO represents an audit trail entry.
type LogEntryDTO struct {
	ID            string         `json:"id"`
	ReservationID string         `json:"reservation_id"`
	EventType     string         `json:"event_type"`
	ActorType     string         `json:"actor_type"`
	ActorID       string         `json:"actor_id"`
	Payload       map[string]any `json:"payload,omitempty"`
	Timestamp     string         `json:"timestamp"`
}

// =============================================================================
// SUBSCRIPTION TYPES
// =============================================================================

// SubscribeRequest registers a web push subscription for the caller.
type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	P256DH   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toResourceDTO(r booking.Resource) ResourceDTO {
	return ResourceDTO{
		ID:               string(r.ID),
		Name:             r.Name,
		Type:             r.Type,
		Capacity:         r.Capacity,
		IsActive:         r.IsActive,
		RequiresApproval: r.RequiresApproval,
		DefaultEquipment: r.DefaultEquipment,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
}

func toBlockDTO(b booking.Block) BlockDTO {
	return BlockDTO{
		ID:         string(b.ID),
		ResourceID: string(b.ResourceID),
		Start:      b.Start.Format(time.RFC3339),
		End:        b.End.Format(time.RFC3339),
		Reason:     b.Reason,
	}
}

func toReservationDTO(r booking.Reservation) ReservationDTO {
	dto := ReservationDTO{
		ID:              string(r.ID),
		ResourceID:      string(r.ResourceID),
		RequesterID:     r.RequesterID,
		Start:           r.StartTime.Format(time.RFC3339),
		End:             r.EndTime.Format(time.RFC3339),
		PartySize:       r.PartySize,
		Purpose:         r.Purpose,
		Equipment:       r.RequestedEquipment,
		Status:          string(r.Status),
		AdminNote:       r.AdminNote,
		RejectionReason: r.RejectionReason,
		ApprovedBy:      r.ApprovedBy,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ApprovedAt != nil {
		dto.ApprovedAt = r.ApprovedAt.Format(time.RFC3339)
	}
	return dto
}

func toReservationDTOs(rs []booking.Reservation) []ReservationDTO {
	dtos := make([]ReservationDTO, len(rs))
	for i, r := range rs {
		dtos[i] = toReservationDTO(r)
	}
	return dtos
}

func toAvailabilityDTO(a booking.Availability) AvailabilityDTO {
	dto := AvailabilityDTO{IsAvailable: a.IsAvailable}
	if !a.IsAvailable {
		dto.Kind = string(a.Kind)
		dto.Conflicts = toWindowDTOs(a.Conflicts)
	}
	return dto
}

func toWindowDTOs(ws []booking.Window) []WindowDTO {
	dtos := make([]WindowDTO, len(ws))
	for i, w := range ws {
		dtos[i] = WindowDTO{Start: w.Start.Format(time.RFC3339), End: w.End.Format(time.RFC3339)}
	}
	return dtos
}

func toLogEntryDTO(e booking.LogEntry) LogEntryDTO {
	return LogEntryDTO{
		ID:            e.ID,
		ReservationID: string(e.ReservationID),
		EventType:     string(e.EventType),
		ActorType:     string(e.ActorType),
		ActorID:       e.ActorID,
		Payload:       e.Payload,
		Timestamp:     e.Timestamp.Format(time.RFC3339),
	}
}
