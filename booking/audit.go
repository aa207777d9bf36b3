/*
audit.go - Best-effort audit trail writer

PURPOSE:
  Appends an immutable record of every reservation transition. The audit
  trail is supplementary, not part of the booking invariant: a failed append
  is logged and suppressed, never rolled into the primary transaction.
*/
package booking

import (
	"context"
	"fmt"
	"log"
	"time"
)

// AuditWriter wraps an AuditLog with best-effort semantics.
type AuditWriter struct {
	log AuditLog
}

func NewAuditWriter(l AuditLog) *AuditWriter {
	return &AuditWriter{log: l}
}

// Record appends a transition entry with a payload snapshot of the
// reservation. Errors are logged and swallowed.
func (w *AuditWriter) Record(ctx context.Context, event EventType, actorType ActorType, actorID string, r *Reservation) {
	entry := LogEntry{
		ID:            fmt.Sprintf("log-%d", time.Now().UnixNano()),
		ReservationID: r.ID,
		EventType:     event,
		ActorType:     actorType,
		ActorID:       actorID,
		Payload:       snapshotPayload(r),
		Timestamp:     time.Now().UTC(),
	}
	if err := w.log.AppendLog(ctx, entry); err != nil {
		log.Printf("audit: failed to append %s for reservation %s: %v", event, r.ID, err)
	}
}

// snapshotPayload captures the reservation state at transition time.
func snapshotPayload(r *Reservation) map[string]any {
	p := map[string]any{
		"resource_id":  string(r.ResourceID),
		"requester_id": r.RequesterID,
		"start_time":   r.StartTime.Format(time.RFC3339),
		"end_time":     r.EndTime.Format(time.RFC3339),
		"party_size":   r.PartySize,
		"status":       string(r.Status),
	}
	if r.Purpose != "" {
		p["purpose"] = r.Purpose
	}
	if r.AdminNote != "" {
		p["admin_note"] = r.AdminNote
	}
	if r.RejectionReason != "" {
		p["rejection_reason"] = r.RejectionReason
	}
	if r.ApprovedBy != "" {
		p["approved_by"] = r.ApprovedBy
	}
	return p
}
