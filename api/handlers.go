/*
handlers.go - HTTP request handlers

PURPOSE:
  Translates HTTP requests into engine calls and engine results into JSON.
  Handlers do shape validation only (parseable times, required fields);
  policy and lifecycle rules live in the booking package.

IDENTITY:
  The caller's verified identity arrives in X-Actor-ID and X-Actor-Role
  headers, set by the authenticating proxy in front of this service. The
  handlers trust them; they never authenticate.

ERROR MAPPING:
  validation            -> 400
  unauthorized          -> 403
  not found             -> 404
  conflict / bad state  -> 409
  anything else         -> 500

SEE ALSO:
  - dto.go: Request/response types
  - server.go: Route registration
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/facility-engine/booking"
	"github.com/warp/facility-engine/notify"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	engine *booking.Engine
	stats  *booking.StatsService
	store  booking.Store
	subs   notify.SubscriptionStore
}

// NewHandler creates a handler. subs may be nil when push notifications are
// disabled; the subscription endpoints then return 404.
func NewHandler(engine *booking.Engine, stats *booking.StatsService, store booking.Store, subs notify.SubscriptionStore) *Handler {
	return &Handler{engine: engine, stats: stats, store: store, subs: subs}
}

// =============================================================================
// IDENTITY
// =============================================================================

func actorFrom(r *http.Request) booking.Actor {
	role := booking.RoleUser
	if r.Header.Get("X-Actor-Role") == string(booking.RoleAdmin) {
		role = booking.RoleAdmin
	}
	return booking.Actor{ID: r.Header.Get("X-Actor-ID"), Role: role}
}

func requireActor(w http.ResponseWriter, r *http.Request) (booking.Actor, bool) {
	actor := actorFrom(r)
	if actor.ID == "" {
		writeErrorMessage(w, http.StatusUnauthorized, "missing X-Actor-ID header")
		return booking.Actor{}, false
	}
	return actor, true
}

// =============================================================================
// RESOURCES
// =============================================================================

// ListResources handles GET /api/resources
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.store.ListResources(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]ResourceDTO, len(resources))
	for i, res := range resources {
		dtos[i] = toResourceDTO(res)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateResource handles POST /api/resources (admin only)
func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if actor.Role != booking.RoleAdmin {
		writeErrorMessage(w, http.StatusForbidden, "admin role required")
		return
	}

	var req CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" || req.Name == "" {
		writeErrorMessage(w, http.StatusBadRequest, "id and name are required")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	res := booking.Resource{
		ID:               booking.ResourceID(req.ID),
		Name:             req.Name,
		Type:             req.Type,
		Capacity:         req.Capacity,
		IsActive:         isActive,
		RequiresApproval: req.RequiresApproval,
		DefaultEquipment: req.DefaultEquipment,
		CreatedAt:        time.Now(),
	}
	if err := h.store.SaveResource(r.Context(), res); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResourceDTO(res))
}

// GetResource handles GET /api/resources/{id}
func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	id := booking.ResourceID(chi.URLParam(r, "id"))
	res, err := h.store.GetResource(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if res == nil {
		writeErrorMessage(w, http.StatusNotFound, fmt.Sprintf("resource %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, toResourceDTO(*res))
}

// =============================================================================
// BLOCKS
// =============================================================================

// ListBlocks handles GET /api/resources/{id}/blocks
func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	id := booking.ResourceID(chi.URLParam(r, "id"))
	blocks, err := h.store.ListBlocks(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]BlockDTO, len(blocks))
	for i, b := range blocks {
		dtos[i] = toBlockDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateBlock handles POST /api/resources/{id}/blocks (admin only)
func (h *Handler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if actor.Role != booking.RoleAdmin {
		writeErrorMessage(w, http.StatusForbidden, "admin role required")
		return
	}

	id := booking.ResourceID(chi.URLParam(r, "id"))
	res, err := h.store.GetResource(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if res == nil {
		writeErrorMessage(w, http.StatusNotFound, fmt.Sprintf("resource %s not found", id))
		return
	}

	var req CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	start, end, ok := parseWindow(w, req.Start, req.End)
	if !ok {
		return
	}

	block := booking.Block{
		ID:         booking.BlockID(fmt.Sprintf("blk-%d", time.Now().UnixNano())),
		ResourceID: id,
		Start:      start,
		End:        end,
		Reason:     req.Reason,
		CreatedAt:  time.Now(),
	}
	if err := h.store.SaveBlock(r.Context(), block); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBlockDTO(block))
}

// =============================================================================
// AVAILABILITY
// =============================================================================

// CheckAvailability handles GET /api/resources/{id}/availability?start=...&end=...
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id := booking.ResourceID(chi.URLParam(r, "id"))
	start, end, ok := parseWindow(w, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if !ok {
		return
	}

	avail, err := h.engine.CheckAvailability(r.Context(), id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAvailabilityDTO(avail))
}

// =============================================================================
// RESERVATIONS
// =============================================================================

// CreateReservation handles POST /api/reservations
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ResourceID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "resource_id is required")
		return
	}
	start, end, ok := parseWindow(w, req.Start, req.End)
	if !ok {
		return
	}

	res, err := h.engine.CreateReservation(r.Context(), booking.CreateRequest{
		RequesterID: actor.ID,
		ResourceID:  booking.ResourceID(req.ResourceID),
		Start:       start,
		End:         end,
		PartySize:   req.PartySize,
		Purpose:     req.Purpose,
		Equipment:   req.Equipment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationDTO(*res))
}

// GetReservation handles GET /api/reservations/{id}
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := booking.ReservationID(chi.URLParam(r, "id"))
	res, err := h.engine.GetReservation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(*res))
}

// ListReservations handles GET /api/reservations with optional filters:
// resource_id, requester_id, status, from, to
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	var f booking.ReservationFilter
	q := r.URL.Query()

	if v := q.Get("resource_id"); v != "" {
		id := booking.ResourceID(v)
		f.ResourceID = &id
	}
	if v := q.Get("requester_id"); v != "" {
		f.RequesterID = &v
	}
	if v := q.Get("status"); v != "" {
		status := booking.ReservationStatus(v)
		if !status.Valid() {
			writeErrorMessage(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", v))
			return
		}
		f.Status = &status
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "from must be RFC3339")
			return
		}
		f.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "to must be RFC3339")
			return
		}
		f.To = &t
	}

	rs, err := h.engine.ListReservations(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTOs(rs))
}

// =============================================================================
// DECISIONS
// =============================================================================

// ApproveReservation handles POST /api/reservations/{id}/approve (admin only)
func (h *Handler) ApproveReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id := booking.ReservationID(chi.URLParam(r, "id"))

	var req DecideRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body is fine
	}

	res, err := h.engine.ApproveReservation(r.Context(), actor, id, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(*res))
}

// RejectReservation handles POST /api/reservations/{id}/reject (admin only)
func (h *Handler) RejectReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id := booking.ReservationID(chi.URLParam(r, "id"))

	var req DecideRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	res, err := h.engine.RejectReservation(r.Context(), actor, id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(*res))
}

// CancelReservation handles POST /api/reservations/{id}/cancel (owner only)
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id := booking.ReservationID(chi.URLParam(r, "id"))

	if err := h.engine.CancelReservation(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteReservation handles POST /api/reservations/{id}/complete (admin only)
func (h *Handler) CompleteReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id := booking.ReservationID(chi.URLParam(r, "id"))

	res, err := h.engine.CompleteReservation(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(*res))
}

// =============================================================================
// AUDIT TRAIL
// =============================================================================

// ReservationLog handles GET /api/reservations/{id}/log
func (h *Handler) ReservationLog(w http.ResponseWriter, r *http.Request) {
	id := booking.ReservationID(chi.URLParam(r, "id"))

	// 404 for unknown reservations rather than an empty trail.
	if _, err := h.engine.GetReservation(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.engine.AuditTrail(r.Context(), booking.LogFilter{ReservationID: &id})
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]LogEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toLogEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// STATS
// =============================================================================

// GetStats handles GET /api/stats?from=...&to=...&resource_id=...
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, ok := parseWindow(w, q.Get("from"), q.Get("to"))
	if !ok {
		return
	}

	var resourceID *booking.ResourceID
	if v := q.Get("resource_id"); v != "" {
		id := booking.ResourceID(v)
		resourceID = &id
	}

	stats, err := h.stats.GetStats(r.Context(), resourceID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, n := range stats.ByStatus {
		byStatus[string(status)] = n
	}
	dto := StatsDTO{
		From:            stats.Window.Start.Format(time.RFC3339),
		To:              stats.Window.End.Format(time.RFC3339),
		ByStatus:        byStatus,
		Total:           stats.Total,
		BookedMinutes:   int64(stats.BookedTime.Minutes()),
		UtilizationRate: stats.Utilization.String(),
	}
	if stats.ResourceID != nil {
		dto.ResourceID = string(*stats.ResourceID)
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe handles POST /api/subscriptions
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if h.subs == nil {
		writeErrorMessage(w, http.StatusNotFound, "push notifications are disabled")
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Endpoint == "" || req.P256DH == "" || req.Auth == "" {
		writeErrorMessage(w, http.StatusBadRequest, "endpoint, p256dh and auth are required")
		return
	}

	sub := notify.Subscription{
		Endpoint:    req.Endpoint,
		P256DH:      req.P256DH,
		Auth:        req.Auth,
		RequesterID: actor.ID,
		CreatedAt:   time.Now(),
	}
	if err := h.subs.SaveSubscription(r.Context(), sub); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func parseWindow(w http.ResponseWriter, startStr, endStr string) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "start must be RFC3339")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "end must be RFC3339")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing left to do but log.
		log.Printf("api: failed to encode response: %v", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeError maps engine errors onto HTTP status codes. Conflict errors
// include the colliding windows so clients can offer alternatives.
func writeError(w http.ResponseWriter, err error) {
	var ce *booking.ConflictError
	if errors.As(err, &ce) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:   ce.Error(),
			Code:    "conflict",
			Details: toWindowDTOs(ce.Conflicts),
		})
		return
	}

	switch {
	case errors.Is(err, booking.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "validation"})
	case errors.Is(err, booking.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: err.Error(), Code: "unauthorized"})
	case errors.Is(err, booking.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, booking.ErrState), errors.Is(err, booking.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "conflict"})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"})
	}
}
