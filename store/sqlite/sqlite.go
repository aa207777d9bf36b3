/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements booking.Store and notify.SubscriptionStore using SQLite. In
  production the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  resources:          Bookable facilities (lock anchors, read-mostly)
  blocks:             Blackout windows (insert-only)
  reservations:       Reservation rows (status updates only, never deleted)
  reservation_log:    Append-only audit trail
  push_subscriptions: Web push endpoints per requester

OVERLAP QUERIES:
  Half-open interval intersection is expressed directly in SQL:
      start_time < :end AND :start < end_time
  Both comparisons are strict so abutting windows never match.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE or DELETE on blocks and reservation_log
  - Reservations are updated (status/decision fields) but never deleted

CONCURRENCY:
  Uses sync.RWMutex for thread-safety alongside WAL mode. The engine's
  per-resource locks provide the check-then-write atomicity; this mutex
  only guards the connection. In production with PostgreSQL, database-level
  row locks (SELECT ... FOR UPDATE) take over both roles.

USAGE:
  store, err := sqlite.New("./data/facility.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := booking.NewEngine(store, booking.DefaultPolicy(), nil)

SEE ALSO:
  - booking/store.go: Interface definitions
  - booking/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/facility-engine/booking"
	"github.com/warp/facility-engine/notify"
)

// Store implements the booking storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Bookable facilities
	CREATE TABLE IF NOT EXISTS resources (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		capacity INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		requires_approval BOOLEAN NOT NULL DEFAULT TRUE,
		default_equipment_json TEXT,
		created_at TEXT NOT NULL
	);

	-- Blackout windows (insert-only)
	CREATE TABLE IF NOT EXISTS blocks (
		id TEXT PRIMARY KEY,
		resource_id TEXT NOT NULL REFERENCES resources(id),
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		reason TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_blocks_resource_window
		ON blocks(resource_id, start_time, end_time);

	-- Reservations (status changes only, never deleted)
	CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		resource_id TEXT NOT NULL REFERENCES resources(id),
		requester_id TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		party_size INTEGER NOT NULL DEFAULT 1,
		purpose TEXT,
		equipment_json TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		admin_note TEXT,
		rejection_reason TEXT,
		approved_by TEXT,
		approved_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- CRITICAL: the conflict-detection hot path
	CREATE INDEX IF NOT EXISTS idx_reservations_resource_window
		ON reservations(resource_id, start_time, end_time)
		WHERE status IN ('pending', 'approved');

	CREATE INDEX IF NOT EXISTS idx_reservations_requester
		ON reservations(requester_id);
	CREATE INDEX IF NOT EXISTS idx_reservations_status
		ON reservations(status);

	-- Audit trail (append-only)
	CREATE TABLE IF NOT EXISTS reservation_log (
		id TEXT PRIMARY KEY,
		reservation_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		actor_type TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		payload_json TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_log_reservation
		ON reservation_log(reservation_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_log_actor
		ON reservation_log(actor_id);

	-- Web push subscriptions
	CREATE TABLE IF NOT EXISTS push_subscriptions (
		endpoint TEXT PRIMARY KEY,
		p256dh TEXT NOT NULL,
		auth TEXT NOT NULL,
		requester_id TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_subscriptions_requester
		ON push_subscriptions(requester_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RESOURCE STORE (booking.ResourceStore interface)
// =============================================================================

// SaveResource inserts or updates a resource.
func (s *Store) SaveResource(ctx context.Context, r booking.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	equipmentJSON, _ := json.Marshal(r.DefaultEquipment)

	query := `
		INSERT INTO resources (id, name, type, capacity, is_active, requires_approval, default_equipment_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			capacity = excluded.capacity,
			is_active = excluded.is_active,
			requires_approval = excluded.requires_approval,
			default_equipment_json = excluded.default_equipment_json
	`

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.Name, r.Type, r.Capacity, r.IsActive, r.RequiresApproval,
		string(equipmentJSON), createdAt.Format(time.RFC3339),
	)
	return err
}

// GetResource retrieves a resource by ID. Returns nil when not found.
func (s *Store) GetResource(ctx context.Context, id booking.ResourceID) (*booking.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, type, capacity, is_active, requires_approval, default_equipment_json, created_at
		FROM resources WHERE id = ?
	`

	var r booking.Resource
	var equipmentJSON sql.NullString
	var createdAt string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.Name, &r.Type, &r.Capacity, &r.IsActive, &r.RequiresApproval,
		&equipmentJSON, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if equipmentJSON.Valid && equipmentJSON.String != "" {
		json.Unmarshal([]byte(equipmentJSON.String), &r.DefaultEquipment)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

// ListResources returns all resources ordered by name.
func (s *Store) ListResources(ctx context.Context) ([]booking.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, type, capacity, is_active, requires_approval, default_equipment_json, created_at
		FROM resources ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []booking.Resource
	for rows.Next() {
		var r booking.Resource
		var equipmentJSON sql.NullString
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Capacity, &r.IsActive,
			&r.RequiresApproval, &equipmentJSON, &createdAt); err != nil {
			return nil, err
		}
		if equipmentJSON.Valid && equipmentJSON.String != "" {
			json.Unmarshal([]byte(equipmentJSON.String), &r.DefaultEquipment)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// =============================================================================
// BLOCK STORE (booking.BlockStore interface)
// =============================================================================

// SaveBlock inserts a blackout window. Blocks are insert-only.
func (s *Store) SaveBlock(ctx context.Context, b booking.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO blocks (id, resource_id, start_time, end_time, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.ResourceID,
		b.Start.UTC().Format(time.RFC3339), b.End.UTC().Format(time.RFC3339),
		b.Reason, createdAt.Format(time.RFC3339),
	)
	return err
}

// ListBlocksOverlapping returns blocks intersecting [w.Start, w.End).
func (s *Store) ListBlocksOverlapping(ctx context.Context, id booking.ResourceID, w booking.Window) ([]booking.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Half-open overlap: strict inequalities on both sides.
	query := `
		SELECT id, resource_id, start_time, end_time, reason, created_at
		FROM blocks
		WHERE resource_id = ? AND start_time < ? AND ? < end_time
		ORDER BY start_time ASC
	`

	return s.queryBlocks(ctx, query, id,
		w.End.UTC().Format(time.RFC3339), w.Start.UTC().Format(time.RFC3339))
}

// ListBlocks returns all blocks for a resource.
func (s *Store) ListBlocks(ctx context.Context, id booking.ResourceID) ([]booking.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, resource_id, start_time, end_time, reason, created_at
		FROM blocks
		WHERE resource_id = ?
		ORDER BY start_time ASC
	`

	return s.queryBlocks(ctx, query, id)
}

func (s *Store) queryBlocks(ctx context.Context, query string, args ...any) ([]booking.Block, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []booking.Block
	for rows.Next() {
		var b booking.Block
		var start, end, createdAt string
		var reason sql.NullString
		if err := rows.Scan(&b.ID, &b.ResourceID, &start, &end, &reason, &createdAt); err != nil {
			return nil, err
		}
		b.Start, _ = time.Parse(time.RFC3339, start)
		b.End, _ = time.Parse(time.RFC3339, end)
		b.Reason = reason.String
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// =============================================================================
// RESERVATION STORE (booking.ReservationStore interface)
// =============================================================================

const reservationColumns = `id, resource_id, requester_id, start_time, end_time, party_size,
	purpose, equipment_json, status, admin_note, rejection_reason, approved_by, approved_at,
	created_at, updated_at`

// SaveReservation inserts a reservation or updates its decision fields.
func (s *Store) SaveReservation(ctx context.Context, r booking.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	equipmentJSON, _ := json.Marshal(r.RequestedEquipment)

	var approvedAt *string
	if r.ApprovedAt != nil {
		t := r.ApprovedAt.UTC().Format(time.RFC3339)
		approvedAt = &t
	}

	query := `
		INSERT INTO reservations (id, resource_id, requester_id, start_time, end_time, party_size,
			purpose, equipment_json, status, admin_note, rejection_reason, approved_by, approved_at,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			admin_note = excluded.admin_note,
			rejection_reason = excluded.rejection_reason,
			approved_by = excluded.approved_by,
			approved_at = excluded.approved_at,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.ResourceID, r.RequesterID,
		r.StartTime.UTC().Format(time.RFC3339), r.EndTime.UTC().Format(time.RFC3339),
		r.PartySize, r.Purpose, string(equipmentJSON), r.Status,
		nullString(r.AdminNote), nullString(r.RejectionReason), nullString(r.ApprovedBy),
		approvedAt,
		r.CreatedAt.UTC().Format(time.RFC3339), r.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetReservation retrieves a reservation by ID. Returns nil when not found.
func (s *Store) GetReservation(ctx context.Context, id booking.ReservationID) (*booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`

	rs, err := s.queryReservations(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, nil
	}
	return &rs[0], nil
}

// ListActiveOverlapping returns Pending/Approved reservations intersecting
// [w.Start, w.End), excluding excludeID when non-empty.
func (s *Store) ListActiveOverlapping(ctx context.Context, id booking.ResourceID, w booking.Window, excludeID booking.ReservationID) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE resource_id = ?
		  AND status IN ('pending', 'approved')
		  AND start_time < ? AND ? < end_time
	`
	args := []any{id, w.End.UTC().Format(time.RFC3339), w.Start.UTC().Format(time.RFC3339)}

	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}
	query += ` ORDER BY start_time ASC`

	return s.queryReservations(ctx, query, args...)
}

// ListReservations returns reservations matching the filter, newest first.
func (s *Store) ListReservations(ctx context.Context, f booking.ReservationFilter) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conds []string
	var args []any

	if f.ResourceID != nil {
		conds = append(conds, "resource_id = ?")
		args = append(args, *f.ResourceID)
	}
	if f.RequesterID != nil {
		conds = append(conds, "requester_id = ?")
		args = append(args, *f.RequesterID)
	}
	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *f.Status)
	}
	if f.From != nil {
		conds = append(conds, "end_time > ?")
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		conds = append(conds, "start_time < ?")
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return s.queryReservations(ctx, query, args...)
}

// CountByStatus returns counts grouped by status for reservations
// intersecting [w.Start, w.End).
func (s *Store) CountByStatus(ctx context.Context, id *booking.ResourceID, w booking.Window) (map[booking.ReservationStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT status, COUNT(*)
		FROM reservations
		WHERE start_time < ? AND ? < end_time
	`
	args := []any{w.End.UTC().Format(time.RFC3339), w.Start.UTC().Format(time.RFC3339)}

	if id != nil {
		query += ` AND resource_id = ?`
		args = append(args, *id)
	}
	query += ` GROUP BY status`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[booking.ReservationStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[booking.ReservationStatus(status)] = n
	}
	return counts, rows.Err()
}

func (s *Store) queryReservations(ctx context.Context, query string, args ...any) ([]booking.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []booking.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

func scanReservation(rows *sql.Rows) (booking.Reservation, error) {
	var (
		r             booking.Reservation
		start, end    string
		equipmentJSON sql.NullString
		adminNote     sql.NullString
		rejection     sql.NullString
		approvedBy    sql.NullString
		approvedAt    sql.NullString
		createdAt     string
		updatedAt     string
	)

	err := rows.Scan(
		&r.ID, &r.ResourceID, &r.RequesterID, &start, &end, &r.PartySize,
		&r.Purpose, &equipmentJSON, &r.Status, &adminNote, &rejection,
		&approvedBy, &approvedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan reservation: %w", err)
	}

	r.StartTime, _ = time.Parse(time.RFC3339, start)
	r.EndTime, _ = time.Parse(time.RFC3339, end)
	r.AdminNote = adminNote.String
	r.RejectionReason = rejection.String
	r.ApprovedBy = approvedBy.String
	if approvedAt.Valid {
		t, _ := time.Parse(time.RFC3339, approvedAt.String)
		r.ApprovedAt = &t
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	if equipmentJSON.Valid && equipmentJSON.String != "" {
		json.Unmarshal([]byte(equipmentJSON.String), &r.RequestedEquipment)
	}

	return r, nil
}

// =============================================================================
// AUDIT LOG (booking.AuditLog interface)
// =============================================================================

// AppendLog appends an audit entry. Append-only.
func (s *Store) AppendLog(ctx context.Context, e booking.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payloadJSON, _ := json.Marshal(e.Payload)

	query := `
		INSERT INTO reservation_log (id, reservation_id, event_type, actor_type, actor_id, payload_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.ReservationID, e.EventType, e.ActorType, e.ActorID,
		string(payloadJSON), e.Timestamp.UTC().Format(time.RFC3339),
	)
	return err
}

// QueryLog returns audit entries matching the filter, oldest first.
func (s *Store) QueryLog(ctx context.Context, f booking.LogFilter) ([]booking.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conds []string
	var args []any

	if f.ReservationID != nil {
		conds = append(conds, "reservation_id = ?")
		args = append(args, *f.ReservationID)
	}
	if f.ActorID != nil {
		conds = append(conds, "actor_id = ?")
		args = append(args, *f.ActorID)
	}
	if len(f.EventTypes) > 0 {
		placeholders := make([]string, len(f.EventTypes))
		for i, et := range f.EventTypes {
			placeholders[i] = "?"
			args = append(args, et)
		}
		conds = append(conds, "event_type IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.From != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		conds = append(conds, "created_at < ?")
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}

	query := `SELECT id, reservation_id, event_type, actor_type, actor_id, payload_json, created_at FROM reservation_log`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []booking.LogEntry
	for rows.Next() {
		var e booking.LogEntry
		var payloadJSON sql.NullString
		var createdAt string
		if err := rows.Scan(&e.ID, &e.ReservationID, &e.EventType, &e.ActorType,
			&e.ActorID, &payloadJSON, &createdAt); err != nil {
			return nil, err
		}
		if payloadJSON.Valid && payloadJSON.String != "" {
			json.Unmarshal([]byte(payloadJSON.String), &e.Payload)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// PUSH SUBSCRIPTIONS (notify.SubscriptionStore interface)
// =============================================================================

// SaveSubscription inserts or refreshes a push subscription.
func (s *Store) SaveSubscription(ctx context.Context, sub notify.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO push_subscriptions (endpoint, p256dh, auth, requester_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(endpoint) DO UPDATE SET
			p256dh = excluded.p256dh,
			auth = excluded.auth,
			requester_id = excluded.requester_id
	`

	_, err := s.db.ExecContext(ctx, query,
		sub.Endpoint, sub.P256DH, sub.Auth, sub.RequesterID,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListSubscriptionsByRequester returns all push subscriptions for a requester.
func (s *Store) ListSubscriptionsByRequester(ctx context.Context, requesterID string) ([]notify.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT endpoint, p256dh, auth, requester_id, created_at
		FROM push_subscriptions
		WHERE requester_id = ?
	`

	rows, err := s.db.QueryContext(ctx, query, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []notify.Subscription
	for rows.Next() {
		var sub notify.Subscription
		var createdAt string
		if err := rows.Scan(&sub.Endpoint, &sub.P256DH, &sub.Auth, &sub.RequesterID, &createdAt); err != nil {
			return nil, err
		}
		sub.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// DeleteSubscription removes a subscription (expired endpoints).
func (s *Store) DeleteSubscription(ctx context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM push_subscriptions WHERE endpoint = ?", endpoint)
	return err
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"reservation_log", "reservations", "blocks", "push_subscriptions", "resources"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
