package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dealwise/pkg/core/underwrite"
)

// ErrNotFound is returned when no deal exists under the requested name.
var ErrNotFound = errors.New("deal not found")

var errNameRequired = errors.New("deal name is required")

// DealRecord is one saved set of deal assumptions. SourceRef points back at
// where the deal came from, such as a listing id from a property export.
type DealRecord struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	SourceRef string            `json:"sourceRef,omitempty"`
	Inputs    underwrite.Inputs `json:"inputs"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// DealRepository is the storage contract the API, CLI, and pipeline depend
// on. DealRepo backs it with Postgres; MemoryRepo serves tests and offline
// runs.
type DealRepository interface {
	Save(ctx context.Context, rec *DealRecord) error
	Load(ctx context.Context, name string) (*DealRecord, error)
	List(ctx context.Context) ([]DealRecord, error)
}

// DealRepo stores deals in Postgres via the shared pool.
type DealRepo struct{}

// NewDealRepo creates a new repository instance.
func NewDealRepo() *DealRepo {
	return &DealRepo{}
}

// Schema assumption (managed elsewhere, e.g. migrations):
//
// CREATE TABLE IF NOT EXISTS deals (
//   id UUID PRIMARY KEY,
//   name TEXT NOT NULL,
//   source_ref TEXT,
//   inputs_json JSONB NOT NULL,
//   updated_at TIMESTAMPTZ
// );
// CREATE UNIQUE INDEX IF NOT EXISTS deals_name_key ON deals (name);

// Save upserts the record by name. A fresh record gets a new id; saving
// over an existing name keeps the stored id and replaces everything else.
func (r *DealRepo) Save(ctx context.Context, rec *DealRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if rec.Name == "" {
		return errNameRequired
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now()

	inputsJSON, err := json.Marshal(rec.Inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}

	query := `
		INSERT INTO deals (id, name, source_ref, inputs_json, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name)
		DO UPDATE SET
			source_ref = EXCLUDED.source_ref,
			inputs_json = EXCLUDED.inputs_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := pool.Exec(ctx, query, rec.ID, rec.Name, rec.SourceRef, inputsJSON, rec.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save deal %s: %w", rec.Name, err)
	}
	return nil
}

// Load retrieves one deal by name.
func (r *DealRepo) Load(ctx context.Context, name string) (*DealRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT id, name, COALESCE(source_ref, ''), inputs_json, updated_at
		FROM deals WHERE name = $1
	`

	var rec DealRecord
	var inputsJSON []byte
	err := pool.QueryRow(ctx, query, name).Scan(&rec.ID, &rec.Name, &rec.SourceRef, &inputsJSON, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load deal %s: %w", name, err)
	}

	if err := json.Unmarshal(inputsJSON, &rec.Inputs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inputs for %s: %w", name, err)
	}
	return &rec, nil
}

// List returns every saved deal, most recently updated first.
func (r *DealRepo) List(ctx context.Context) ([]DealRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT id, name, COALESCE(source_ref, ''), inputs_json, updated_at
		FROM deals ORDER BY updated_at DESC, name ASC
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	var deals []DealRecord
	for rows.Next() {
		var rec DealRecord
		var inputsJSON []byte
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.SourceRef, &inputsJSON, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deal row: %w", err)
		}
		if err := json.Unmarshal(inputsJSON, &rec.Inputs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inputs for %s: %w", rec.Name, err)
		}
		deals = append(deals, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deal rows: %w", err)
	}

	return deals, nil
}
