package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rpascope/domain/core"
	"rpascope/domain/workflow"
	"rpascope/ports"
)

// StructureStoreImpl implements ports.StructureStore for PostgreSQL.
// Structures are stored as JSONB snapshots keyed by workflow ID; the engine
// never mutates them.
type StructureStoreImpl struct {
	db *sqlx.DB
}

// NewStructureStore creates a new PostgreSQL structure store
func NewStructureStore(db *sqlx.DB) ports.StructureStore {
	return &StructureStoreImpl{db: db}
}

// Get loads the structure snapshot for a workflow ID
func (s *StructureStoreImpl) Get(ctx context.Context, id core.WorkflowID) (*workflow.Structure, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM workflow_structures WHERE workflow_id = $1`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("workflow", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load structure %s: %w", id, err)
	}

	var structure workflow.Structure
	if err := json.Unmarshal(payload, &structure); err != nil {
		return nil, fmt.Errorf("failed to unmarshal structure %s: %w", id, err)
	}
	return &structure, nil
}

// Put upserts a structure snapshot
func (s *StructureStoreImpl) Put(ctx context.Context, structure *workflow.Structure) error {
	payload, err := json.Marshal(structure)
	if err != nil {
		return fmt.Errorf("failed to marshal structure %s: %w", structure.WorkflowID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO workflow_structures (workflow_id, platform, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (workflow_id) DO UPDATE SET
			platform = EXCLUDED.platform,
			payload = EXCLUDED.payload,
			updated_at = NOW()`,
		structure.WorkflowID, structure.Platform, payload)
	if err != nil {
		return fmt.Errorf("failed to store structure %s: %w", structure.WorkflowID, err)
	}
	return nil
}

// List returns all known workflow IDs
func (s *StructureStoreImpl) List(ctx context.Context) ([]core.WorkflowID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT workflow_id FROM workflow_structures ORDER BY workflow_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list structures: %w", err)
	}
	defer rows.Close()

	var ids []core.WorkflowID
	for rows.Next() {
		var id core.WorkflowID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
