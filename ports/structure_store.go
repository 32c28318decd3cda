package ports

import (
	"context"

	"rpascope/domain/core"
	"rpascope/domain/workflow"
)

// StructureStore provides parsed workflow structures. The upstream parser is
// an external collaborator; the engine only ever reads structures by ID.
type StructureStore interface {
	Get(ctx context.Context, id core.WorkflowID) (*workflow.Structure, error)
	Put(ctx context.Context, structure *workflow.Structure) error
	List(ctx context.Context) ([]core.WorkflowID, error)
}
