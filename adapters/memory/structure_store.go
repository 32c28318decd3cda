package memory

import (
	"context"
	"sort"
	"sync"

	"rpascope/domain/core"
	"rpascope/domain/workflow"
)

// StructureStore is a map-backed structure store. The upstream parser puts
// structures here; the engines only read.
type StructureStore struct {
	mu         sync.RWMutex
	structures map[core.WorkflowID]workflow.Structure
}

// NewStructureStore creates an empty store
func NewStructureStore() *StructureStore {
	return &StructureStore{structures: make(map[core.WorkflowID]workflow.Structure)}
}

// Get returns the structure for a workflow ID
func (s *StructureStore) Get(_ context.Context, id core.WorkflowID) (*workflow.Structure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	structure, ok := s.structures[id]
	if !ok {
		return nil, core.NewNotFoundError("workflow", id.String())
	}
	return &structure, nil
}

// Put stores a structure snapshot, replacing any prior snapshot for the ID
func (s *StructureStore) Put(_ context.Context, structure *workflow.Structure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.structures[structure.WorkflowID] = *structure
	return nil
}

// List returns all known workflow IDs in stable order
func (s *StructureStore) List(_ context.Context) ([]core.WorkflowID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]core.WorkflowID, 0, len(s.structures))
	for id := range s.structures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
