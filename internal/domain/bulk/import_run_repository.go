package bulk

import (
	"context"

	"github.com/google/uuid"
)

// ImportRunListResult represents a paginated list of import runs
type ImportRunListResult struct {
	Items      []*ImportRun
	TotalCount int64
	Page       int
	PageSize   int
}

// ImportRunRepository defines the interface for import run persistence
type ImportRunRepository interface {
	// FindByID finds an import run by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ImportRun, error)

	// FindAll returns import runs ordered by creation time, newest first
	FindAll(ctx context.Context, page, pageSize int) (*ImportRunListResult, error)

	// Save saves an import run (create or update)
	Save(ctx context.Context, run *ImportRun) error
}
