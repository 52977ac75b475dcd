package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/import1688/backend/internal/domain/bulk"
	"github.com/import1688/backend/internal/domain/shared"
)

// GormImportRunRepository implements ImportRunRepository using GORM
type GormImportRunRepository struct {
	db *gorm.DB
}

// NewGormImportRunRepository creates a new GormImportRunRepository
func NewGormImportRunRepository(db *gorm.DB) *GormImportRunRepository {
	return &GormImportRunRepository{db: db}
}

// FindByID finds an import run by ID
func (r *GormImportRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*bulk.ImportRun, error) {
	var run bulk.ImportRun
	if err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := run.SetOutcomeDetailsFromJSON(run.OutcomeData); err != nil {
		return nil, err
	}
	return &run, nil
}

// FindAll returns import runs ordered by creation time, newest first
func (r *GormImportRunRepository) FindAll(ctx context.Context, page, pageSize int) (*bulk.ImportRunListResult, error) {
	query := r.db.WithContext(ctx).Model(&bulk.ImportRun{})

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, err
	}

	if page > 0 && pageSize > 0 {
		offset := (page - 1) * pageSize
		query = query.Offset(offset).Limit(pageSize)
	}
	query = query.Order("created_at DESC")

	var runs []*bulk.ImportRun
	if err := query.Find(&runs).Error; err != nil {
		return nil, err
	}
	for _, run := range runs {
		if err := run.SetOutcomeDetailsFromJSON(run.OutcomeData); err != nil {
			return nil, err
		}
	}

	return &bulk.ImportRunListResult{
		Items:      runs,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// Save saves an import run, serializing per-order results alongside it
func (r *GormImportRunRepository) Save(ctx context.Context, run *bulk.ImportRun) error {
	data, err := run.OutcomeDetailsJSON()
	if err != nil {
		return err
	}
	run.OutcomeData = data
	return r.db.WithContext(ctx).Save(run).Error
}
