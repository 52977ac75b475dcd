package bulk

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/import1688/backend/internal/domain/shared"
)

// ImportRunStatus represents the status of an order import run
type ImportRunStatus string

const (
	ImportRunStatusDraft      ImportRunStatus = "draft"
	ImportRunStatusProcessing ImportRunStatus = "processing"
	ImportRunStatusDone       ImportRunStatus = "done"
	ImportRunStatusFailed     ImportRunStatus = "failed"
)

// IsValid checks if the status is valid
func (s ImportRunStatus) IsValid() bool {
	switch s {
	case ImportRunStatusDraft, ImportRunStatusProcessing, ImportRunStatusDone, ImportRunStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if this is a terminal state
func (s ImportRunStatus) IsTerminal() bool {
	return s == ImportRunStatusDone || s == ImportRunStatusFailed
}

// OrderOutcomeDetail records what happened to one marketplace order
// during a run, for the run's audit trail.
type OrderOutcomeDetail struct {
	OrderNo      string `json:"order_no"`
	Status       string `json:"status"`
	PurchaseName string `json:"purchase_name,omitempty"`
	Message      string `json:"message,omitempty"`
}

// ImportRun tracks one upload of a marketplace order sheet from draft
// through processing to a terminal state, together with per-order results.
type ImportRun struct {
	shared.BaseAggregateRoot
	FileName       string               `json:"file_name" gorm:"type:varchar(255);not null"`
	FileSize       int64                `json:"file_size" gorm:"not null"`
	TotalOrders    int                  `json:"total_orders"`
	CreatedOrders  int                  `json:"created_orders"`
	PartialOrders  int                  `json:"partial_orders"`
	SkippedOrders  int                  `json:"skipped_orders"`
	FailedOrders   int                  `json:"failed_orders"`
	Status         ImportRunStatus      `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	Summary        string               `json:"summary" gorm:"type:text"`
	OutcomeDetails []OrderOutcomeDetail `json:"outcome_details,omitempty" gorm:"-"`
	// OutcomeData is the JSON-serialized form of OutcomeDetails for storage
	OutcomeData string     `json:"-" gorm:"column:outcome_data;type:text"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TableName returns the table name for GORM
func (ImportRun) TableName() string {
	return "import_runs"
}

// NewImportRun creates a new draft import run for an uploaded sheet
func NewImportRun(fileName string, fileSize int64) (*ImportRun, error) {
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if fileSize < 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size cannot be negative")
	}

	return &ImportRun{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FileName:          fileName,
		FileSize:          fileSize,
		Status:            ImportRunStatusDraft,
		OutcomeDetails:    make([]OrderOutcomeDetail, 0),
	}, nil
}

// StartProcessing marks the run as started
func (r *ImportRun) StartProcessing(totalOrders int) error {
	if r.Status != ImportRunStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start processing from state: %s", r.Status))
	}
	if totalOrders < 0 {
		return shared.NewDomainError("INVALID_TOTAL_ORDERS", "Total orders cannot be negative")
	}

	r.Status = ImportRunStatusProcessing
	r.TotalOrders = totalOrders
	now := time.Now()
	r.StartedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Complete marks the run as done and records the per-order results
func (r *ImportRun) Complete(created, partial, skipped, failed int, summary string, details []OrderOutcomeDetail) error {
	if r.Status != ImportRunStatusProcessing {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete from state: %s", r.Status))
	}

	r.Status = ImportRunStatusDone
	r.CreatedOrders = created
	r.PartialOrders = partial
	r.SkippedOrders = skipped
	r.FailedOrders = failed
	r.Summary = summary
	r.OutcomeDetails = details
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Fail marks the run as failed before any order could be processed
// (unreadable file, bad header, decode error)
func (r *ImportRun) Fail(reason string) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail from terminal state: %s", r.Status))
	}

	r.Status = ImportRunStatusFailed
	r.Summary = reason
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// IsDone returns true if the run finished processing
func (r *ImportRun) IsDone() bool {
	return r.Status == ImportRunStatusDone
}

// OutcomeDetailsJSON returns the per-order results as a JSON string
func (r *ImportRun) OutcomeDetailsJSON() (string, error) {
	if len(r.OutcomeDetails) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(r.OutcomeDetails)
	if err != nil {
		return "", fmt.Errorf("failed to marshal outcome details: %w", err)
	}
	return string(data), nil
}

// SetOutcomeDetailsFromJSON parses per-order results from a JSON string
func (r *ImportRun) SetOutcomeDetailsFromJSON(jsonStr string) error {
	if jsonStr == "" || jsonStr == "[]" {
		r.OutcomeDetails = make([]OrderOutcomeDetail, 0)
		return nil
	}
	var details []OrderOutcomeDetail
	if err := json.Unmarshal([]byte(jsonStr), &details); err != nil {
		return fmt.Errorf("failed to unmarshal outcome details: %w", err)
	}
	r.OutcomeDetails = details
	return nil
}

// Duration returns how long the run took
func (r *ImportRun) Duration() time.Duration {
	if r.StartedAt == nil {
		return 0
	}
	end := time.Now()
	if r.CompletedAt != nil {
		end = *r.CompletedAt
	}
	return end.Sub(*r.StartedAt)
}
