package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"repairshop/internal/domain/entities"
	"repairshop/internal/infrastructure/clock"
	"repairshop/internal/usecase/interfaces"
)

var (
	ErrJobNotFound       = errors.New("job record not found")
	ErrInvalidJobID      = errors.New("invalid job record id")
	ErrInvalidLookupCode = errors.New("invalid lookup code")
	ErrInvalidStatus     = errors.New("invalid job status")
	ErrInvalidStage      = errors.New("invalid repair stage")
	ErrReadyNotConfirmed = errors.New("completedReady requires operator confirmation")
	ErrJobNotCompleted   = errors.New("job record is not completed")
)

// IJobRecordUseCase exposes the server-side job record operations.
//
// Ledger mutations through this path persist immediately (the debounced,
// optimistic path lives in Session; HTTP callers are stateless).

type IJobRecordUseCase interface {
	Create(ctx context.Context, monthScope string) (entities.JobRecord, error)
	GetByID(ctx context.Context, id string) (entities.JobRecord, error)
	GetByLookupCode(ctx context.Context, code string) (entities.JobRecord, error)
	List(ctx context.Context, f interfaces.RecordFilter) ([]entities.JobRecord, error)
	UpdateStatus(ctx context.Context, id string, status entities.JobStatus) (entities.JobRecord, error)
	UpdateStage(ctx context.Context, id string, stage entities.RepairStage, detail entities.StageDetail, confirmed bool) (entities.JobRecord, error)
	MutateLedger(ctx context.Context, id string, op LedgerOp) (entities.JobRecord, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
}

type JobRecordUseCase struct {
	repo interfaces.IJobRecordRepository
	seq  *SequenceAllocator
	clk  clock.Clock
}

var _ IJobRecordUseCase = (*JobRecordUseCase)(nil)

func NewJobRecordUseCase(repo interfaces.IJobRecordRepository, seq *SequenceAllocator, clk clock.Clock) *JobRecordUseCase {
	if clk == nil {
		clk = clock.System()
	}
	return &JobRecordUseCase{repo: repo, seq: seq, clk: clk}
}

// Create allocates the sequence number just before the row becomes visible
// and inserts the record. An allocation query error or a duplicate sequence
// (interfaces.ErrSequenceConflict) fails the creation; there is no built-in
// retry.
func (u *JobRecordUseCase) Create(ctx context.Context, monthScope string) (entities.JobRecord, error) {
	sequence, err := u.seq.Allocate(ctx, monthScope)
	if err != nil {
		return entities.JobRecord{}, err
	}

	now := u.clk.Now()
	rec := entities.JobRecord{
		ID:              uuid.NewString(),
		LookupCode:      newLookupCode(),
		Sequence:        sequence,
		Status:          entities.JobStatusPending,
		Stage:           entities.StagePendingInspection,
		Ledger:          entities.CostLedger{Discount: entities.Discount{Kind: entities.DiscountKindFixed}},
		CreatedAt:       now,
		StatusUpdatedAt: now,
		UpdatedAt:       now,
	}
	return u.repo.Create(ctx, rec)
}

func (u *JobRecordUseCase) GetByID(ctx context.Context, id string) (entities.JobRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.JobRecord{}, ErrInvalidJobID
	}

	rec, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.JobRecord{}, err
	}
	if rec.ID == "" {
		return entities.JobRecord{}, ErrJobNotFound
	}
	return rec, nil
}

// GetByLookupCode resolves the customer-facing read-only view.
func (u *JobRecordUseCase) GetByLookupCode(ctx context.Context, code string) (entities.JobRecord, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return entities.JobRecord{}, ErrInvalidLookupCode
	}

	rec, err := u.repo.GetByLookupCode(ctx, code)
	if err != nil {
		return entities.JobRecord{}, err
	}
	if rec.ID == "" || !rec.Visible() {
		return entities.JobRecord{}, ErrJobNotFound
	}
	return rec, nil
}

func (u *JobRecordUseCase) List(ctx context.Context, f interfaces.RecordFilter) ([]entities.JobRecord, error) {
	return u.repo.Query(ctx, f)
}

func (u *JobRecordUseCase) UpdateStatus(ctx context.Context, id string, status entities.JobStatus) (entities.JobRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.JobRecord{}, ErrInvalidJobID
	}
	switch status {
	case entities.JobStatusPending, entities.JobStatusContacted, entities.JobStatusConfirmed, entities.JobStatusCompleted:
	default:
		return entities.JobRecord{}, ErrInvalidStatus
	}

	rec, err := u.repo.Persist(ctx, id, interfaces.PartialUpdate{Status: &status})
	if err != nil {
		return entities.JobRecord{}, err
	}
	if rec.ID == "" {
		return entities.JobRecord{}, ErrJobNotFound
	}
	return rec, nil
}

// UpdateStage sets the repair stage. Any stage may follow any other; the
// progress step is derived, so there is no illegal-transition error. Setting
// completedReady triggers customer-visible "ready" messaging downstream, so
// the caller must pass confirmed=true after obtaining operator confirmation.
func (u *JobRecordUseCase) UpdateStage(ctx context.Context, id string, stage entities.RepairStage, detail entities.StageDetail, confirmed bool) (entities.JobRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.JobRecord{}, ErrInvalidJobID
	}
	if !stage.Valid() {
		return entities.JobRecord{}, ErrInvalidStage
	}
	if detail != nil && detail.Stage() != stage {
		return entities.JobRecord{}, ErrInvalidStage
	}
	if stage == entities.StageCompletedReady && !confirmed {
		return entities.JobRecord{}, ErrReadyNotConfirmed
	}

	rec, err := u.repo.Persist(ctx, id, interfaces.PartialUpdate{Stage: &stage, StageDetail: detail})
	if err != nil {
		return entities.JobRecord{}, err
	}
	if rec.ID == "" {
		return entities.JobRecord{}, ErrJobNotFound
	}
	return rec, nil
}

// MutateLedger applies one ledger op and persists the full recalculated
// snapshot in the same call.
func (u *JobRecordUseCase) MutateLedger(ctx context.Context, id string, op LedgerOp) (entities.JobRecord, error) {
	rec, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.JobRecord{}, err
	}

	ledger, err := applyLedgerOp(rec.Ledger, op)
	if err != nil {
		return entities.JobRecord{}, err
	}

	updated, err := u.repo.Persist(ctx, id, interfaces.PartialUpdate{Ledger: &ledger})
	if err != nil {
		return entities.JobRecord{}, err
	}
	if updated.ID == "" {
		return entities.JobRecord{}, ErrJobNotFound
	}
	return updated, nil
}

func (u *JobRecordUseCase) SoftDelete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidJobID
	}
	return u.repo.SoftDelete(ctx, id)
}

func (u *JobRecordUseCase) Restore(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidJobID
	}
	return u.repo.Restore(ctx, id)
}

// Archive moves a completed record to archived storage; large attachments
// are discarded in the move. The sequence number stays reserved for its
// month, so allocation keeps scanning both tables.
func (u *JobRecordUseCase) Archive(ctx context.Context, id string) error {
	rec, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status != entities.JobStatusCompleted {
		return ErrJobNotCompleted
	}
	return u.repo.Archive(ctx, id)
}

// newLookupCode mints the short code customers use for read-only progress
// lookups. 8 chars of uuid entropy, uppercased for legibility over the phone.
func newLookupCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
