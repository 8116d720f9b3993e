package interfaces

import (
	"context"
	"errors"

	"repairshop/internal/domain/entities"
)

// ErrSequenceConflict is returned by Create when the record's sequence
// number was already taken by a concurrent creation. The allocator computes
// next numbers with a plain read-then-write, so this is an expected race;
// the caller surfaces it as a creation failure with no automatic retry.
var ErrSequenceConflict = errors.New("sequence number already taken")

// PartialUpdate names the field groups a write may carry. Ledger updates
// always carry the full ledger snapshot, never a diff.
type PartialUpdate struct {
	Ledger *entities.CostLedger
	Status *entities.JobStatus

	// Stage and StageDetail travel together; StageDetail may be nil for
	// stages without extra data.
	Stage       *entities.RepairStage
	StageDetail entities.StageDetail
}

// RecordFilter selects records for list/search views and for sequence
// allocation queries.
type RecordFilter struct {
	Status         entities.JobStatus
	SequencePrefix string
	IncludeDeleted bool
	IncludeArchive bool
}

// IJobRecordRepository abstracts DynamoDB persistence for JobRecord.
//
// The service must be able to:
//   - create a record whose sequence number is unique for its month across
//     active and archived storage (duplicate insert => ErrSequenceConflict)
//   - write partial updates (full-ledger snapshots, status, stage)
//   - query by filter for list views and max-sequence scans
//   - soft delete / restore, and archive completed records

type IJobRecordRepository interface {
	Create(ctx context.Context, rec entities.JobRecord) (entities.JobRecord, error)
	GetByID(ctx context.Context, id string) (entities.JobRecord, error)
	GetByLookupCode(ctx context.Context, code string) (entities.JobRecord, error)
	Persist(ctx context.Context, id string, upd PartialUpdate) (entities.JobRecord, error)
	Query(ctx context.Context, f RecordFilter) ([]entities.JobRecord, error)
	MaxSequence(ctx context.Context, prefix string) (int, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
}
