package entities

import "time"

// JobStatus represents the customer-contact lifecycle of a job record.
//
// Domain notes:
//   - The job-record service is the source of truth for job state.
//   - Status is independent from the repair stage: status tracks the
//     conversation with the customer, the stage tracks the workshop floor.

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusContacted JobStatus = "contacted"
	JobStatusConfirmed JobStatus = "confirmed"
	JobStatusCompleted JobStatus = "completed"
)

// AttachmentRef is an opaque pointer to a stored binary (photo, scan).
// Upload and storage mechanics live outside this service; archived records
// drop their refs.
type AttachmentRef struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// JobRecord is one vehicle visit, tracked from intake to completion.
//
// Storage model (DynamoDB):
//   - PK: id
//   - Active and archived records live in separate tables; the sequence
//     number must stay unique per month across both.
//
// Concurrency:
//   - Records are mutated by multiple staff sessions without row locking.
//     Consistency is last-writer-wins at record granularity, stabilized by
//     each session's suppression window (see usecase package).
type JobRecord struct {
	ID         string    `json:"id"`
	LookupCode string    `json:"lookup_code"`
	Sequence   string    `json:"sequence"`
	Status     JobStatus `json:"status"`

	Stage       RepairStage `json:"stage"`
	StageDetail StageDetail `json:"stage_detail,omitempty"`

	Ledger      CostLedger      `json:"ledger"`
	Attachments []AttachmentRef `json:"attachments,omitempty"`

	CreatedAt       time.Time  `json:"created_at"`
	StatusUpdatedAt time.Time  `json:"status_updated_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// Visible reports whether the record appears in default views.
// Soft-deleted records are hidden but restorable until a permanent purge.
func (r JobRecord) Visible() bool {
	return r.DeletedAt == nil
}
