package request

import (
	"strings"
	"time"

	"repairshop/internal/domain/entities"
)

// CreateJobRequest starts a new job record. MonthScope is optional; empty
// means the current month ("2025-03" and "202503" are both accepted).
type CreateJobRequest struct {
	MonthScope string `json:"month_scope"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateStatusRequest) ResolveStatus() entities.JobStatus {
	return entities.JobStatus(strings.TrimSpace(r.Status))
}

// UpdateStageRequest sets the repair stage. Confirmed must be true for
// completedReady (the operator has approved customer-visible "ready"
// messaging). The optional fields feed the stage's detail variant; fields
// irrelevant to the chosen stage are ignored.
type UpdateStageRequest struct {
	Stage     string `json:"stage" binding:"required"`
	Confirmed bool   `json:"confirmed"`

	Technician     string     `json:"technician"`
	QuoteSentAt    *time.Time `json:"quote_sent_at"`
	Insurer        string     `json:"insurer"`
	ClaimNumber    string     `json:"claim_number"`
	ApprovedAmount float64    `json:"approved_amount"`
	Parts          []string   `json:"parts"`
	ExpectedAt     *time.Time `json:"expected_at"`
	Inspector      string     `json:"inspector"`
	NotifiedAt     *time.Time `json:"notified_at"`
}

func (r UpdateStageRequest) ResolveStage() entities.RepairStage {
	return entities.RepairStage(strings.TrimSpace(r.Stage))
}

// ResolveDetail builds the variant payload for the requested stage. Stages
// without any provided data resolve to a nil detail.
func (r UpdateStageRequest) ResolveDetail() entities.StageDetail {
	switch r.ResolveStage() {
	case entities.StageUnderDiagnosis:
		if r.Technician != "" {
			return &entities.UnderDiagnosisDetail{Technician: r.Technician}
		}
	case entities.StageWaitingForClientApproval:
		if r.QuoteSentAt != nil {
			return &entities.WaitingForClientApprovalDetail{QuoteSentAt: r.QuoteSentAt}
		}
	case entities.StageWaitingForInsurance:
		if r.Insurer != "" || r.ClaimNumber != "" {
			return &entities.WaitingForInsuranceDetail{Insurer: r.Insurer, ClaimNumber: r.ClaimNumber}
		}
	case entities.StageInsuranceApproved:
		if r.ApprovedAmount > 0 {
			return &entities.InsuranceApprovedDetail{ApprovedAmount: r.ApprovedAmount}
		}
	case entities.StageRepairInProgress:
		if r.Technician != "" {
			return &entities.RepairInProgressDetail{Technician: r.Technician}
		}
	case entities.StageWaitingForParts:
		if len(r.Parts) > 0 || r.ExpectedAt != nil {
			return &entities.WaitingForPartsDetail{Parts: r.Parts, ExpectedAt: r.ExpectedAt}
		}
	case entities.StageTestingQualityCheck:
		if r.Inspector != "" {
			return &entities.TestingQualityCheckDetail{Inspector: r.Inspector}
		}
	case entities.StageCompletedReady:
		if r.NotifiedAt != nil {
			return &entities.CompletedReadyDetail{NotifiedAt: r.NotifiedAt}
		}
	}
	return nil
}
