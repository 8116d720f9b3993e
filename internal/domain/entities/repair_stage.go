package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// RepairStage describes physical repair progress on the workshop floor.
//
// The order below is the usual path, but it is not enforced: any stage may
// be set from any other (a car can go back to waitingForParts mid-repair).
// The progress step is a display aid derived from the stage, never stored.

type RepairStage string

const (
	StagePendingInspection        RepairStage = "pendingInspection"
	StageUnderDiagnosis           RepairStage = "underDiagnosis"
	StageWaitingForClientApproval RepairStage = "waitingForClientApproval"
	StageWaitingForInsurance      RepairStage = "waitingForInsurance"
	StageInsuranceApproved        RepairStage = "insuranceApproved"
	StageRepairInProgress         RepairStage = "repairInProgress"
	StageWaitingForParts          RepairStage = "waitingForParts"
	StageTestingQualityCheck      RepairStage = "testingQualityCheck"
	StageCompletedReady           RepairStage = "completedReady"
)

// progressSteps maps each stage to the 1..5 customer progress bar.
// Several stages share a step on purpose.
var progressSteps = map[RepairStage]int{
	StagePendingInspection:        1,
	StageUnderDiagnosis:           2,
	StageWaitingForClientApproval: 2,
	StageWaitingForInsurance:      2,
	StageInsuranceApproved:        2,
	StageRepairInProgress:         3,
	StageWaitingForParts:          3,
	StageTestingQualityCheck:      4,
	StageCompletedReady:           5,
}

// ProgressStep returns the customer-facing progress bar position (1..5).
// Unknown stages report step 1 rather than failing; the value is cosmetic.
func (s RepairStage) ProgressStep() int {
	if step, ok := progressSteps[s]; ok {
		return step
	}
	return 1
}

// Valid reports whether s is one of the known stage variants.
func (s RepairStage) Valid() bool {
	_, ok := progressSteps[s]
	return ok
}

// StageDetail carries the optional data relevant to a single stage variant.
// Each variant has its own struct; a record holds at most the detail of its
// current stage.
type StageDetail interface {
	Stage() RepairStage
}

type UnderDiagnosisDetail struct {
	Technician string `json:"technician,omitempty"`
}

type WaitingForClientApprovalDetail struct {
	QuoteSentAt *time.Time `json:"quote_sent_at,omitempty"`
}

type WaitingForInsuranceDetail struct {
	Insurer     string `json:"insurer,omitempty"`
	ClaimNumber string `json:"claim_number,omitempty"`
}

type InsuranceApprovedDetail struct {
	ApprovedAmount float64 `json:"approved_amount,omitempty"`
}

type RepairInProgressDetail struct {
	Technician string `json:"technician,omitempty"`
}

type WaitingForPartsDetail struct {
	Parts      []string   `json:"parts,omitempty"`
	ExpectedAt *time.Time `json:"expected_at,omitempty"`
}

type TestingQualityCheckDetail struct {
	Inspector string `json:"inspector,omitempty"`
}

type CompletedReadyDetail struct {
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
}

func (UnderDiagnosisDetail) Stage() RepairStage           { return StageUnderDiagnosis }
func (WaitingForClientApprovalDetail) Stage() RepairStage { return StageWaitingForClientApproval }
func (WaitingForInsuranceDetail) Stage() RepairStage      { return StageWaitingForInsurance }
func (InsuranceApprovedDetail) Stage() RepairStage        { return StageInsuranceApproved }
func (RepairInProgressDetail) Stage() RepairStage         { return StageRepairInProgress }
func (WaitingForPartsDetail) Stage() RepairStage          { return StageWaitingForParts }
func (TestingQualityCheckDetail) Stage() RepairStage      { return StageTestingQualityCheck }
func (CompletedReadyDetail) Stage() RepairStage           { return StageCompletedReady }

// EncodeStageDetail serializes a detail for storage. Nil details (stages
// without extra data, e.g. pendingInspection) encode as nil.
func EncodeStageDetail(d StageDetail) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// DecodeStageDetail rebuilds the variant struct for a stored stage. Stages
// that carry no detail return nil.
func DecodeStageDetail(stage RepairStage, raw []byte) (StageDetail, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var d StageDetail
	switch stage {
	case StageUnderDiagnosis:
		d = &UnderDiagnosisDetail{}
	case StageWaitingForClientApproval:
		d = &WaitingForClientApprovalDetail{}
	case StageWaitingForInsurance:
		d = &WaitingForInsuranceDetail{}
	case StageInsuranceApproved:
		d = &InsuranceApprovedDetail{}
	case StageRepairInProgress:
		d = &RepairInProgressDetail{}
	case StageWaitingForParts:
		d = &WaitingForPartsDetail{}
	case StageTestingQualityCheck:
		d = &TestingQualityCheckDetail{}
	case StageCompletedReady:
		d = &CompletedReadyDetail{}
	default:
		return nil, nil
	}

	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("decode stage detail for %s: %w", stage, err)
	}
	return d, nil
}
