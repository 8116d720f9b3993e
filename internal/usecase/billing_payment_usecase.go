package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"repairshop/internal/domain/entities"
	"repairshop/internal/usecase/interfaces"
)

var (
	ErrBillingPaymentNotFound      = errors.New("billing payment not found")
	ErrInvalidPaymentJobID         = errors.New("invalid job_id")
	ErrInvalidProviderPayload      = errors.New("invalid payment provider payload")
	ErrJobNotReady                 = errors.New("job record is not ready for payment")
	ErrPaymentGatewayNotConfigured = errors.New("payment gateway not configured")
)

// IBillingPaymentUseCase processes a payment for a ready job's ledger total
// and persists the provider outcome.

type IBillingPaymentUseCase interface {
	CreateForJob(ctx context.Context, jobID string, providerPayload json.RawMessage) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.BillingPayment, error)
}

type BillingPaymentUseCase struct {
	repo    interfaces.IBillingPaymentRepository
	jobRepo interfaces.IJobRecordRepository
	gateway interfaces.IPaymentGateway
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(repo interfaces.IBillingPaymentRepository, jobRepo interfaces.IJobRecordRepository, gateway interfaces.IPaymentGateway) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{repo: repo, jobRepo: jobRepo, gateway: gateway}
}

// CreateForJob charges the stored ledger total of a completedReady job.
// The amount source of truth is the record in the store, never the caller
// payload; external_reference links the provider event back to the job.
func (u *BillingPaymentUseCase) CreateForJob(ctx context.Context, jobID string, providerPayload json.RawMessage) (entities.BillingPayment, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentJobID
	}
	if len(providerPayload) == 0 || !json.Valid(providerPayload) {
		return entities.BillingPayment{}, ErrInvalidProviderPayload
	}
	if u.gateway == nil {
		return entities.BillingPayment{}, ErrPaymentGatewayNotConfigured
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if job.ID == "" {
		return entities.BillingPayment{}, ErrJobNotFound
	}
	if job.Stage != entities.StageCompletedReady {
		return entities.BillingPayment{}, ErrJobNotReady
	}

	var reqMap map[string]any
	if err := json.Unmarshal(providerPayload, &reqMap); err != nil {
		return entities.BillingPayment{}, ErrInvalidProviderPayload
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = jobID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Job %s", job.Sequence)
	}
	reqMap["transaction_amount"] = job.Ledger.Total
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	status := entities.PaymentStatusPending
	switch strings.ToLower(providerStatus) {
	case "approved", "accredited":
		status = entities.PaymentStatusApproved
	case "rejected", "cancelled":
		status = entities.PaymentStatusDenied
	}

	var parsed map[string]interface{}
	_ = json.Unmarshal(providerResp, &parsed)

	if providerPaymentID == "" {
		providerPaymentID = uuid.NewString()
	}
	p := entities.BillingPayment{
		ID:                 providerPaymentID,
		JobID:              jobID,
		Amount:             job.Ledger.Total,
		Date:               time.Now().UTC(),
		Status:             status,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	return u.repo.Create(ctx, p)
}

func (u *BillingPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListByJobID(ctx context.Context, jobID string) ([]entities.BillingPayment, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrInvalidPaymentJobID
	}
	return u.repo.ListByJobID(ctx, jobID)
}
