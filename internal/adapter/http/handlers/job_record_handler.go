package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	request "repairshop/internal/adapter/http/dto/request"
	response "repairshop/internal/adapter/http/dto/response"
	"repairshop/internal/domain/entities"
	"repairshop/internal/usecase"
	"repairshop/internal/usecase/interfaces"
	"repairshop/pkg"
)

var errInvalidJobPayload = pkg.NewDomainErrorSimple("INVALID_JOB_INPUT", "Invalid job record payload", http.StatusBadRequest)

// JobRecordHandler handles HTTP requests for job records: creation with
// sequence allocation, lifecycle updates, ledger mutations and the
// customer-facing lookup view.

type JobRecordHandler struct {
	usecase usecase.IJobRecordUseCase
}

func NewJobRecordHandler(uc usecase.IJobRecordUseCase) *JobRecordHandler {
	return &JobRecordHandler{usecase: uc}
}

// CreateJob allocates a sequence number and inserts the record. A sequence
// collision (two staff creating at the same moment) surfaces as 409; the
// client retries explicitly.
func (h *JobRecordHandler) CreateJob(c *gin.Context) {
	// An empty body is fine: every creation field is optional.
	var payload request.CreateJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	rec, err := h.usecase.Create(c.Request.Context(), payload.MonthScope)
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromJobRecord(rec))
}

func (h *JobRecordHandler) GetJob(c *gin.Context) {
	rec, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromJobRecord(rec))
}

// ListJobs supports status, month (sequence prefix) and deleted filters.
// The request context carries cancellation: an abandoned search aborts the
// store query instead of racing a newer one.
func (h *JobRecordHandler) ListJobs(c *gin.Context) {
	f := interfaces.RecordFilter{
		Status:         entities.JobStatus(c.Query("status")),
		SequencePrefix: c.Query("month"),
		IncludeDeleted: c.Query("include_deleted") == "true",
		IncludeArchive: c.Query("include_archive") == "true",
	}

	recs, err := h.usecase.List(c.Request.Context(), f)
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromJobRecords(recs))
}

// LookupJob is the customer read-only view behind the lookup code.
func (h *JobRecordHandler) LookupJob(c *gin.Context) {
	rec, err := h.usecase.GetByLookupCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.CustomerViewFromJobRecord(rec))
}

func (h *JobRecordHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	rec, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), payload.ResolveStatus())
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromJobRecord(rec))
}

func (h *JobRecordHandler) UpdateStage(c *gin.Context) {
	var payload request.UpdateStageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	rec, err := h.usecase.UpdateStage(c.Request.Context(), c.Param("id"), payload.ResolveStage(), payload.ResolveDetail(), payload.Confirmed)
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromJobRecord(rec))
}

func (h *JobRecordHandler) MutateLedger(c *gin.Context) {
	var payload request.LedgerMutationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	op, err := payload.ResolveOp()
	if err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	rec, err := h.usecase.MutateLedger(c.Request.Context(), c.Param("id"), op)
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromJobRecord(rec))
}

func (h *JobRecordHandler) SoftDeleteJob(c *gin.Context) {
	if err := h.usecase.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobRecordHandler) RestoreJob(c *gin.Context) {
	if err := h.usecase.Restore(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobRecordHandler) ArchiveJob(c *gin.Context) {
	if err := h.usecase.Archive(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapJobError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID),
		errors.Is(err, usecase.ErrInvalidLookupCode),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidStage),
		errors.Is(err, usecase.ErrInvalidMonthScope),
		errors.Is(err, usecase.ErrInvalidLedgerOp):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidUnitPrice),
		errors.Is(err, usecase.ErrInvalidDiscount):
		return pkg.NewDomainErrorSimple("INVALID_LEDGER_VALUE", "Invalid ledger value", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrItemNotFound):
		return pkg.NewDomainErrorSimple("LINE_ITEM_NOT_FOUND", "Line item not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job record not found", http.StatusNotFound)
	case errors.Is(err, interfaces.ErrSequenceConflict):
		return pkg.NewDomainErrorSimple("SEQUENCE_CONFLICT", "Sequence number already taken, retry the creation", http.StatusConflict)
	case errors.Is(err, usecase.ErrReadyNotConfirmed):
		return pkg.NewDomainErrorSimple("READY_NOT_CONFIRMED", "completedReady requires operator confirmation", http.StatusPreconditionFailed)
	case errors.Is(err, usecase.ErrJobNotCompleted):
		return pkg.NewDomainErrorSimple("JOB_NOT_COMPLETED", "Only completed jobs can be archived", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
