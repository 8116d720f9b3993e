package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"repairshop/internal/domain/entities"
	"repairshop/internal/infrastructure/clock"
	"repairshop/internal/usecase/interfaces"
	mock_interfaces "repairshop/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var testClock = clock.NewFakeClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

func newJobUseCase(repo interfaces.IJobRecordRepository) *JobRecordUseCase {
	return NewJobRecordUseCase(repo, NewSequenceAllocator(repo, testClock), testClock)
}

func TestJobRecordUseCase_Create(t *testing.T) {
	t.Run("allocates sequence and inserts defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().MaxSequence(gomock.Any(), "202503").Return(6, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rec entities.JobRecord) (entities.JobRecord, error) {
				if rec.Sequence != "202503-0007" {
					t.Fatalf("expected sequence 202503-0007, got %s", rec.Sequence)
				}
				if rec.ID == "" || len(rec.LookupCode) != 8 {
					t.Fatalf("expected generated id and 8-char lookup code, got %q / %q", rec.ID, rec.LookupCode)
				}
				if rec.Status != entities.JobStatusPending {
					t.Fatalf("expected pending status, got %s", rec.Status)
				}
				if rec.Stage != entities.StagePendingInspection {
					t.Fatalf("expected pendingInspection stage, got %s", rec.Stage)
				}
				if rec.Ledger.Discount.Kind != entities.DiscountKindFixed {
					t.Fatalf("expected a fixed zero discount, got %+v", rec.Ledger.Discount)
				}
				return rec, nil
			})

		rec, err := uc.Create(context.Background(), "202503")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Sequence != "202503-0007" {
			t.Fatalf("expected returned record to carry the sequence, got %s", rec.Sequence)
		}
	})

	t.Run("duplicate sequence surfaces the conflict", func(t *testing.T) {
		// Two staff creating at the same moment both observe max 7; the
		// second insert loses the conditional write.
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().MaxSequence(gomock.Any(), "202503").Return(7, nil).Times(2)
		first := repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rec entities.JobRecord) (entities.JobRecord, error) {
				return rec, nil
			})
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).After(first).Return(entities.JobRecord{}, interfaces.ErrSequenceConflict)

		winner, err := uc.Create(context.Background(), "202503")
		if err != nil {
			t.Fatalf("unexpected error on first creation: %v", err)
		}
		if winner.Sequence != "202503-0008" {
			t.Fatalf("expected 202503-0008, got %s", winner.Sequence)
		}

		if _, err := uc.Create(context.Background(), "202503"); !errors.Is(err, interfaces.ErrSequenceConflict) {
			t.Fatalf("expected ErrSequenceConflict, got %v", err)
		}
	})

	t.Run("invalid month scope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		if _, err := uc.Create(context.Background(), "2025-13"); !errors.Is(err, ErrInvalidMonthScope) {
			t.Fatalf("expected ErrInvalidMonthScope, got %v", err)
		}
	})
}

func TestJobRecordUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := newJobUseCase(nil)
		if _, err := uc.GetByID(context.Background(), "   "); !errors.Is(err, ErrInvalidJobID) {
			t.Fatalf("expected ErrInvalidJobID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.JobRecord{}, nil)

		if _, err := uc.GetByID(context.Background(), "job-1"); !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.JobRecord{ID: "job-1"}, nil)

		rec, err := uc.GetByID(context.Background(), "job-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.ID != "job-1" {
			t.Fatalf("expected job-1, got %s", rec.ID)
		}
	})
}

func TestJobRecordUseCase_GetByLookupCode(t *testing.T) {
	t.Run("invalid code", func(t *testing.T) {
		uc := newJobUseCase(nil)
		if _, err := uc.GetByLookupCode(context.Background(), ""); !errors.Is(err, ErrInvalidLookupCode) {
			t.Fatalf("expected ErrInvalidLookupCode, got %v", err)
		}
	})

	t.Run("code is uppercased before lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().GetByLookupCode(gomock.Any(), "AB12CD34").Return(entities.JobRecord{ID: "job-1"}, nil)

		if _, err := uc.GetByLookupCode(context.Background(), " ab12cd34 "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("soft deleted record stays hidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		deleted := testClock.Now()
		repo.EXPECT().GetByLookupCode(gomock.Any(), "AB12CD34").
			Return(entities.JobRecord{ID: "job-1", DeletedAt: &deleted}, nil)

		if _, err := uc.GetByLookupCode(context.Background(), "AB12CD34"); !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("expected ErrJobNotFound for deleted record, got %v", err)
		}
	})
}

func TestJobRecordUseCase_UpdateStatus(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		uc := newJobUseCase(nil)
		if _, err := uc.UpdateStatus(context.Background(), "job-1", "paused"); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("persists the status field group", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().Persist(gomock.Any(), "job-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, upd interfaces.PartialUpdate) (entities.JobRecord, error) {
				if upd.Status == nil || *upd.Status != entities.JobStatusContacted {
					t.Fatalf("expected status update, got %+v", upd)
				}
				if upd.Ledger != nil || upd.Stage != nil {
					t.Fatalf("expected only the status field group, got %+v", upd)
				}
				return entities.JobRecord{ID: id, Status: entities.JobStatusContacted}, nil
			})

		rec, err := uc.UpdateStatus(context.Background(), "job-1", entities.JobStatusContacted)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Status != entities.JobStatusContacted {
			t.Fatalf("expected contacted, got %s", rec.Status)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().Persist(gomock.Any(), "job-1", gomock.Any()).Return(entities.JobRecord{}, nil)

		if _, err := uc.UpdateStatus(context.Background(), "job-1", entities.JobStatusConfirmed); !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("expected ErrJobNotFound, got %v", err)
		}
	})
}

func TestJobRecordUseCase_UpdateStage(t *testing.T) {
	t.Run("rejects unknown stage", func(t *testing.T) {
		uc := newJobUseCase(nil)
		if _, err := uc.UpdateStage(context.Background(), "job-1", "melted", nil, false); !errors.Is(err, ErrInvalidStage) {
			t.Fatalf("expected ErrInvalidStage, got %v", err)
		}
	})

	t.Run("rejects detail for a different stage", func(t *testing.T) {
		uc := newJobUseCase(nil)
		detail := &entities.WaitingForPartsDetail{}
		if _, err := uc.UpdateStage(context.Background(), "job-1", entities.StageRepairInProgress, detail, false); !errors.Is(err, ErrInvalidStage) {
			t.Fatalf("expected ErrInvalidStage for mismatched detail, got %v", err)
		}
	})

	t.Run("completedReady requires confirmation", func(t *testing.T) {
		uc := newJobUseCase(nil)
		if _, err := uc.UpdateStage(context.Background(), "job-1", entities.StageCompletedReady, nil, false); !errors.Is(err, ErrReadyNotConfirmed) {
			t.Fatalf("expected ErrReadyNotConfirmed, got %v", err)
		}
	})

	t.Run("confirmed ready persists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().Persist(gomock.Any(), "job-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, upd interfaces.PartialUpdate) (entities.JobRecord, error) {
				if upd.Stage == nil || *upd.Stage != entities.StageCompletedReady {
					t.Fatalf("expected stage update, got %+v", upd)
				}
				return entities.JobRecord{ID: id, Stage: entities.StageCompletedReady}, nil
			})

		if _, err := uc.UpdateStage(context.Background(), "job-1", entities.StageCompletedReady, nil, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("stage with detail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		detail := &entities.WaitingForPartsDetail{Parts: []string{"rear brake caliper"}}
		repo.EXPECT().Persist(gomock.Any(), "job-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, upd interfaces.PartialUpdate) (entities.JobRecord, error) {
				if upd.StageDetail == nil {
					t.Fatalf("expected stage detail to travel with the stage")
				}
				return entities.JobRecord{ID: id, Stage: entities.StageWaitingForParts, StageDetail: upd.StageDetail}, nil
			})

		rec, err := uc.UpdateStage(context.Background(), "job-1", entities.StageWaitingForParts, detail, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Stage.ProgressStep() != 3 {
			t.Fatalf("expected progress step 3 for waitingForParts, got %d", rec.Stage.ProgressStep())
		}
	})
}

func TestJobRecordUseCase_MutateLedger(t *testing.T) {
	t.Run("applies the op and persists the snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		stored := entities.JobRecord{
			ID: "job-1",
			Ledger: entities.CostLedger{
				Discount:   entities.Discount{Kind: entities.DiscountKindPercent, Value: 10},
				TaxEnabled: true,
			},
		}
		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(stored, nil)
		repo.EXPECT().Persist(gomock.Any(), "job-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, upd interfaces.PartialUpdate) (entities.JobRecord, error) {
				if upd.Ledger == nil {
					t.Fatalf("expected a full ledger snapshot")
				}
				if upd.Ledger.Total != 1008 {
					t.Fatalf("expected recalculated total 1008, got %v", upd.Ledger.Total)
				}
				rec := stored
				rec.Ledger = *upd.Ledger
				return rec, nil
			})

		op := LedgerOp{Kind: LedgerOpAddItem, Item: entities.LineItem{Category: "parts", Quantity: 2, UnitPrice: 500}}
		rec, err := uc.MutateLedger(context.Background(), "job-1", op)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rec.Ledger.Items) != 1 {
			t.Fatalf("expected one item, got %d", len(rec.Ledger.Items))
		}
	})

	t.Run("validation failure persists nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.JobRecord{ID: "job-1"}, nil)

		op := LedgerOp{Kind: LedgerOpAddItem, Item: entities.LineItem{Quantity: 0, UnitPrice: 10}}
		if _, err := uc.MutateLedger(context.Background(), "job-1", op); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})
}

func TestJobRecordUseCase_Archive(t *testing.T) {
	t.Run("only completed jobs archive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.JobRecord{ID: "job-1", Status: entities.JobStatusConfirmed}, nil)

		if err := uc.Archive(context.Background(), "job-1"); !errors.Is(err, ErrJobNotCompleted) {
			t.Fatalf("expected ErrJobNotCompleted, got %v", err)
		}
	})

	t.Run("completed job archives", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.JobRecord{ID: "job-1", Status: entities.JobStatusCompleted}, nil)
		repo.EXPECT().Archive(gomock.Any(), "job-1").Return(nil)

		if err := uc.Archive(context.Background(), "job-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestJobRecordUseCase_SoftDeleteRestore(t *testing.T) {
	t.Run("invalid ids rejected", func(t *testing.T) {
		uc := newJobUseCase(nil)
		if err := uc.SoftDelete(context.Background(), " "); !errors.Is(err, ErrInvalidJobID) {
			t.Fatalf("expected ErrInvalidJobID, got %v", err)
		}
		if err := uc.Restore(context.Background(), ""); !errors.Is(err, ErrInvalidJobID) {
			t.Fatalf("expected ErrInvalidJobID, got %v", err)
		}
	})

	t.Run("delegates to the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRecordRepository(ctrl)
		uc := newJobUseCase(repo)

		repo.EXPECT().SoftDelete(gomock.Any(), "job-1").Return(nil)
		repo.EXPECT().Restore(gomock.Any(), "job-1").Return(nil)

		if err := uc.SoftDelete(context.Background(), "job-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := uc.Restore(context.Background(), "job-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
