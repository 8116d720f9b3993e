package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"repairshop/internal/infrastructure/clock"
	"repairshop/internal/usecase/interfaces"
)

var ErrInvalidMonthScope = errors.New("invalid month scope")

// SequenceAllocator computes the next human-legible document number
// PREFIX-NNNN, where PREFIX is year+month (YYYYMM) and NNNN a zero-padded
// counter starting at 0001 within the month.
//
// Allocation is read-then-write with no reservation step: it queries the
// highest existing suffix for the prefix across active and archived storage
// and returns max+1. Two concurrent creations can therefore compute the same
// "next" number; the duplicate is rejected at insert time
// (interfaces.ErrSequenceConflict) and surfaced to the caller with no
// automatic retry.
type SequenceAllocator struct {
	repo interfaces.IJobRecordRepository
	clk  clock.Clock
}

func NewSequenceAllocator(repo interfaces.IJobRecordRepository, clk clock.Clock) *SequenceAllocator {
	if clk == nil {
		clk = clock.System()
	}
	return &SequenceAllocator{repo: repo, clk: clk}
}

// Allocate returns the next sequence number for monthScope ("2025-03" or
// "202503"; empty means the current month). A query error propagates to the
// caller as a creation failure.
func (a *SequenceAllocator) Allocate(ctx context.Context, monthScope string) (string, error) {
	prefix, err := a.monthPrefix(monthScope)
	if err != nil {
		return "", err
	}

	max, err := a.repo.MaxSequence(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", prefix, max+1), nil
}

func (a *SequenceAllocator) monthPrefix(monthScope string) (string, error) {
	s := strings.TrimSpace(monthScope)
	if s == "" {
		return a.clk.Now().UTC().Format("200601"), nil
	}
	s = strings.ReplaceAll(s, "-", "")
	if len(s) != 6 {
		return "", ErrInvalidMonthScope
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", ErrInvalidMonthScope
		}
	}
	if month := s[4:]; month < "01" || month > "12" {
		return "", ErrInvalidMonthScope
	}
	return s, nil
}

// SequenceSuffix extracts the numeric counter from a stored sequence number
// ("202503-0007" => 7). Returns false for values that do not match the
// PREFIX-NNNN shape.
func SequenceSuffix(sequence, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(sequence, prefix+"-")
	if !ok || rest == "" {
		return 0, false
	}
	n := 0
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
