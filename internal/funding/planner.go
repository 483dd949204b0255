package funding

import (
	"errors"
	"fmt"
	"math"

	"github.com/violet-vault/backend/internal/money"
)

// Mode selects how a paycheck is distributed.
type Mode string

const (
	// ModeAllocate funds bill envelopes first, then variable envelopes.
	ModeAllocate Mode = "allocate"

	// ModeLeftover sends the whole paycheck to unassigned cash.
	ModeLeftover Mode = "leftover"
)

var ErrInvalidMode = errors.New("allocation mode must be 'allocate' or 'leftover'")

// ParseMode parses the allocation mode sent by a client.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAllocate, ModeLeftover:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w, got '%s'", ErrInvalidMode, s)
}

// DebugInfo counts what the planner looked at. It is not used for the
// allocation itself.
type DebugInfo struct {
	TotalEnvelopes    int `json:"totalEnvelopes"`
	BillEnvelopes     int `json:"billEnvelopes"`
	VariableEnvelopes int `json:"variableEnvelopes"`
	FundedEnvelopes   int `json:"fundedEnvelopes"`
}

// Plan is the result of distributing one paycheck. A Plan is a preview,
// nothing is written when it is computed.
type Plan struct {
	Mode           Mode               `json:"mode"`
	TotalAmount    float64            `json:"totalAmount"`
	Allocations    map[string]float64 `json:"allocations"`
	TotalAllocated float64            `json:"totalAllocated"`
	LeftoverAmount float64            `json:"leftoverAmount"`
	Summary        string             `json:"summary"`
	DebugInfo      DebugInfo          `json:"debugInfo"`
}

// Calculate distributes amount across envelopes.
//
// It returns nil when amount is not a positive number or the mode is
// unknown, which callers treat as "nothing to preview yet".
//
// In allocate mode, bill envelopes are funded up to their biweekly
// allocation, then variable envelopes up to their monthly budget
// converted to one pay period. Within a pass envelopes are funded in
// slice order until the money runs out. Whatever remains is leftover.
func Calculate(amount float64, mode Mode, envelopes []Envelope) *Plan {
	if !money.Valid(amount) || amount <= 0 {
		return nil
	}

	switch mode {
	case ModeLeftover:
		return &Plan{
			Mode:           ModeLeftover,
			TotalAmount:    amount,
			Allocations:    map[string]float64{},
			LeftoverAmount: amount,
			Summary:        fmt.Sprintf("All %s will go to unassigned cash", money.Format(amount)),
			DebugInfo:      DebugInfo{TotalEnvelopes: len(envelopes)},
		}
	case ModeAllocate:
	default:
		return nil
	}

	bills := BillEnvelopes(envelopes)
	variables := VariableEnvelopes(envelopes)

	remaining := amount
	totalAllocated := 0.0
	allocations := make(map[string]float64)

	fund := func(e Envelope, target float64) {
		needed := math.Max(0, target-e.CurrentBalance)
		allocation := math.Min(needed, remaining)
		if allocation <= 0 {
			return
		}

		// An envelope in both passes keeps the sum of both allocations
		allocations[e.ID] += allocation
		remaining -= allocation
		totalAllocated += allocation
	}

	for _, e := range bills {
		fund(e, e.BiweeklyAllocation)
	}

	for _, e := range variables {
		fund(e, e.MonthlyBudget/BiweeklyMultiplier)
	}

	return &Plan{
		Mode:           ModeAllocate,
		TotalAmount:    amount,
		Allocations:    allocations,
		TotalAllocated: totalAllocated,
		LeftoverAmount: remaining,
		Summary:        fmt.Sprintf("%s to envelopes (bills + variable), %s to unassigned", money.Format(totalAllocated), money.Format(remaining)),
		DebugInfo: DebugInfo{
			TotalEnvelopes:    len(envelopes),
			BillEnvelopes:     len(bills),
			VariableEnvelopes: len(variables),
			FundedEnvelopes:   len(allocations),
		},
	}
}
