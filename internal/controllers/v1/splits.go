package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/violet-vault/backend/internal/httputil"
	"github.com/violet-vault/backend/internal/metrics"
	"github.com/violet-vault/backend/internal/splits"
)

// RegisterSplitRoutes registers the stateless split calculations with
// the RouterGroup that is passed.
func RegisterSplitRoutes(r *gin.RouterGroup) {
	for _, path := range []string{"/initialize", "/add", "/update", "/remove", "/summary", "/even", "/balance", "/prepare"} {
		r.OPTIONS(path, OptionsSplits)
	}

	r.POST("/initialize", InitializeSplits)
	r.POST("/add", AddSplit)
	r.POST("/update", UpdateSplit)
	r.POST("/remove", RemoveSplit)
	r.POST("/summary", SummarizeSplits)
	r.POST("/even", SplitEvenly)
	r.POST("/balance", BalanceSplits)
	r.POST("/prepare", PrepareSplits)
}

// SplitRequest is the transaction being split and the current allocations.
type SplitRequest struct {
	Transaction splits.Transaction  `json:"transaction"`
	Splits      []splits.Allocation `json:"splits"`

	// Envelopes to look up by category. The stored envelopes are used when this is not set.
	Envelopes []splits.Envelope `json:"envelopes"`

	// Edits
	ID       string          `json:"id"`    // The allocation to update or remove
	Field    string          `json:"field"` // description, amount, category or envelopeId
	Value    any             `json:"value"`
	Defaults splits.Defaults `json:"defaults"` // Pre-filled values for a new allocation
}

type SplitListResponse struct {
	Data  []splits.Allocation `json:"data"`  // The allocations
	Error *string             `json:"error"` // The error, if any occurred
}

type SplitSummaryResponse struct {
	Data  *splits.Summary `json:"data"`  // Totals and validation of the split
	Error *string         `json:"error"` // The error, if any occurred
}

type SplitTransactionsResponse struct {
	Data    []splits.Transaction `json:"data"`    // The transactions that replace the original
	Summary *splits.Summary      `json:"summary"` // Why the split cannot be submitted, if it cannot
	Error   *string              `json:"error"`   // The error, if any occurred
}

// OptionsSplits returns the allowed HTTP methods
func OptionsSplits(c *gin.Context) {
	httputil.OptionsPost(c)
}

// bindSplitRequest binds the request and writes the error response if
// that fails.
func bindSplitRequest(c *gin.Context) (SplitRequest, bool) {
	var request SplitRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), httpError{Error: e})
		return SplitRequest{}, false
	}

	return request, true
}

// InitializeSplits returns the initial allocations for a transaction
func InitializeSplits(c *gin.Context) {
	request, ok := bindSplitRequest(c)
	if !ok {
		return
	}

	envelopes := request.Envelopes
	if envelopes == nil {
		var err error
		envelopes, err = splitTargets(c)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), SplitListResponse{Error: &e})
			return
		}
	}

	c.JSON(http.StatusOK, SplitListResponse{Data: splits.Initialize(request.Transaction, envelopes)})
}

// AddSplit appends an allocation holding the unallocated remainder
func AddSplit(c *gin.Context) {
	request, ok := bindSplitRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, SplitListResponse{Data: splits.Add(request.Splits, request.Transaction, request.Defaults)})
}

// UpdateSplit sets one field of an allocation
func UpdateSplit(c *gin.Context) {
	request, ok := bindSplitRequest(c)
	if !ok {
		return
	}

	field, err := splits.ParseField(request.Field)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SplitListResponse{Error: &e})
		return
	}

	envelopes := request.Envelopes
	if envelopes == nil && field == splits.FieldCategory {
		envelopes, err = splitTargets(c)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), SplitListResponse{Error: &e})
			return
		}
	}

	allocations, err := splits.UpdateField(request.Splits, request.ID, field, request.Value, envelopes)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SplitListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SplitListResponse{Data: allocations})
}

// RemoveSplit removes an allocation. The last allocation is always kept.
func RemoveSplit(c *gin.Context) {
	request, ok := bindSplitRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, SplitListResponse{Data: splits.Remove(request.Splits, request.ID)})
}

// SummarizeSplits returns totals and validation errors of the split
func SummarizeSplits(c *gin.Context) {
	request, ok := bindSplitRequest(c)
	if !ok {
		return
	}

	summary := splits.Summarize(request.Splits, request.Transaction)
	c.JSON(http.StatusOK, SplitSummaryResponse{Data: &summary})
}

// SplitEvenly distributes the transaction amount evenly across the splits
func SplitEvenly(c *gin.Context) {
	request, ok := bindSplitRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, SplitListResponse{Data: splits.SplitEvenly(request.Splits, request.Transaction)})
}

// BalanceSplits spreads the unallocated remainder evenly over all splits
func BalanceSplits(c *gin.Context) {
	request, ok := bindSplitRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, SplitListResponse{Data: splits.AutoBalance(request.Splits, request.Transaction)})
}

// PrepareSplits turns valid splits into transactions
func PrepareSplits(c *gin.Context) {
	request, ok := bindSplitRequest(c)
	if !ok {
		return
	}

	parts, summary, err := prepare(request.Splits, request.Transaction)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SplitTransactionsResponse{Summary: &summary, Error: &e})
		return
	}

	c.JSON(http.StatusOK, SplitTransactionsResponse{Data: parts})
}

// prepare validates the splits and returns the transactions for them.
func prepare(allocations []splits.Allocation, tx splits.Transaction) ([]splits.Transaction, splits.Summary, error) {
	summary := splits.Summarize(allocations, tx)
	metrics.ObserveSplitSubmission(summary.CanSubmit)

	if !summary.CanSubmit {
		reasons := summary.ValidationErrors
		if len(reasons) == 0 {
			reasons = []string{"at least one split is required"}
		}
		return nil, summary, fmt.Errorf("%w: %s", errSplitsInvalid, strings.Join(reasons, "; "))
	}

	return splits.PrepareForSubmission(allocations, tx), summary, nil
}

// splitTargets returns all stored envelopes for category lookups.
func splitTargets(c *gin.Context) ([]splits.Envelope, error) {
	stored, err := store.Envelopes(c)
	if err != nil {
		return nil, err
	}

	envelopes := make([]splits.Envelope, 0, len(stored))
	for _, e := range stored {
		envelopes = append(envelopes, e.Target())
	}

	return envelopes, nil
}
