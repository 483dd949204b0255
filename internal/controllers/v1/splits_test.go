package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	v1 "github.com/violet-vault/backend/internal/controllers/v1"
	"github.com/violet-vault/backend/internal/splits"
	"github.com/violet-vault/backend/test"
)

var groceryRun = splits.Transaction{
	ID:          "groceries-1",
	Description: "Supermarket",
	Amount:      -100,
	Category:    "Groceries",
	Account:     "Checking",
	Type:        "expense",
}

func postSplits(t *testing.T, path string, request v1.SplitRequest, status int) v1.SplitListResponse {
	r := test.Request(t, http.MethodPost, "http://example.com/v1/splits"+path, request)
	test.AssertHTTPStatus(t, &r, status)

	var response v1.SplitListResponse
	test.DecodeResponse(t, &r, &response)
	return response
}

func amounts(allocations []splits.Allocation) []float64 {
	result := make([]float64, 0, len(allocations))
	for _, a := range allocations {
		result = append(result, a.Amount)
	}
	return result
}

func (suite *TestSuiteStandard) TestSplitsInitialize() {
	response := postSplits(suite.T(), "/initialize", v1.SplitRequest{Transaction: groceryRun, Envelopes: []splits.Envelope{}}, http.StatusOK)

	suite.Require().Len(response.Data, 1)
	assert.Equal(suite.T(), "Supermarket", response.Data[0].Description)
	assert.Equal(suite.T(), 100.0, response.Data[0].Amount)
	assert.Equal(suite.T(), "Groceries", response.Data[0].Category)
}

// TestSplitsInitializeItems verifies that receipt items are looked up in
// the stored envelopes by category.
func (suite *TestSuiteStandard) TestSplitsInitializeItems() {
	household := createTestEnvelope(suite.T(), v1.EnvelopeEditable{Name: "Household", Category: "Home"})

	tx := groceryRun
	tx.Metadata = &splits.Metadata{
		Items: []splits.Item{
			{Name: "Bread", TotalPrice: 4, Category: "Groceries"},
			{Name: "Detergent", Price: 12, Category: "home"},
		},
		Tax: 1.5,
	}

	response := postSplits(suite.T(), "/initialize", v1.SplitRequest{Transaction: tx}, http.StatusOK)

	suite.Require().Len(response.Data, 3)
	assert.Equal(suite.T(), []float64{4, 12, 1.5}, amounts(response.Data))
	assert.Equal(suite.T(), "", response.Data[0].EnvelopeID)
	assert.Equal(suite.T(), household.ID, response.Data[1].EnvelopeID)
	assert.True(suite.T(), response.Data[1].IsOriginalItem)
}

func (suite *TestSuiteStandard) TestSplitsEvenly() {
	request := v1.SplitRequest{
		Transaction: groceryRun,
		Splits:      []splits.Allocation{{ID: "a"}, {ID: "b"}, {ID: "c"}},
	}

	response := postSplits(suite.T(), "/even", request, http.StatusOK)
	assert.Equal(suite.T(), []float64{33.33, 33.33, 33.34}, amounts(response.Data))
}

func (suite *TestSuiteStandard) TestSplitsBalance() {
	request := v1.SplitRequest{
		Transaction: groceryRun,
		Splits:      []splits.Allocation{{ID: "a", Amount: 40}, {ID: "b", Amount: 40}},
	}

	response := postSplits(suite.T(), "/balance", request, http.StatusOK)
	assert.Equal(suite.T(), []float64{50, 50}, amounts(response.Data))
}

func (suite *TestSuiteStandard) TestSplitsAddRemove() {
	request := v1.SplitRequest{
		Transaction: groceryRun,
		Splits:      []splits.Allocation{{ID: "a", Description: "Food", Amount: 70, Category: "Groceries"}},
		Defaults:    splits.Defaults{Description: "Snacks"},
	}

	response := postSplits(suite.T(), "/add", request, http.StatusOK)
	suite.Require().Len(response.Data, 2)
	assert.Equal(suite.T(), 30.0, response.Data[1].Amount)
	assert.Equal(suite.T(), "Snacks", response.Data[1].Description)
	assert.Equal(suite.T(), "Groceries", response.Data[1].Category)

	request.Splits = response.Data
	request.ID = "a"
	response = postSplits(suite.T(), "/remove", request, http.StatusOK)
	suite.Require().Len(response.Data, 1)
	assert.Equal(suite.T(), "Snacks", response.Data[0].Description)

	// The last split is kept
	request.Splits = response.Data
	request.ID = response.Data[0].ID
	response = postSplits(suite.T(), "/remove", request, http.StatusOK)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestSplitsUpdate() {
	fuel := createTestEnvelope(suite.T(), v1.EnvelopeEditable{Name: "Fuel", Category: "Transport"})

	request := v1.SplitRequest{
		Transaction: groceryRun,
		Splits:      []splits.Allocation{{ID: "a", Description: "Food", Amount: 70, Category: "Groceries"}},
		ID:          "a",
	}

	tests := []struct {
		field  string
		value  any
		status int
		check  func(*testing.T, splits.Allocation)
	}{
		{"amount", 12.5, http.StatusOK, func(t *testing.T, a splits.Allocation) { assert.Equal(t, 12.5, a.Amount) }},
		{"amount", "7.25", http.StatusOK, func(t *testing.T, a splits.Allocation) { assert.Equal(t, 7.25, a.Amount) }},
		{"description", "Gas", http.StatusOK, func(t *testing.T, a splits.Allocation) { assert.Equal(t, "Gas", a.Description) }},
		{"category", "transport", http.StatusOK, func(t *testing.T, a splits.Allocation) { assert.Equal(t, fuel.ID, a.EnvelopeID) }},
		{"amount", -3, http.StatusBadRequest, nil},
		{"description", 5, http.StatusBadRequest, nil},
		{"color", "blue", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.field, func(t *testing.T) {
			request.Field = tt.field
			request.Value = tt.value

			response := postSplits(t, "/update", request, tt.status)
			if tt.check != nil {
				tt.check(t, response.Data[0])
			} else {
				assert.NotNil(t, response.Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestSplitsSummary() {
	request := v1.SplitRequest{
		Transaction: groceryRun,
		Splits: []splits.Allocation{
			{ID: "a", Description: "Food", Amount: 60, Category: "Groceries"},
			{ID: "b", Description: "", Amount: 60, Category: "Household"},
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/splits/summary", request)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SplitSummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), 2, response.Data.TotalSplits)
	assert.Equal(suite.T(), 120.0, response.Data.AllocatedAmount)
	assert.Equal(suite.T(), -20.0, response.Data.RemainingAmount)
	assert.False(suite.T(), response.Data.CanSubmit)
	assert.Equal(suite.T(), []string{
		"Split 2: Description is required",
		"Total splits ($120.00) exceed original amount ($100.00)",
	}, response.Data.ValidationErrors)
}

func (suite *TestSuiteStandard) TestSplitsPrepare() {
	request := v1.SplitRequest{
		Transaction: groceryRun,
		Splits: []splits.Allocation{
			{ID: "a", Description: "Food", Amount: 70, Category: "Groceries"},
			{ID: "b", Description: "Soap", Amount: 30, Category: "Household"},
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/splits/prepare", request)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SplitTransactionsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	assert.Equal(suite.T(), -70.0, response.Data[0].Amount)
	assert.Equal(suite.T(), -30.0, response.Data[1].Amount)
	assert.Equal(suite.T(), "groceries-1", response.Data[1].ParentTransactionID)
	assert.Equal(suite.T(), "Checking", response.Data[1].Account)
}

func (suite *TestSuiteStandard) TestSplitsPrepareInvalid() {
	tests := []struct {
		name   string
		splits []splits.Allocation
		err    string
	}{
		{
			"Unbalanced",
			[]splits.Allocation{{ID: "a", Description: "Food", Amount: 70, Category: "Groceries"}},
			"the splits are not valid: Total splits ($70.00) are less than original amount ($100.00)",
		},
		{
			"Missing category",
			[]splits.Allocation{{ID: "a", Description: "Food", Amount: 100}},
			"the splits are not valid: Split 1: Category is required",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/splits/prepare", v1.SplitRequest{Transaction: groceryRun, Splits: tt.splits})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.SplitTransactionsResponse
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.err, *response.Error)
			assert.False(t, response.Summary.CanSubmit)
			assert.Empty(t, response.Data)
		})
	}
}

func (suite *TestSuiteStandard) TestSplitsBrokenBody() {
	for _, path := range []string{"/initialize", "/add", "/update", "/remove", "/summary", "/even", "/balance", "/prepare"} {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/splits"+path, `{ "transaction": `)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
