package v1_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/violet-vault/backend/internal/controllers/v1"
	"github.com/violet-vault/backend/internal/funding"
	"github.com/violet-vault/backend/test"
)

// TestPlansBillsFirst verifies that bill envelopes are funded before
// variable envelopes when money is short.
func (suite *TestSuiteStandard) TestPlansBillsFirst() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plans", v1.PlanRequest{
		Amount: 60,
		Mode:   "allocate",
		Envelopes: []funding.Envelope{
			{ID: "groceries", Name: "Groceries", EnvelopeType: funding.TypeVariable, AutoAllocate: true, MonthlyBudget: 130},
			{ID: "rent", Name: "Rent", EnvelopeType: funding.TypeBill, AutoAllocate: true, BiweeklyAllocation: 50},
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), map[string]float64{"rent": 50, "groceries": 10}, response.Data.Allocations)
	assert.Equal(suite.T(), 60.0, response.Data.TotalAllocated)
	assert.Equal(suite.T(), 0.0, response.Data.LeftoverAmount)
}

// TestPlansStoredEnvelopes verifies that the stored envelopes are used
// when the request does not contain any.
func (suite *TestSuiteStandard) TestPlansStoredEnvelopes() {
	rent := createTestEnvelope(suite.T(), v1.EnvelopeEditable{
		Name:               "Rent",
		EnvelopeType:       "bill",
		AutoAllocate:       true,
		CurrentBalance:     decimal.NewFromFloat(20),
		BiweeklyAllocation: decimal.NewFromFloat(100),
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plans", `{ "amount": 200, "mode": "allocate" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), map[string]float64{rent.ID: 80}, response.Data.Allocations)
	assert.Equal(suite.T(), 120.0, response.Data.LeftoverAmount)
	assert.Equal(suite.T(), 1, response.Data.DebugInfo.TotalEnvelopes)

	// Nothing is stored
	assert.Equal(suite.T(), 20.0, getEnvelope(suite.T(), rent.ID).CurrentBalance.InexactFloat64())
}

func (suite *TestSuiteStandard) TestPlansLeftover() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plans", `{ "amount": 1200, "mode": "leftover", "envelopes": [] }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), funding.ModeLeftover, response.Data.Mode)
	assert.Empty(suite.T(), response.Data.Allocations)
	assert.Equal(suite.T(), 1200.0, response.Data.LeftoverAmount)
}

// TestPlansNothingToPlan verifies that a missing amount gives no plan, not an error.
func (suite *TestSuiteStandard) TestPlansNothingToPlan() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plans", `{ "amount": 0, "mode": "allocate", "envelopes": [] }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Nil(suite.T(), response.Data)
	assert.Nil(suite.T(), response.Error)
}

func (suite *TestSuiteStandard) TestPlansErrors() {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Broken body", `{ "amount": `, http.StatusBadRequest},
		{"Invalid mode", `{ "amount": 100, "mode": "everything" }`, http.StatusBadRequest},
		{"Wrong type", `{ "amount": "lots", "mode": "allocate" }`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/plans", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.PlanResponse
			test.DecodeResponse(t, &r, &response)
			assert.NotNil(t, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestPlansDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plans", `{ "amount": 100, "mode": "allocate" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
