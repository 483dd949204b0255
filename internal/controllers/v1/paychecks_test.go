package v1_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/violet-vault/backend/internal/controllers/v1"
	"github.com/violet-vault/backend/internal/models"
	"github.com/violet-vault/backend/test"
)

// TestPaychecksProcess verifies that a paycheck credits the envelopes and
// unassigned cash and is recorded as income.
func (suite *TestSuiteStandard) TestPaychecksProcess() {
	rent := createTestEnvelope(suite.T(), v1.EnvelopeEditable{
		Name:               "Rent",
		EnvelopeType:       "bill",
		AutoAllocate:       true,
		BiweeklyAllocation: decimal.NewFromFloat(500),
	})

	groceries := createTestEnvelope(suite.T(), v1.EnvelopeEditable{
		Name:          "Groceries",
		EnvelopeType:  "variable",
		AutoAllocate:  true,
		MonthlyBudget: decimal.NewFromFloat(130),
	})

	savings := createTestEnvelope(suite.T(), v1.EnvelopeEditable{
		Name:         "Savings",
		EnvelopeType: "savings",
		AutoAllocate: true,
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/paychecks", `{ "amount": 1000, "payerName": " ACME Corp ", "mode": "allocate" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.PaycheckResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)

	assert.Equal(suite.T(), 500.0, response.Data.Plan.Allocations[rent.ID])
	assert.InDelta(suite.T(), 60.0, response.Data.Plan.Allocations[groceries.ID], 0.001)
	assert.InDelta(suite.T(), 440.0, response.Data.Plan.LeftoverAmount, 0.001)

	income := response.Data.Transaction
	assert.NotEmpty(suite.T(), income.ID)
	assert.Equal(suite.T(), "Paycheck from ACME Corp", income.Description)
	assert.Equal(suite.T(), "income", income.Type)
	assert.Equal(suite.T(), "unassigned", income.EnvelopeID)
	assert.Equal(suite.T(), response.Data.Plan.Summary, income.Notes)
	assert.True(suite.T(), income.Amount.Equal(decimal.NewFromFloat(1000)))

	assert.Equal(suite.T(), 500.0, getEnvelope(suite.T(), rent.ID).CurrentBalance.InexactFloat64())
	assert.InDelta(suite.T(), 60.0, getEnvelope(suite.T(), groceries.ID).CurrentBalance.InexactFloat64(), 0.001)
	assert.Equal(suite.T(), 0.0, getEnvelope(suite.T(), savings.ID).CurrentBalance.InexactFloat64())
	assert.InDelta(suite.T(), 440.0, getBudget(suite.T()).UnassignedCash.InexactFloat64(), 0.001)

	// The income can be read back
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions/"+income.ID, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestPaychecksLeftover() {
	rent := createTestEnvelope(suite.T(), v1.EnvelopeEditable{
		Name:               "Rent",
		EnvelopeType:       "bill",
		AutoAllocate:       true,
		BiweeklyAllocation: decimal.NewFromFloat(500),
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/paychecks", `{ "amount": 250.5, "payerName": "ACME Corp", "mode": "leftover" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	assert.Equal(suite.T(), 0.0, getEnvelope(suite.T(), rent.ID).CurrentBalance.InexactFloat64())
	assert.Equal(suite.T(), 250.5, getBudget(suite.T()).UnassignedCash.InexactFloat64())
}

func (suite *TestSuiteStandard) TestPaychecksValidation() {
	tests := []struct {
		name   string
		body   string
		fields []string
		err    string
	}{
		{
			"Everything missing",
			`{}`,
			[]string{"amount", "mode", "payerName"},
			"the paycheck is not valid: amount, mode, payerName",
		},
		{
			"Negative amount",
			`{ "amount": -5, "payerName": "ACME Corp", "mode": "allocate" }`,
			[]string{"amount"},
			"the paycheck is not valid: amount",
		},
		{
			"Too large",
			`{ "amount": 1000000.01, "payerName": "ACME Corp", "mode": "leftover" }`,
			[]string{"amount"},
			"the paycheck is not valid: amount",
		},
		{
			"Blank payer",
			`{ "amount": 100, "payerName": "   ", "mode": "leftover" }`,
			[]string{"payerName"},
			"the paycheck is not valid: payerName",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/paychecks", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.PaycheckResponse
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.err, *response.Error)
			assert.Len(t, response.ValidationErrors, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(t, response.ValidationErrors, field)
			}
		})
	}

	// Nothing was stored
	assert.True(suite.T(), getBudget(suite.T()).UnassignedCash.IsZero())
}

func (suite *TestSuiteStandard) TestPaychecksDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/paychecks", `{ "amount": 100, "payerName": "ACME Corp", "mode": "leftover" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.PaycheckResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), *response.Error)
}
