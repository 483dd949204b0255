package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/violet-vault/backend/internal/controllers/v1"
	"github.com/violet-vault/backend/internal/models"
	"github.com/violet-vault/backend/test"
)

func (suite *TestSuiteStandard) TestEnvelopesCreateList() {
	rent := createTestEnvelope(suite.T(), v1.EnvelopeEditable{
		Name:               " Rent ",
		EnvelopeType:       "bill",
		Category:           "Housing",
		AutoAllocate:       true,
		BiweeklyAllocation: decimal.NewFromFloat(475.5),
	})
	groceries := createTestEnvelope(suite.T(), v1.EnvelopeEditable{Name: "Groceries", EnvelopeType: "variable"})

	assert.Equal(suite.T(), "Rent", rent.Name)
	assert.True(suite.T(), rent.BiweeklyAllocation.Equal(decimal.NewFromFloat(475.5)))

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/envelopes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EnvelopeListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	assert.Equal(suite.T(), rent.ID, response.Data[0].ID)
	assert.Equal(suite.T(), groceries.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestEnvelopesEmptyList() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/envelopes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.JSONEq(suite.T(), `{ "data": [], "error": null }`, r.Body.String())
}

// TestEnvelopesUpdate verifies that only the fields in the request are updated.
func (suite *TestSuiteStandard) TestEnvelopesUpdate() {
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{
		Name:           "Fun",
		EnvelopeType:   "variable",
		AutoAllocate:   true,
		MonthlyBudget:  decimal.NewFromFloat(100),
		CurrentBalance: decimal.NewFromFloat(12),
	})

	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/envelopes/"+envelope.ID, `{ "name": "Hobbies", "autoAllocate": false }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	updated := getEnvelope(suite.T(), envelope.ID)
	assert.Equal(suite.T(), "Hobbies", updated.Name)
	assert.False(suite.T(), updated.AutoAllocate)
	assert.Equal(suite.T(), "variable", updated.EnvelopeType)
	assert.Equal(suite.T(), 100.0, updated.MonthlyBudget.InexactFloat64())
	assert.Equal(suite.T(), 12.0, updated.CurrentBalance.InexactFloat64())
}

func (suite *TestSuiteStandard) TestEnvelopesUpdateBrokenBody() {
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{Name: "Fun"})

	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/envelopes/"+envelope.ID, `{ "name": `)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestEnvelopesOptions() {
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{Name: "Fun"})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Does not exist", uuid.NewString(), http.StatusNotFound},
		{"Success", envelope.ID, http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, "http://example.com/v1/envelopes/"+tt.id, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopesNotFound() {
	for _, method := range []string{http.MethodGet, http.MethodPatch} {
		suite.T().Run(method, func(t *testing.T) {
			r := test.Request(t, method, "http://example.com/v1/envelopes/"+uuid.NewString(), `{ "name": "Fun" }`)
			test.AssertHTTPStatus(t, &r, http.StatusNotFound)

			var response v1.EnvelopeResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, "there is no envelope matching your query", *response.Error)
		})
	}
}

// TestEnvelopesDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestEnvelopesDatabaseError() {
	tests := []struct {
		name   string
		path   string
		method string
		body   string
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"POST Collection", "", http.MethodPost, `{ "name": "Fun" }`},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.NewString()), http.MethodOptions, ""},
		{"GET Single", fmt.Sprintf("/%s", uuid.NewString()), http.MethodGet, ""},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.NewString()), http.MethodPatch, `{ "name": "Fun" }`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/envelopes%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response v1.EnvelopeListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
		})
	}
}
