package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	v1 "github.com/violet-vault/backend/internal/controllers/v1"
	"github.com/violet-vault/backend/test"
)

func (suite *TestSuiteStandard) TestGetV1() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), v1.Links{
		Plans:        "http://example.com/v1/plans",
		Paychecks:    "http://example.com/v1/paychecks",
		Bills:        "http://example.com/v1/bills",
		Splits:       "http://example.com/v1/splits",
		Transactions: "http://example.com/v1/transactions",
		Envelopes:    "http://example.com/v1/envelopes",
		Budget:       "http://example.com/v1/budget",
	}, response.Links)
}

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1", "OPTIONS, GET"},
		{"http://example.com/v1/plans", "OPTIONS, POST"},
		{"http://example.com/v1/paychecks", "OPTIONS, POST"},
		{"http://example.com/v1/bills", "OPTIONS, GET, POST"},
		{"http://example.com/v1/bills/summary", "OPTIONS, GET"},
		{"http://example.com/v1/splits/initialize", "OPTIONS, POST"},
		{"http://example.com/v1/splits/add", "OPTIONS, POST"},
		{"http://example.com/v1/splits/update", "OPTIONS, POST"},
		{"http://example.com/v1/splits/remove", "OPTIONS, POST"},
		{"http://example.com/v1/splits/summary", "OPTIONS, POST"},
		{"http://example.com/v1/splits/even", "OPTIONS, POST"},
		{"http://example.com/v1/splits/balance", "OPTIONS, POST"},
		{"http://example.com/v1/splits/prepare", "OPTIONS, POST"},
		{"http://example.com/v1/transactions", "OPTIONS, GET, POST"},
		{"http://example.com/v1/envelopes", "OPTIONS, GET, POST"},
		{"http://example.com/v1/budget", "OPTIONS, GET, PATCH"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, tt.response, recorder.Header().Get("allow"))
		})
	}
}
