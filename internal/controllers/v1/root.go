package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/violet-vault/backend/internal/httputil"
	"github.com/violet-vault/backend/internal/models"
)

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", GetV1)
	r.OPTIONS("", OptionsV1)

	RegisterPlanRoutes(r.Group("/plans"))
	RegisterPaycheckRoutes(r.Group("/paychecks"))
	RegisterBillRoutes(r.Group("/bills"))
	RegisterSplitRoutes(r.Group("/splits"))
	RegisterTransactionRoutes(r.Group("/transactions"))
	RegisterEnvelopeRoutes(r.Group("/envelopes"))
	RegisterBudgetRoutes(r.Group("/budget"))
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Plans        string `json:"plans"`        // URL of the paycheck planner
	Paychecks    string `json:"paychecks"`    // URL of paycheck processing
	Bills        string `json:"bills"`        // URL of bill list endpoint
	Splits       string `json:"splits"`       // URL of the split calculator
	Transactions string `json:"transactions"` // URL of transaction list endpoint
	Envelopes    string `json:"envelopes"`    // URL of envelope list endpoint
	Budget       string `json:"budget"`       // URL of the budget
}

// GetV1 returns the link list for v1
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Plans:        url + "/plans",
			Paychecks:    url + "/paychecks",
			Bills:        url + "/bills",
			Splits:       url + "/splits",
			Transactions: url + "/transactions",
			Envelopes:    url + "/envelopes",
			Budget:       url + "/budget",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
