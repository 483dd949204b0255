package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/violet-vault/backend/internal/bills"
	"github.com/violet-vault/backend/internal/funding"
	"github.com/violet-vault/backend/internal/httputil"
	"github.com/violet-vault/backend/internal/metrics"
	"github.com/violet-vault/backend/internal/models"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// RegisterPaycheckRoutes registers the routes for paychecks with
// the RouterGroup that is passed.
func RegisterPaycheckRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsPaychecks)
	r.POST("", ProcessPaycheck)
}

type Paycheck struct {
	Plan        funding.Plan       `json:"plan"`        // How the paycheck was distributed
	Transaction models.Transaction `json:"transaction"` // The income transaction
}

type PaycheckResponse struct {
	Data             *Paycheck         `json:"data"`
	Error            *string           `json:"error"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"` // Problems with the paycheck, keyed by field
}

// OptionsPaychecks returns the allowed HTTP methods
func OptionsPaychecks(c *gin.Context) {
	httputil.OptionsPost(c)
}

// ProcessPaycheck distributes a paycheck across the stored envelopes and
// unassigned cash and records it as income.
func ProcessPaycheck(c *gin.Context) {
	var paycheck funding.Paycheck
	err := httputil.BindData(c, &paycheck)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaycheckResponse{Error: &e})
		return
	}

	if problems := funding.ValidatePaycheck(paycheck); len(problems) > 0 {
		fields := maps.Keys(problems)
		slices.Sort(fields)

		e := fmt.Sprintf("%s: %s", errPaycheckInvalid, strings.Join(fields, ", "))
		c.JSON(http.StatusBadRequest, PaycheckResponse{Error: &e, ValidationErrors: problems})
		return
	}

	// ValidatePaycheck guarantees a valid mode
	mode, _ := funding.ParseMode(paycheck.Mode)

	envelopes, err := storedEnvelopes(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaycheckResponse{Error: &e})
		return
	}

	plan := funding.Calculate(paycheck.Amount, mode, envelopes)

	income := models.Transaction{
		Description: fmt.Sprintf("Paycheck from %s", strings.TrimSpace(paycheck.PayerName)),
		Amount:      decimal.NewFromFloat(paycheck.Amount),
		Type:        string(bills.TypeIncome),
		Category:    "Income",
		EnvelopeID:  bills.UnassignedEnvelopeID,
		Notes:       plan.Summary,
	}

	stored, err := store.ProcessPaycheck(c, income, plan)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaycheckResponse{Error: &e})
		return
	}

	metrics.PlansCreated.WithLabelValues(string(mode)).Inc()

	c.JSON(http.StatusCreated, PaycheckResponse{Data: &Paycheck{Plan: *plan, Transaction: stored}})
}
