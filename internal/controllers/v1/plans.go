package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/violet-vault/backend/internal/funding"
	"github.com/violet-vault/backend/internal/httputil"
	"github.com/violet-vault/backend/internal/metrics"
)

// RegisterPlanRoutes registers the routes for paycheck plans with
// the RouterGroup that is passed.
func RegisterPlanRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsPlans)
	r.POST("", CreatePlan)
}

type PlanRequest struct {
	Amount float64 `json:"amount"`
	Mode   string  `json:"mode"`

	// Envelopes to plan with. The stored envelopes are used when this is not set.
	Envelopes []funding.Envelope `json:"envelopes"`
}

type PlanResponse struct {
	Data  *funding.Plan `json:"data"`  // nil when there is nothing to plan yet
	Error *string       `json:"error"` // The error, if any occurred
}

// OptionsPlans returns the allowed HTTP methods
func OptionsPlans(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreatePlan previews how a paycheck would be distributed. Nothing is stored.
func CreatePlan(c *gin.Context) {
	var request PlanRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{Error: &e})
		return
	}

	mode, err := funding.ParseMode(request.Mode)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{Error: &e})
		return
	}

	envelopes := request.Envelopes
	if envelopes == nil {
		envelopes, err = storedEnvelopes(c)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PlanResponse{Error: &e})
			return
		}
	}

	plan := funding.Calculate(request.Amount, mode, envelopes)
	if plan != nil {
		metrics.PlansCreated.WithLabelValues(string(mode)).Inc()
	}

	c.JSON(http.StatusOK, PlanResponse{Data: plan})
}

// storedEnvelopes returns all envelopes in the planner representation.
func storedEnvelopes(c *gin.Context) ([]funding.Envelope, error) {
	stored, err := store.Envelopes(c)
	if err != nil {
		return nil, err
	}

	envelopes := make([]funding.Envelope, 0, len(stored))
	for _, e := range stored {
		envelopes = append(envelopes, e.Funding())
	}

	return envelopes, nil
}
