package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/violet-vault/backend/internal/httputil"
	"github.com/violet-vault/backend/internal/models"
)

// RegisterBudgetRoutes registers the routes for the budget with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBudget)
	r.GET("", GetBudget)
	r.PATCH("", UpdateBudget)
}

type BudgetEditable struct {
	Name           string          `json:"name"`
	UnassignedCash decimal.Decimal `json:"unassignedCash"` // Money not assigned to any envelope
}

type BudgetResponse struct {
	Data  *models.Budget `json:"data"`  // Data for the budget
	Error *string        `json:"error"` // The error, if any occurred
}

// OptionsBudget returns the allowed HTTP methods
func OptionsBudget(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// GetBudget returns the budget
func GetBudget(c *gin.Context) {
	budget, err := models.CurrentBudget(models.DB.WithContext(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// UpdateBudget updates the name or the unassigned cash of the budget
func UpdateBudget(c *gin.Context) {
	budget, err := models.CurrentBudget(models.DB.WithContext(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	var data BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	err = models.DB.WithContext(c).Model(&budget).Select("", updateFields...).Updates(models.Budget{
		Name:           data.Name,
		UnassignedCash: data.UnassignedCash,
	}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}
