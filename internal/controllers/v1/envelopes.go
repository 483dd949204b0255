package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/violet-vault/backend/internal/httputil"
	"github.com/violet-vault/backend/internal/models"
)

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEnvelopes)
		r.GET("", GetEnvelopes)
		r.POST("", CreateEnvelope)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", OptionsEnvelopeDetail)
		r.GET("/:id", GetEnvelope)
		r.PATCH("/:id", UpdateEnvelope)
	}
}

type EnvelopeEditable struct {
	Name               string          `json:"name"`
	EnvelopeType       string          `json:"envelopeType"` // bill, variable, savings, sinking_fund or supplemental
	Category           string          `json:"category"`
	AutoAllocate       bool            `json:"autoAllocate"` // Whether paychecks fund the envelope automatically
	CurrentBalance     decimal.Decimal `json:"currentBalance"`
	BiweeklyAllocation decimal.Decimal `json:"biweeklyAllocation"` // Target per pay period for bill envelopes
	MonthlyBudget      decimal.Decimal `json:"monthlyBudget"`      // Target per month for variable envelopes
}

func (editable EnvelopeEditable) model() models.Envelope {
	return models.Envelope{
		Name:               editable.Name,
		EnvelopeType:       editable.EnvelopeType,
		Category:           editable.Category,
		AutoAllocate:       editable.AutoAllocate,
		CurrentBalance:     editable.CurrentBalance,
		BiweeklyAllocation: editable.BiweeklyAllocation,
		MonthlyBudget:      editable.MonthlyBudget,
	}
}

type EnvelopeResponse struct {
	Data  *models.Envelope `json:"data"`  // Data for the envelope
	Error *string          `json:"error"` // The error, if any occurred
}

type EnvelopeListResponse struct {
	Data  []models.Envelope `json:"data"`  // List of envelopes
	Error *string           `json:"error"` // The error, if any occurred
}

// OptionsEnvelopes returns the allowed HTTP methods
func OptionsEnvelopes(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsEnvelopeDetail returns the allowed HTTP methods
func OptionsEnvelopeDetail(c *gin.Context) {
	var envelope models.Envelope
	err := models.DB.WithContext(c).First(&envelope, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatch(c)
}

// GetEnvelopes returns all envelopes
func GetEnvelopes(c *gin.Context) {
	envelopes, err := store.Envelopes(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeListResponse{Error: &e})
		return
	}

	if envelopes == nil {
		envelopes = []models.Envelope{}
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: envelopes})
}

// GetEnvelope returns a specific envelope
func GetEnvelope(c *gin.Context) {
	var envelope models.Envelope
	err := models.DB.WithContext(c).First(&envelope, "id = ?", c.Param("id")).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: &envelope})
}

// CreateEnvelope creates an envelope
func CreateEnvelope(c *gin.Context) {
	var editable EnvelopeEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	envelope := editable.model()
	err = models.DB.WithContext(c).Create(&envelope).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, EnvelopeResponse{Data: &envelope})
}

// UpdateEnvelope updates the fields of an envelope that are set in the request
func UpdateEnvelope(c *gin.Context) {
	var envelope models.Envelope
	err := models.DB.WithContext(c).First(&envelope, "id = ?", c.Param("id")).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, EnvelopeEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	var data EnvelopeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	model := data.model()
	err = models.DB.WithContext(c).Model(&envelope).Select("", updateFields...).Updates(&model).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: &envelope})
}
