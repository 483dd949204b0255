package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/violet-vault/backend/internal/bills"
	"github.com/violet-vault/backend/internal/httputil"
)

// RegisterBillRoutes registers the routes for bills with
// the RouterGroup that is passed.
func RegisterBillRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBills)
		r.GET("", GetBills)
		r.POST("", CreateBill)
	}

	r.OPTIONS("/summary", OptionsBillSummary)
	r.GET("/summary", GetBillSummary)

	// Bill with ID
	{
		r.OPTIONS("/:id", OptionsBillDetail)
		r.GET("/:id", GetBill)
		r.PATCH("/:id", UpdateBill)
		r.DELETE("/:id", DeleteBill)
	}

	r.OPTIONS("/:id/payments", OptionsBillPayments)
	r.POST("/:id/payments", PayBill)
}

type BillResponse struct {
	Data  *bills.Bill `json:"data"`  // Data for the bill
	Error *string     `json:"error"` // The error, if any occurred
}

type BillListResponse struct {
	Data  []bills.Bill `json:"data"`  // List of bills
	Error *string      `json:"error"` // The error, if any occurred
}

type BillSummaryResponse struct {
	Data  *bills.Summary `json:"data"`  // Counts and totals of all bills
	Error *string        `json:"error"` // The error, if any occurred
}

type BillTransactionResponse struct {
	Data  *bills.Transaction `json:"data"`  // The scheduled bill or the payment
	Error *string            `json:"error"` // The error, if any occurred
}

type BillDeleteResponse struct {
	Data  *BillDeletion `json:"data"`
	Error *string       `json:"error"` // The error, if any occurred
}

type BillDeletion struct {
	RemovedPayments int `json:"removedPayments"` // Number of tagged payments deleted with the bill
}

type BillQueryFilter struct {
	Status    string `form:"status"`    // all, upcoming, overdue, paid or unpaid
	Category  string `form:"category"`  // Exact category
	SortBy    string `form:"sortBy"`    // date, dueDate, amount, description, name or category
	SortOrder string `form:"sortOrder"` // asc or desc
}

// query parses the filter into a bills.Query.
func (f BillQueryFilter) query(c *gin.Context) (bills.Query, error) {
	status, err := bills.ParseStatus(f.Status)
	if err != nil {
		return bills.Query{}, err
	}

	sortBy, err := bills.ParseSortField(f.SortBy)
	if err != nil {
		return bills.Query{}, err
	}

	sortOrder, err := bills.ParseSortOrder(f.SortOrder)
	if err != nil {
		return bills.Query{}, err
	}

	daysAhead, err := httputil.QueryInt(c, "daysAhead", bills.DefaultDaysAhead)
	if err != nil {
		return bills.Query{}, err
	}

	return bills.Query{
		Status:    status,
		DaysAhead: daysAhead,
		Category:  f.Category,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}, nil
}

type PaymentRequest struct {
	EnvelopeID string     `json:"envelopeId"` // Source of the payment. Defaults to the envelope of the bill
	Amount     *float64   `json:"amount"`     // Defaults to the bill amount
	Date       *time.Time `json:"date"`
}

// OptionsBills returns the allowed HTTP methods
func OptionsBills(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsBillSummary returns the allowed HTTP methods
func OptionsBillSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsBillDetail returns the allowed HTTP methods
func OptionsBillDetail(c *gin.Context) {
	_, err := billService.Get(c, c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// OptionsBillPayments returns the allowed HTTP methods
func OptionsBillPayments(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetBills returns the reconciled bills matching the query
func GetBills(c *gin.Context) {
	var filter BillQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BillListResponse{Error: &s})
		return
	}

	q, err := filter.query(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillListResponse{Error: &e})
		return
	}

	list, err := billService.List(c, q)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillListResponse{Error: &e})
		return
	}

	// Always return a list, never null
	if list == nil {
		list = []bills.Bill{}
	}

	c.JSON(http.StatusOK, BillListResponse{Data: list})
}

// GetBillSummary returns counts and totals over all bills
func GetBillSummary(c *gin.Context) {
	summary, err := billService.Summary(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillSummaryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BillSummaryResponse{Data: &summary})
}

// GetBill returns a specific bill with its payment status
func GetBill(c *gin.Context) {
	bill, err := billService.Get(c, c.Param("id"))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BillResponse{Data: &bill})
}

// CreateBill schedules a new bill
func CreateBill(c *gin.Context) {
	var input bills.BillInput
	err := httputil.BindData(c, &input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillTransactionResponse{Error: &e})
		return
	}

	bill, err := billService.Create(c, input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillTransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, BillTransactionResponse{Data: &bill})
}

// UpdateBill updates the fields of a bill that are set in the request
func UpdateBill(c *gin.Context) {
	var update bills.BillUpdate
	err := httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillTransactionResponse{Error: &e})
		return
	}

	bill, err := billService.Update(c, c.Param("id"), update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillTransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BillTransactionResponse{Data: &bill})
}

// DeleteBill deletes a bill and the payments tagged with it
func DeleteBill(c *gin.Context) {
	removed, err := billService.Delete(c, c.Param("id"))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillDeleteResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BillDeleteResponse{Data: &BillDeletion{RemovedPayments: removed}})
}

// PayBill records a payment for a bill
func PayBill(c *gin.Context) {
	var request PaymentRequest

	// An empty body pays the bill with its defaults
	if c.Request.ContentLength != 0 {
		err := httputil.BindData(c, &request)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BillTransactionResponse{Error: &e})
			return
		}
	}

	payment, err := billService.MarkPaid(c, c.Param("id"), bills.PaymentOptions{
		EnvelopeID: request.EnvelopeID,
		Amount:     request.Amount,
		Date:       request.Date,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillTransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, BillTransactionResponse{Data: &payment})
}
