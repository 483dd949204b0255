package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/violet-vault/backend/internal/httputil"
	"github.com/violet-vault/backend/internal/models"
	"github.com/violet-vault/backend/internal/splits"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactions)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
	}

	r.OPTIONS("/:id/splits", OptionsTransactionSplits)
	r.GET("/:id/splits", GetTransactionSplits)
	r.POST("/:id/splits", SplitTransaction)
}

// TransactionEditable are the fields of a transaction that clients set.
type TransactionEditable struct {
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"` // Expenses are negative
	Type        string           `json:"type"`   // expense or income
	IsScheduled bool             `json:"isScheduled"`
	Category    string           `json:"category"`
	EnvelopeID  string           `json:"envelopeId"`
	Notes       string           `json:"notes"`
	Account     string           `json:"account"`
	Metadata    *splits.Metadata `json:"metadata"` // Itemized receipt
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:        editable.Date,
		Description: editable.Description,
		Amount:      editable.Amount,
		Type:        editable.Type,
		IsScheduled: editable.IsScheduled,
		Category:    editable.Category,
		EnvelopeID:  editable.EnvelopeID,
		Notes:       editable.Notes,
		Account:     editable.Account,
		Metadata:    editable.Metadata,
	}
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`  // Data for the transaction
	Error *string             `json:"error"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`  // List of transactions
	Error *string              `json:"error"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Type       string `form:"type"`
	EnvelopeID string `form:"envelope"`
	Parent     string `form:"parent"` // Only the split parts of this transaction
}

type TransactionSplitRequest struct {
	Splits []splits.Allocation `json:"splits"`
}

// OptionsTransactions returns the allowed HTTP methods
func OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsTransactionDetail returns the allowed HTTP methods
func OptionsTransactionDetail(c *gin.Context) {
	_, err := store.Transaction(c, c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// OptionsTransactionSplits returns the allowed HTTP methods
func OptionsTransactionSplits(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// GetTransactions returns transactions, newest first
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &s})
		return
	}

	q := models.DB.WithContext(c).Order("datetime(transactions.date) DESC, transactions.created_at DESC")

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	if filter.EnvelopeID != "" {
		q = q.Where("envelope_id = ?", filter.EnvelopeID)
	}

	if filter.Parent != "" {
		q = q.Where("parent_transaction_id = ?", filter.Parent)
	}

	transactions := []models.Transaction{}
	err := q.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// GetTransaction returns a specific transaction
func GetTransaction(c *gin.Context) {
	transaction, err := store.Transaction(c, c.Param("id"))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// CreateTransaction creates a transaction
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction := editable.model()
	err = models.DB.WithContext(c).Create(&transaction).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// GetTransactionSplits suggests the initial splits for a stored transaction
func GetTransactionSplits(c *gin.Context) {
	transaction, err := store.Transaction(c, c.Param("id"))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitListResponse{Error: &e})
		return
	}

	envelopes, err := splitTargets(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SplitListResponse{Data: splits.Initialize(transaction.Split(), envelopes)})
}

// SplitTransaction replaces a stored transaction by its splits
//
// The original transaction is kept and marked as split, the parts
// are stored as new transactions.
func SplitTransaction(c *gin.Context) {
	var request TransactionSplitRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	transaction, err := store.Transaction(c, c.Param("id"))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	parts, summary, err := prepare(request.Splits, transaction.Split())
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SplitTransactionsResponse{Summary: &summary, Error: &e})
		return
	}

	created, err := store.SplitTransaction(c, transaction.ID, parts)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionListResponse{Data: created})
}
