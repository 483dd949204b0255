package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/violet-vault/backend/internal/bills"
	"github.com/violet-vault/backend/internal/models"
	"github.com/violet-vault/backend/internal/splits"
)

func (suite *TestSuiteStandard) TestTransactionFindTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	transaction := models.Transaction{
		Date: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
	}

	err := transaction.AfterFind(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(time.UTC, transaction.Date.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestTransactionSaveTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	transaction := models.Transaction{}
	err := transaction.BeforeSave(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(time.UTC, transaction.Date.Location(), "Timezone for model is not UTC")
	suite.Assert().False(transaction.Date.IsZero(), "Missing date is not set to now")

	transaction = models.Transaction{
		Date: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
	}
	err = transaction.BeforeSave(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(time.UTC, transaction.Date.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestTransactionMetadataRoundTrip() {
	created := suite.createTestTransaction(models.Transaction{
		Description: "Groceries run",
		Amount:      decimal.NewFromFloat(-42.17),
		Type:        "expense",
		Metadata: &splits.Metadata{
			Items:    []splits.Item{{Name: "Milk", Price: 1.99, Category: "Food"}},
			Shipping: 4.5,
		},
	})

	var loaded models.Transaction
	suite.Require().Nil(models.DB.First(&loaded, "id = ?", created.ID).Error)

	suite.Require().NotNil(loaded.Metadata)
	suite.Assert().Equal("Milk", loaded.Metadata.Items[0].Name)
	suite.Assert().Equal(4.5, loaded.Metadata.Shipping)
	suite.Assert().True(decimal.NewFromFloat(-42.17).Equal(loaded.Amount))
}

func (suite *TestSuiteStandard) TestTransactionBillConversion() {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	in := bills.Transaction{
		ID:          "electric",
		Date:        date,
		Description: "Electric",
		Amount:      -120.55,
		Type:        bills.TypeExpense,
		IsScheduled: true,
		Category:    "Utilities",
		EnvelopeID:  "env-1",
		Notes:       "autopay",
	}

	suite.Assert().Equal(in, models.TransactionFromBill(in).Bill())
}

func (suite *TestSuiteStandard) TestTransactionSplitConversion() {
	in := splits.Transaction{
		ID:                  "t_split_0",
		Date:                time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:         "Groceries",
		Amount:              -20.5,
		Category:            "Food",
		EnvelopeID:          "env-1",
		Account:             "checking",
		Type:                "expense",
		ParentTransactionID: "t",
		IsSplit:             true,
		SplitIndex:          0,
		SplitTotal:          2,
		OriginalAmount:      -41,
	}

	suite.Assert().Equal(in, models.TransactionFromSplit(in).Split())
}
