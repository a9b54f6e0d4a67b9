package models_test

import (
	"testing"
	"time"

	"github.com/araf0216/eas-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInvoice() models.Invoice {
	return models.Invoice{
		InvoiceNumber: "INV-2024-0042",
		CompanyName:   "Meridian Advisory LLC",
		Total:         decimal.NewFromInt(1000),
		ActivityType:  models.ActivityReimbursable,
		ReceivedDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *TestSuiteStandard) TestSubmitInvoice() {
	t := suite.T()

	invoice, err := models.SubmitInvoice(models.DB, validInvoice())
	require.NoError(t, err)

	// Every submission starts out pending approval, no matter what the
	// caller set
	assert.Equal(t, models.StatusPendingApproval, invoice.Status)
	assert.NotEqual(t, uuid.Nil, invoice.ID)
}

func (suite *TestSuiteStandard) TestSubmitInvoiceValidation() {
	deal := suite.createTestDeal(models.Deal{
		Funds: []models.DealFund{
			{FundID: suite.createTestFund(models.Fund{AUM: decimal.NewFromInt(1)}).ID, FundAmount: decimal.NewFromInt(1)},
		},
	})

	tests := []struct {
		name     string
		modify   func(i *models.Invoice)
		expected string
	}{
		{"Missing number", func(i *models.Invoice) { i.InvoiceNumber = " " }, "the invoice number is required"},
		{"Missing company", func(i *models.Invoice) { i.CompanyName = "" }, "the company name is required"},
		{"Missing received date", func(i *models.Invoice) { i.ReceivedDate = time.Time{} }, "the received date is required"},
		{"Missing due date", func(i *models.Invoice) { i.DueDate = time.Time{} }, "the due date is required"},
		{"Zero total", func(i *models.Invoice) { i.Total = decimal.Zero }, "the invoice total must be positive"},
		{"Negative total", func(i *models.Invoice) { i.Total = decimal.NewFromInt(-5) }, "the invoice total must be positive"},
		{"No activity type", func(i *models.Invoice) { i.ActivityType = "" }, "an activity type must be selected"},
		{"Pending activity type", func(i *models.Invoice) { i.ActivityType = models.ActivityPending }, "an activity type must be selected"},
		{"Unknown activity type", func(i *models.Invoice) { i.ActivityType = "Surprise" }, models.ErrActivityTypeInvalid.Error()},
		{
			"Deal allocation without deal",
			func(i *models.Invoice) { i.ActivityType = models.ActivityDealAllocation },
			models.ErrInvoiceDealRequired.Error(),
		},
		{
			"Deal allocation with missing deal",
			func(i *models.Invoice) {
				id := uuid.New()
				i.ActivityType = models.ActivityDealAllocation
				i.DealID = &id
			},
			"the linked deal does not exist",
		},
		{
			"Deal on non deal allocation invoice",
			func(i *models.Invoice) { i.DealID = &deal.ID },
			"a deal can only be linked for deal allocation invoices",
		},
		{
			"Due before received",
			func(i *models.Invoice) { i.DueDate = i.ReceivedDate.AddDate(0, 0, -1) },
			"the due date cannot be earlier than the received date",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			invoice := validInvoice()
			tt.modify(&invoice)

			_, err := models.SubmitInvoice(models.DB, invoice)
			require.Error(t, err)

			var validationErrs models.ValidationErrors
			require.ErrorAs(t, err, &validationErrs)
			assert.Contains(t, validationErrs, tt.expected)
		})
	}
}

// TestSubmitInvoiceCollectsAllErrors verifies that a submission with several
// problems reports all of them at once.
func (suite *TestSuiteStandard) TestSubmitInvoiceCollectsAllErrors() {
	t := suite.T()

	_, err := models.SubmitInvoice(models.DB, models.Invoice{})
	require.Error(t, err)

	var validationErrs models.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.GreaterOrEqual(t, len(validationErrs), 5, "errors are: %s", validationErrs)
}

func (suite *TestSuiteStandard) TestSubmitInvoiceDuplicate() {
	t := suite.T()

	first := suite.submitTestInvoice(models.Invoice{InvoiceNumber: "INV-1"})

	duplicate := validInvoice()
	duplicate.InvoiceNumber = first.InvoiceNumber

	_, err := models.SubmitInvoice(models.DB, duplicate)
	require.Error(t, err)

	var validationErrs models.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs, "the invoice number is already in use, only rejected invoices can be replaced")
}

// TestSubmitInvoiceSupersedesRejected verifies that a resubmission under the
// number of a rejected invoice replaces that invoice in place.
func (suite *TestSuiteStandard) TestSubmitInvoiceSupersedesRejected() {
	t := suite.T()

	rejected := suite.submitTestInvoice(models.Invoice{InvoiceNumber: "INV-1"})
	require.NoError(t, rejected.Review(models.DB, models.StatusRejected))

	resubmission := validInvoice()
	resubmission.InvoiceNumber = rejected.InvoiceNumber
	resubmission.CompanyName = "Corrected Company Inc"

	invoice, err := models.SubmitInvoice(models.DB, resubmission)
	require.NoError(t, err)

	// The record is reused, no duplicate row exists
	assert.Equal(t, rejected.ID, invoice.ID)
	assert.Equal(t, models.StatusPendingApproval, invoice.Status)
	assert.Equal(t, "Corrected Company Inc", invoice.CompanyName)

	var count int64
	require.NoError(t, models.DB.Model(&models.Invoice{}).Where("invoice_number = ?", rejected.InvoiceNumber).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func (suite *TestSuiteStandard) TestReviewInvoice() {
	t := suite.T()

	invoice := suite.submitTestInvoice(models.Invoice{})
	require.NoError(t, invoice.Review(models.DB, models.StatusApproved))
	assert.Equal(t, models.StatusApproved, invoice.Status)

	// An approved invoice cannot be reviewed again
	err := invoice.Review(models.DB, models.StatusRejected)
	assert.ErrorIs(t, err, models.ErrInvoiceNotPending)
}

func (suite *TestSuiteStandard) TestReviewInvoiceDecisions() {
	tests := []struct {
		name     string
		decision models.InvoiceStatus
		err      error
	}{
		{"Approve", models.StatusApproved, nil},
		{"Reject", models.StatusRejected, nil},
		{"Pending is not a decision", models.StatusPendingApproval, models.ErrReviewDecisionInvalid},
		{"Complete is not a decision", models.StatusComplete, models.ErrReviewDecisionInvalid},
		{"Unknown decision", "Maybe", models.ErrReviewDecisionInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			invoice := suite.submitTestInvoice(models.Invoice{})
			err := invoice.Review(models.DB, tt.decision)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestSetActivityType() {
	t := suite.T()

	invoice := suite.submitTestInvoice(models.Invoice{})
	require.NoError(t, invoice.Review(models.DB, models.StatusApproved))

	// Assigning an activity type completes the invoice
	require.NoError(t, invoice.SetActivityType(models.DB, models.ActivityOutOfFM, nil))
	assert.Equal(t, models.StatusComplete, invoice.Status)
	assert.Equal(t, models.ActivityOutOfFM, invoice.ActivityType)

	// Setting Pending resets a completed invoice back to Approved
	require.NoError(t, invoice.SetActivityType(models.DB, models.ActivityPending, nil))
	assert.Equal(t, models.StatusApproved, invoice.Status)
	assert.Equal(t, models.ActivityPending, invoice.ActivityType)
}

func (suite *TestSuiteStandard) TestSetActivityTypeGuards() {
	t := suite.T()

	pending := suite.submitTestInvoice(models.Invoice{})
	err := pending.SetActivityType(models.DB, models.ActivityReimbursable, nil)
	assert.ErrorIs(t, err, models.ErrInvoiceNotReviewed)

	rejected := suite.submitTestInvoice(models.Invoice{})
	require.NoError(t, rejected.Review(models.DB, models.StatusRejected))
	err = rejected.SetActivityType(models.DB, models.ActivityReimbursable, nil)
	assert.ErrorIs(t, err, models.ErrInvoiceNotReviewed)

	approved := suite.submitTestInvoice(models.Invoice{})
	require.NoError(t, approved.Review(models.DB, models.StatusApproved))
	err = approved.SetActivityType(models.DB, "Surprise", nil)
	assert.ErrorIs(t, err, models.ErrActivityTypeInvalid)
}

func (suite *TestSuiteStandard) TestSetActivityTypeDealAllocation() {
	t := suite.T()

	deal := suite.createTestDeal(models.Deal{
		Funds: []models.DealFund{
			{FundID: suite.createTestFund(models.Fund{AUM: decimal.NewFromInt(1)}).ID, FundAmount: decimal.NewFromInt(1)},
		},
	})

	invoice := suite.submitTestInvoice(models.Invoice{})
	require.NoError(t, invoice.Review(models.DB, models.StatusApproved))

	// Deal allocation without a deal is rejected
	err := invoice.SetActivityType(models.DB, models.ActivityDealAllocation, nil)
	assert.ErrorIs(t, err, models.ErrInvoiceDealRequired)

	// A non-existing deal is rejected
	unknown := uuid.New()
	err = invoice.SetActivityType(models.DB, models.ActivityDealAllocation, &unknown)
	assert.ErrorIs(t, err, models.ErrResourceNotFound)

	// With a deal, the invoice is linked and completed
	require.NoError(t, invoice.SetActivityType(models.DB, models.ActivityDealAllocation, &deal.ID))
	assert.Equal(t, models.StatusComplete, invoice.Status)
	require.NotNil(t, invoice.DealID)
	assert.Equal(t, deal.ID, *invoice.DealID)
}
