package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// InvoiceStatus is the position of an invoice in the approval workflow.
//
// swagger:enum InvoiceStatus
type InvoiceStatus string

const (
	StatusPendingApproval InvoiceStatus = "Pending Approval"
	StatusApproved        InvoiceStatus = "Approved"
	StatusRejected        InvoiceStatus = "Rejected"
	StatusComplete        InvoiceStatus = "Complete"
)

// ActivityType describes how an approved invoice will be handled.
//
// swagger:enum ActivityType
type ActivityType string

const (
	ActivityPending        ActivityType = "Pending"
	ActivityReimbursable   ActivityType = "Reimbursable"
	ActivityDealAllocation ActivityType = "Deal Allocation"
	ActivityOutOfFM        ActivityType = "Out of FM"
	ActivityComplete       ActivityType = "Complete"
)

// activityTypes are all values an ActivityType can be set to.
var activityTypes = []ActivityType{
	ActivityPending,
	ActivityReimbursable,
	ActivityDealAllocation,
	ActivityOutOfFM,
	ActivityComplete,
}

// Invoice represents an invoice in the warehouse.
//
// Invoices are created by submission, move through the approval workflow and
// are never deleted. A new submission carrying the number of a rejected
// invoice replaces that invoice in place.
type Invoice struct {
	DefaultModel
	InvoiceNumber string `gorm:"index"`
	CompanyName   string
	Total         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Status        InvoiceStatus
	ActivityType  ActivityType
	ReceivedDate  time.Time
	DueDate       time.Time
	DealID        *uuid.UUID
	Deal          *Deal `json:"-"`
}

var (
	ErrInvoiceNotPending     = errors.New("only invoices pending approval can be reviewed")
	ErrReviewDecisionInvalid = errors.New("the review decision must be either Approved or Rejected")
	ErrInvoiceNotReviewed    = errors.New("the activity type can only be set on approved invoices")
	ErrActivityTypeInvalid   = errors.New("the activity type is invalid")
	ErrInvoiceDealRequired   = errors.New("a deal must be linked for deal allocation invoices")
)

// ValidationErrors collects everything wrong with an invoice submission.
//
// When it is returned, no state has been changed: the caller fixes the input
// and submits again.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// BeforeSave trims whitespace and normalizes the dates to UTC.
func (i *Invoice) BeforeSave(_ *gorm.DB) error {
	i.InvoiceNumber = strings.TrimSpace(i.InvoiceNumber)
	i.CompanyName = strings.TrimSpace(i.CompanyName)

	if !i.ReceivedDate.IsZero() {
		i.ReceivedDate = i.ReceivedDate.In(time.UTC)
	}

	if !i.DueDate.IsZero() {
		i.DueDate = i.DueDate.In(time.UTC)
	}

	return nil
}

// validateSubmission checks an invoice for submission and collects all
// failures instead of stopping at the first one.
func (i Invoice) validateSubmission(db *gorm.DB) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(i.InvoiceNumber) == "" {
		errs = append(errs, "the invoice number is required")
	}

	if strings.TrimSpace(i.CompanyName) == "" {
		errs = append(errs, "the company name is required")
	}

	if i.ReceivedDate.IsZero() {
		errs = append(errs, "the received date is required")
	}

	if i.DueDate.IsZero() {
		errs = append(errs, "the due date is required")
	}

	if !i.Total.IsPositive() {
		errs = append(errs, "the invoice total must be positive")
	}

	if i.ActivityType == "" || i.ActivityType == ActivityPending {
		errs = append(errs, "an activity type must be selected")
	} else if !slices.Contains(activityTypes, i.ActivityType) {
		errs = append(errs, ErrActivityTypeInvalid.Error())
	}

	if i.ActivityType == ActivityDealAllocation {
		if i.DealID == nil {
			errs = append(errs, ErrInvoiceDealRequired.Error())
		} else if err := db.First(&Deal{}, *i.DealID).Error; err != nil {
			errs = append(errs, "the linked deal does not exist")
		}
	} else if i.DealID != nil {
		errs = append(errs, "a deal can only be linked for deal allocation invoices")
	}

	if !i.ReceivedDate.IsZero() && !i.DueDate.IsZero() && i.DueDate.Before(i.ReceivedDate) {
		errs = append(errs, "the due date cannot be earlier than the received date")
	}

	// Only a rejected invoice may be superseded by a resubmission under the
	// same number, any other invoice blocks it.
	if strings.TrimSpace(i.InvoiceNumber) != "" {
		var count int64
		err := db.Model(&Invoice{}).
			Where("invoice_number = ? AND status != ?", strings.TrimSpace(i.InvoiceNumber), StatusRejected).
			Count(&count).Error
		if err != nil {
			errs = append(errs, err.Error())
		} else if count > 0 {
			errs = append(errs, "the invoice number is already in use, only rejected invoices can be replaced")
		}
	}

	return errs
}

// SubmitInvoice validates a submission and stores the invoice.
//
// A new invoice always starts out pending approval. If a rejected invoice
// with the same number exists, its record is replaced in place instead of
// creating a duplicate.
//
// All validation failures are returned together as ValidationErrors and
// nothing is stored.
func SubmitInvoice(db *gorm.DB, invoice Invoice) (Invoice, error) {
	invoice.Status = StatusPendingApproval

	if errs := invoice.validateSubmission(db); len(errs) > 0 {
		return Invoice{}, errs
	}

	var rejected Invoice
	err := db.
		Where("invoice_number = ? AND status = ?", strings.TrimSpace(invoice.InvoiceNumber), StatusRejected).
		First(&rejected).Error

	if err == nil {
		// Supersede the rejected invoice: reuse its row, replace all fields
		invoice.ID = rejected.ID
		invoice.CreatedAt = rejected.CreatedAt
		err = db.Save(&invoice).Error
		return invoice, err
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Invoice{}, err
	}

	err = db.Create(&invoice).Error
	return invoice, err
}

// Review decides on an invoice that is pending approval.
//
// The activity type is untouched, completing the invoice happens through
// SetActivityType once it is approved.
func (i *Invoice) Review(db *gorm.DB, decision InvoiceStatus) error {
	if decision != StatusApproved && decision != StatusRejected {
		return ErrReviewDecisionInvalid
	}

	if i.Status != StatusPendingApproval {
		return ErrInvoiceNotPending
	}

	i.Status = decision
	return db.Save(i).Error
}

// SetActivityType assigns the activity type of a reviewed invoice.
//
// Assigning any activity type other than Pending completes the invoice. This
// is the only path by which an invoice reaches the Complete status. Setting
// Pending resets a completed invoice back to Approved.
func (i *Invoice) SetActivityType(db *gorm.DB, activity ActivityType, dealID *uuid.UUID) error {
	if i.Status != StatusApproved && i.Status != StatusComplete {
		return ErrInvoiceNotReviewed
	}

	if !slices.Contains(activityTypes, activity) {
		return ErrActivityTypeInvalid
	}

	if activity == ActivityDealAllocation {
		if dealID != nil {
			if err := db.First(&Deal{}, *dealID).Error; err != nil {
				return err
			}
			i.DealID = dealID
		}

		if i.DealID == nil {
			return ErrInvoiceDealRequired
		}
	}

	i.ActivityType = activity
	if activity == ActivityPending {
		i.Status = StatusApproved
	} else {
		i.Status = StatusComplete
	}

	return db.Save(i).Error
}
