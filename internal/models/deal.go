package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DealStatus string

const (
	DealStatusActive   DealStatus = "Active"
	DealStatusInactive DealStatus = "Inactive"
)

// Deal represents a named pool that combines specific funds with individual
// committed amounts.
//
// Deal linked invoices are distributed across the deal's funds instead of
// across all funds. The nominal Amount is informational, allocations always
// weigh by the committed fund amounts.
type Deal struct {
	DefaultModel
	Name    string `gorm:"uniqueIndex"`
	Manager string
	Amount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Total deal size
	Status  DealStatus
	Funds   []DealFund `gorm:"constraint:OnDelete:CASCADE"`
}

// DealFund is one weight entry of a deal: the portion of the deal's total
// attributed to a single fund.
type DealFund struct {
	ID         uint            `json:"-" gorm:"primaryKey"`
	DealID     uuid.UUID       `json:"-" gorm:"index"`
	FundID     uuid.UUID       `json:"fundId"`
	Fund       Fund            `json:"-"`
	FundAmount decimal.Decimal `json:"fundAmount" gorm:"type:DECIMAL(20,8)"`
	Position   uint            `json:"-"` // Preserves the order the entries were submitted in
}

var (
	ErrDealNameNotUnique     = errors.New("the deal name must be unique")
	ErrDealStatusInvalid     = errors.New("the deal status must be either Active or Inactive")
	ErrDealAmountNegative    = errors.New("the deal amount must not be negative")
	ErrDealFundAmountInvalid = errors.New("all fund amounts of a deal must be positive")
)

// BeforeSave trims whitespace and defaults the status for new deals.
func (d *Deal) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Manager = strings.TrimSpace(d.Manager)

	if d.Status == "" {
		d.Status = DealStatusActive
	}

	if d.Status != DealStatusActive && d.Status != DealStatusInactive {
		return ErrDealStatusInvalid
	}

	return nil
}

func (d *Deal) AfterSave(_ *gorm.DB) error {
	if d.Amount.IsNegative() {
		return ErrDealAmountNegative
	}

	for _, f := range d.Funds {
		if !f.FundAmount.IsPositive() {
			return ErrDealFundAmountInvalid
		}
	}

	return nil
}

// AfterDelete removes the weight entries of the deal. The deal itself is
// soft deleted, so the database level cascade never runs.
func (d *Deal) AfterDelete(tx *gorm.DB) error {
	return tx.Where("deal_id = ?", d.ID).Delete(&DealFund{}).Error
}

// OrderedFunds preloads the weight entries of a deal in the order they
// were submitted in.
func OrderedFunds(db *gorm.DB) *gorm.DB {
	return db.Preload("Funds", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("deal_funds.position")
	})
}
