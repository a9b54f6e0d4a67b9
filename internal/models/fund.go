package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fund represents a fund the office manages.
//
// Its AUM is the weight the fund carries when an invoice total is
// distributed across all funds.
type Fund struct {
	DefaultModel
	Name    string `gorm:"uniqueIndex"`
	Manager string
	AUM     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Assets under management
}

var ErrFundAUMNegative = errors.New("the fund AUM must not be negative")

// ErrFundNameNotUnique is set by the create/update callbacks in database.go.
var ErrFundNameNotUnique = errors.New("the fund name must be unique")

// BeforeSave trims whitespace from all strings.
func (f *Fund) BeforeSave(_ *gorm.DB) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Manager = strings.TrimSpace(f.Manager)

	return nil
}

func (f *Fund) AfterSave(_ *gorm.DB) error {
	if f.AUM.IsNegative() {
		return ErrFundAUMNegative
	}

	return nil
}
