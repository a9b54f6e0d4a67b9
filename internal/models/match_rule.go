package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule maps company names to deals.
//
// When an uploaded invoice is extracted, the rules are applied to the
// extracted company name in order of priority. The first match suggests the
// deal to link the invoice to.
type MatchRule struct {
	DefaultModel
	Priority uint
	Match    string    // Company name to match, supports * as wildcard
	DealID   uuid.UUID `json:"dealId"`
	Deal     Deal      `json:"-"`
}

func (m *MatchRule) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*MatchRule)
	return m.checkIntegrity(tx, *toSave)
}

func (m *MatchRule) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(MatchRule)

	if tx.Statement.Changed("DealID") {
		err := m.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the referenced deal exists.
func (m *MatchRule) checkIntegrity(tx *gorm.DB, toSave MatchRule) error {
	return tx.First(&Deal{}, toSave.DealID).Error
}
