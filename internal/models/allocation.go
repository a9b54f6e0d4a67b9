package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FundAllocation is one row of a proportional distribution of an invoice
// total. It is computed on demand and never persisted.
type FundAllocation struct {
	FundID     uuid.UUID       `json:"fundId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the fund
	Name       string          `json:"name" example:"Fund Alpha"`                             // Name of the fund
	Basis      decimal.Decimal `json:"basis" example:"850000000"`                             // The weight of the fund: its AUM, or its committed amount within a deal
	Percentage decimal.Decimal `json:"percentage" example:"85"`                               // Share of the basis total, 0-100
	Amount     decimal.Decimal `json:"amount" example:"850"`                                  // Portion of the invoice total allocated to the fund
}

var (
	ErrAllocationTotalNotPositive = errors.New("the invoice total must be positive to compute allocations")
	ErrAllocationBasisEmpty       = errors.New("there are no funds to allocate across")
	ErrAllocationBasisNotPositive = errors.New("the allocation basis must sum to a positive amount")
	ErrDealFundUnknown            = errors.New("the deal references a fund that does not exist")
)

var oneHundred = decimal.NewFromInt(100)

// AllocateAcrossFunds distributes an invoice total across all funds,
// weighted by each fund's share of the summed AUM.
//
// Exactly one row is returned per fund, in input order. Funds whose share
// rounds to zero are not dropped. The inputs are never modified.
func AllocateAcrossFunds(total decimal.Decimal, funds []Fund) ([]FundAllocation, error) {
	if !total.IsPositive() {
		return nil, ErrAllocationTotalNotPositive
	}

	if len(funds) == 0 {
		return nil, ErrAllocationBasisEmpty
	}

	denominator := decimal.Zero
	for _, fund := range funds {
		denominator = denominator.Add(fund.AUM)
	}

	if !denominator.IsPositive() {
		return nil, ErrAllocationBasisNotPositive
	}

	allocations := make([]FundAllocation, 0, len(funds))
	for _, fund := range funds {
		allocations = append(allocations, allocate(total, fund.ID, fund.Name, fund.AUM, denominator))
	}

	return allocations, nil
}

// AllocateAcrossDeal distributes an invoice total across the funds of a
// deal, weighted by each fund's committed amount within the deal.
//
// The denominator is the sum of the committed amounts, not the deal's
// nominal total, so the shares stay correct when the two diverge. Fund names
// are resolved from the funds passed in; a weight entry referencing a fund
// that is not present is an error.
func AllocateAcrossDeal(total decimal.Decimal, deal Deal, funds []Fund) ([]FundAllocation, error) {
	if !total.IsPositive() {
		return nil, ErrAllocationTotalNotPositive
	}

	if len(deal.Funds) == 0 {
		return nil, ErrAllocationBasisEmpty
	}

	byID := make(map[uuid.UUID]Fund, len(funds))
	for _, fund := range funds {
		byID[fund.ID] = fund
	}

	denominator := decimal.Zero
	for _, entry := range deal.Funds {
		if _, ok := byID[entry.FundID]; !ok {
			return nil, ErrDealFundUnknown
		}
		denominator = denominator.Add(entry.FundAmount)
	}

	if !denominator.IsPositive() {
		return nil, ErrAllocationBasisNotPositive
	}

	allocations := make([]FundAllocation, 0, len(deal.Funds))
	for _, entry := range deal.Funds {
		fund := byID[entry.FundID]
		allocations = append(allocations, allocate(total, fund.ID, fund.Name, entry.FundAmount, denominator))
	}

	return allocations, nil
}

func allocate(total decimal.Decimal, id uuid.UUID, name string, basis, denominator decimal.Decimal) FundAllocation {
	share := basis.Div(denominator)

	return FundAllocation{
		FundID:     id,
		Name:       name,
		Basis:      basis,
		Percentage: share.Mul(oneHundred),
		Amount:     share.Mul(total),
	}
}
