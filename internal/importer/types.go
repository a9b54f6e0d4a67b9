// Package importer extracts invoice drafts from uploaded documents.
//
// The extraction itself sits behind the Parser interface so that document
// formats can be added without touching the rest of the backend.
package importer

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Draft holds the invoice fields recovered from an uploaded document.
//
// A draft is a pre-filled form, not a submission: fields the parser could
// not recover stay empty and are completed by the user before submitting.
type Draft struct {
	InvoiceNumber string
	CompanyName   string
	ReceivedDate  time.Time
	DueDate       time.Time
	Total         decimal.Decimal
}

// Parser extracts an invoice draft from an uploaded document.
type Parser interface {
	Parse(r io.Reader) (Draft, error)
}
