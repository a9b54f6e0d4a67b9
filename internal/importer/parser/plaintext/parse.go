// Package plaintext parses invoices that are plain text documents of
// "Key: Value" lines, as produced by the office scanner.
package plaintext

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/araf0216/eas-backend/internal/importer"
	"github.com/shopspring/decimal"
)

var ErrNotAnInvoice = errors.New("the file does not contain any invoice fields")

// dateFormats are tried in order when parsing date values.
var dateFormats = []string{"2006-01-02", "01/02/2006", "January 2, 2006"}

type Parser struct{}

// Parse reads the document line by line and picks up the invoice fields it
// recognizes. Unknown lines are skipped, missing fields stay empty.
func (Parser) Parse(r io.Reader) (importer.Draft, error) {
	var draft importer.Draft
	found := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch normalize(key) {
		case "invoice number", "invoice no", "number":
			draft.InvoiceNumber = value
			found = true
		case "company", "company name", "vendor":
			draft.CompanyName = value
			found = true
		case "received", "received date":
			if date, ok := parseDate(value); ok {
				draft.ReceivedDate = date
				found = true
			}
		case "due", "due date":
			if date, ok := parseDate(value); ok {
				draft.DueDate = date
				found = true
			}
		case "total", "amount", "total amount":
			if total, err := parseAmount(value); err == nil {
				draft.Total = total
				found = true
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return importer.Draft{}, err
	}

	if !found {
		return importer.Draft{}, ErrNotAnInvoice
	}

	return draft, nil
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func parseDate(value string) (time.Time, bool) {
	for _, format := range dateFormats {
		if date, err := time.ParseInLocation(format, value, time.UTC); err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

// parseAmount reads a dollar amount, tolerating a currency sign and
// thousands separators.
func parseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(strings.TrimPrefix(value, "$"))
	value = strings.ReplaceAll(value, ",", "")

	return decimal.NewFromString(value)
}
