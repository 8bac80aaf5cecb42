package entity

import (
	"errors"
	"strings"
)

var ErrInvalidTransactionType = errors.New("transaction type must be 'received' or 'paid'")

// TransactionType tags a receipt as money received or money paid.
type TransactionType string

const (
	TransactionReceived TransactionType = "received"
	TransactionPaid     TransactionType = "paid"
)

// ParseTransactionType accepts any casing of the two known types. An empty value yields "".
func ParseTransactionType(value string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return "", nil
	case string(TransactionReceived):
		return TransactionReceived, nil
	case string(TransactionPaid):
		return TransactionPaid, nil
	default:
		return "", ErrInvalidTransactionType
	}
}

// ReceiptUploadRequest submits a receipt image for OCR extraction.
type ReceiptUploadRequest struct {
	File            File
	TransactionType TransactionType
}

// ReceiptDetails are the fields the backend extracted from a receipt.
// Any of them may be empty when the backend could not read it.
type ReceiptDetails struct {
	Date      string `json:"date"`
	Brand     string `json:"brand"`
	TotalCost string `json:"total_cost"`
	Category  string `json:"category"`
}
