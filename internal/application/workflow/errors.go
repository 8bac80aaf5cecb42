package workflow

import "errors"

// Workflow methods return an error only when no request was issued.
// Transport and server failures are absorbed into the workflow's view.
var (
	ErrIncomplete = errors.New("required input is missing")
	ErrPercentSum = errors.New("spending and saving percentages must sum to 100")
	ErrBusy       = errors.New("a request is already in flight")
)

// User-facing messages.
const (
	MsgUploadIncomplete  = "Please select a file and specify month and year."
	MsgReceiptIncomplete = "Please select a file and specify the transaction type."
	MsgUploadSucceeded   = "File uploaded successfully."
	MsgUploadFailed      = "Error uploading file."
	MsgPeriodRequired    = "Please specify the month and year."
	MsgNoData            = "No data found for the selected month and year."
	MsgPercentSum        = "Spending and saving percentages must sum to 100."
	MsgAnalysisFailed    = "Error analyzing data."
	ChatFallbackReply    = "Error fetching response."
)
