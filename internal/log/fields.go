package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldOutcome    = "outcome"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldWorkflow   = "workflow"
	FieldSequence   = "seq"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldFile       = "file"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentCLI      = "cli"
	ComponentBackend  = "backend"
	ComponentWorkflow = "workflow"
	ComponentExport   = "export"
	ComponentArchive  = "archive"
	ComponentConfig   = "config"
)

// Operations defines standard operation names
const (
	OpUpload     = "upload"
	OpReceipt    = "receipt"
	OpCategorize = "categorize"
	OpSavings    = "savings"
	OpAnalyze    = "analyze"
	OpChat       = "chat"
	OpExport     = "export"
	OpArchive    = "archive"
)
