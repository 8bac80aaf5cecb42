package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile    string
	BackendURL    string
	Timeout       int
	Debug         bool
	ReportName    string
	ReportType    []string
	Dir           string
	ArchiveBucket string
	ArchivePrefix string
	ArchiveRegion string

	// Workflow inputs, validated by the workflows themselves.
	Month           string
	Year            string
	File            string
	TransactionType string
	SpendingPct     string
	SavingPct       string
	Query           string
}
