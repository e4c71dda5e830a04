package cli

// Error messages
const (
	ErrHistoryFileRequired = "at least one fish_history file is required"
)

// Summary labels
const (
	LabelRecords     = "Records checked"
	LabelUnparseable = "Unparseable cmd lines"
	LabelBadPaths    = "Unparseable path items"
	LabelUnsorted    = "Records out of order"
	LabelInvalidWhen = "Non-numeric when values"
	LabelMissingWhen = "Records without when"
	LabelStray       = "Lines outside any record"
	MsgNoProblems    = "No problems found."
)
