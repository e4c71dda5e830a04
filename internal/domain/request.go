package domain

// StdioPath names standard input as a history source.
const StdioPath = "-"

// FixRequest carries one invocation's inputs and mode flags.
type FixRequest struct {
	Inputs      []string
	OutPath     string
	Append      bool
	Lint        bool
	Sort        bool
	ParseFix    bool
	FixPaths    bool
	Verbose     bool
	ArchivePath string
}

// FixResult summarizes a completed run.
type FixResult struct {
	Stats        RunStats
	Records      int
	BytesWritten int64
	// Output is the destination path, "-" for stdout, or empty when nothing was written.
	Output   string
	Archived int
}
