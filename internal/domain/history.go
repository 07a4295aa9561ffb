package domain

// RunEntry is one line of run history.
type RunEntry struct {
	RunID      string `json:"run_id"`
	Timestamp  string `json:"timestamp"`
	DataFile   string `json:"data_file"`
	SchemaFile string `json:"schema_file"`
	CommitHash string `json:"commit_hash,omitempty"`
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	Passed     int    `json:"passed"`
	Failed     int    `json:"failed"`
}

// EntryFor summarizes a report as a history entry.
func EntryFor(r *ValidationReport, timestamp string) RunEntry {
	passed, failed := r.Counts()
	return RunEntry{
		RunID:      r.RunID,
		Timestamp:  timestamp,
		DataFile:   r.DataFile,
		SchemaFile: r.SchemaFile,
		CommitHash: r.CommitHash,
		Status:     r.Status,
		Rows:       r.Rows,
		Passed:     passed,
		Failed:     failed,
	}
}
