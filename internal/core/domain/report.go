package domain

// IngestError records a single document's failure during a batch add.
// Per-document failures are data in the report, not raised errors: one
// bad file must not abort the rest of the batch.
type IngestError struct {
	// Path is the document path that failed.
	Path string `json:"path"`

	// Message describes the failure.
	Message string `json:"message"`
}

// IngestReport summarises one AddDocuments call.
type IngestReport struct {
	// Documents is the number of documents processed successfully.
	Documents int `json:"documents"`

	// Chunks is the number of chunks created.
	Chunks int `json:"chunks"`

	// Records is the number of embedding records stored.
	Records int `json:"records"`

	// Errors holds one entry per failed path.
	Errors []IngestError `json:"errors,omitempty"`
}

// AllFailed returns true if at least one path was attempted and none
// succeeded. The CLI exits non-zero only in this case.
func (r IngestReport) AllFailed() bool {
	return r.Documents == 0 && len(r.Errors) > 0
}

// AddError appends a failure entry for the given path.
func (r *IngestReport) AddError(path string, err error) {
	r.Errors = append(r.Errors, IngestError{Path: path, Message: err.Error()})
}
