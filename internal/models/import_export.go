package models

import "time"

type ImportValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportSummary reports the outcome of an answer-key import.
type ImportSummary struct {
	Filename       string                  `json:"filename"`
	TotalRows      int                     `json:"total_rows"`
	ImportedRows   int                     `json:"imported_rows"`
	SkippedRows    int                     `json:"skipped_rows"`
	DuplicateRows  int                     `json:"duplicate_rows"`
	Errors         []ImportValidationError `json:"errors,omitempty"`
	ProcessingTime time.Duration           `json:"processing_time"`
}
