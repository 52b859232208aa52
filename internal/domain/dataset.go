package domain

import "github.com/kailas-cloud/globearc/internal/domain/arc"

// SkippedRecord identifies a malformed data record left out of a dataset.
type SkippedRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Dataset is the edge data read once at startup.
type Dataset struct {
	Edges   []arc.Edge
	Skipped []SkippedRecord
	// Hash is the hex SHA-256 of the raw file contents.
	Hash string
}
