package dataset

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/globearc/internal/domain"
)

// decodeJSON splits the top-level array first so that one bad record does
// not fail the whole file.
func decodeJSON(data []byte) ([]record, []domain.SkippedRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode record array: %w", err)
	}
	if raw == nil {
		return nil, nil, fmt.Errorf("top-level value is not an array")
	}

	recs := make([]record, len(raw))
	var skipped []domain.SkippedRecord
	for i, msg := range raw {
		if err := json.Unmarshal(msg, &recs[i]); err != nil {
			skipped = append(skipped, domain.SkippedRecord{Index: i, Reason: "invalid record: " + err.Error()})
		}
	}
	return recs, skipped, nil
}
