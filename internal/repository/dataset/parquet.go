package dataset

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"
)

func decodeParquet(data []byte) ([]record, error) {
	recs, err := parquet.Read[record](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("decode parquet table: %w", err)
	}
	return recs, nil
}
