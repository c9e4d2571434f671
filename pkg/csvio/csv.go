package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mohammaddehghani/fuelrep/pkg/domain"
)

// Export format: header id,odometer,volume,timestamp then one row per entry,
// UTF-8, comma-delimited. Import only requires odometer and volume columns;
// ids and timestamps are regenerated by the store on insert.

var exportHeader = []string{"id", "odometer", "volume", "timestamp"}

// Encode renders entries as CSV in ID order.
func Encode(entries []domain.FuelEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatFloat(e.Odometer, 'f', -1, 64),
			strconv.FormatFloat(e.Volume, 'f', -1, 64),
			e.RecordedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row for entry %d: %w", e.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an import file into observations, in row order.
//
// The first row must be a header naming at least the odometer and volume
// columns (case-insensitive; "liter"/"liters" are accepted aliases for
// volume). Extra columns such as id and timestamp are ignored.
func Decode(data []byte) ([]domain.Observation, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // validated per row below
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("invalid CSV: file is empty")
	}

	odoCol, volCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "odometer", "km":
			odoCol = i
		case "volume", "liter", "liters":
			volCol = i
		}
	}
	if odoCol < 0 || volCol < 0 {
		return nil, fmt.Errorf("invalid CSV: header must name odometer and volume columns, got %v", records[0])
	}

	rows := make([]domain.Observation, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2 // 1-based, after header
		if len(record) <= odoCol || len(record) <= volCol {
			return nil, fmt.Errorf("invalid CSV: line %d has %d fields", line, len(record))
		}
		odometer, err := strconv.ParseFloat(strings.TrimSpace(record[odoCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CSV: line %d: bad odometer %q", line, record[odoCol])
		}
		volume, err := strconv.ParseFloat(strings.TrimSpace(record[volCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CSV: line %d: bad volume %q", line, record[volCol])
		}
		rows = append(rows, domain.Observation{Odometer: odometer, Volume: volume})
	}
	return rows, nil
}
