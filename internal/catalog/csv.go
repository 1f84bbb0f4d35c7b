package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// CSVSource reads the parts catalog CSV shipped in the data directory.
// Columns are resolved by header name, so column order does not matter.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source for DATA_DIR/parts_catalog.csv.
func NewCSVSource(dataDir string) *CSVSource {
	return &CSVSource{path: filepath.Join(dataDir, "parts_catalog.csv")}
}

// Name identifies the source in logs and version reporting.
func (s *CSVSource) Name() string {
	return "csv:" + s.path
}

// Load reads every catalog row. A missing file degrades to an empty catalog
// with a warning; malformed prices degrade to 0.0 per row and the row is
// kept, so one bad cell never hides the rest of the catalog.
func (s *CSVSource) Load(ctx context.Context) ([]types.CatalogEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", s.path).Warn("parts catalog not found, running with an empty catalog")
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return ParseCSV(f, s.path)
}

// ParseCSV reads catalog rows from a CSV stream. The name only labels log
// lines. Degradation rules match Load: an empty stream means an empty
// catalog, bad prices become 0.0, rows missing key fields are skipped.
func ParseCSV(r io.Reader, name string) ([]types.CatalogEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			log.WithField("path", name).Warn("parts catalog is empty")
			return nil, nil
		}
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, col := range header {
		cols[strings.ToLower(strings.TrimSpace(col))] = i
	}

	entries := []types.CatalogEntry{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.WithFields(log.Fields{"path": name, "line": line, "error": err}).Warn("skipping unreadable catalog row")
			continue
		}

		entry := types.CatalogEntry{
			Make:          field(record, cols, "make"),
			OperationCode: field(record, cols, "operation_code"),
			PartNumber:    field(record, cols, "part_number"),
			Description:   field(record, cols, "description"),
			StockSource:   field(record, cols, "stock_source"),
			Availability:  field(record, cols, "availability"),
		}
		if entry.Make == "" || entry.OperationCode == "" || entry.PartNumber == "" {
			log.WithFields(log.Fields{"path": name, "line": line}).Warn("skipping catalog row with missing key fields")
			continue
		}
		entry.UnitPrice = money(field(record, cols, "unit_price"), name, line, "unit_price")
		entry.CostPrice = money(field(record, cols, "cost_price"), name, line, "cost_price")

		entries = append(entries, entry)
	}

	return entries, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// money parses a price cell, degrading to 0.0 on anything non-numeric.
func money(raw, path string, line int, column string) float64 {
	if raw == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.WithFields(log.Fields{
			"path":   path,
			"line":   line,
			"column": column,
			"value":  raw,
		}).Warn("non-numeric price in catalog, defaulting to 0.0")
		return 0.0
	}
	return v
}
