package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

const pgCatalogQuery = `
SELECT make, operation_code, part_number, description,
       unit_price, cost_price, stock_source, availability
FROM parts_catalog
ORDER BY make, operation_code, part_number`

// PGSource loads the parts catalog from Postgres. The whole table is read at
// load time into the in-memory store; per-run lookups never touch the
// database.
type PGSource struct {
	DB *sql.DB
}

// NewPGSource creates a Postgres-backed catalog source.
func NewPGSource(db *sql.DB) *PGSource {
	return &PGSource{DB: db}
}

// Name identifies the source in logs and version reporting.
func (s *PGSource) Name() string {
	return "postgres"
}

// Load reads every row of parts_catalog.
func (s *PGSource) Load(ctx context.Context) ([]types.CatalogEntry, error) {
	rows, err := s.DB.QueryContext(ctx, pgCatalogQuery)
	if err != nil {
		return nil, fmt.Errorf("querying parts_catalog: %w", err)
	}
	defer rows.Close()

	entries := []types.CatalogEntry{}
	for rows.Next() {
		var e types.CatalogEntry
		if err := rows.Scan(
			&e.Make, &e.OperationCode, &e.PartNumber, &e.Description,
			&e.UnitPrice, &e.CostPrice, &e.StockSource, &e.Availability,
		); err != nil {
			return nil, fmt.Errorf("scanning parts_catalog row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading parts_catalog rows: %w", err)
	}

	return entries, nil
}
