package database

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

const upsertPartQuery = `
INSERT INTO parts_catalog (make, operation_code, part_number, description, unit_price, cost_price, stock_source, availability)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (make, operation_code, part_number) DO UPDATE SET
	description = EXCLUDED.description,
	unit_price = EXCLUDED.unit_price,
	cost_price = EXCLUDED.cost_price,
	stock_source = EXCLUDED.stock_source,
	availability = EXCLUDED.availability`

// ImportEntries upserts catalog rows in a single transaction, so a failed
// import never leaves the table half-updated.
func ImportEntries(ctx context.Context, db *sql.DB, entries []types.CatalogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, upsertPartQuery,
			entry.Make,
			entry.OperationCode,
			entry.PartNumber,
			entry.Description,
			entry.UnitPrice,
			entry.CostPrice,
			entry.StockSource,
			entry.Availability,
		); err != nil {
			return fmt.Errorf("upsert part %s: %w", entry.PartNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	log.WithField("rows", len(entries)).Info("Imported catalog entries")
	return nil
}
