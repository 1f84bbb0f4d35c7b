package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

func sampleEntries() []types.CatalogEntry {
	return []types.CatalogEntry{
		{
			Make:          "HONDA",
			OperationCode: "RR-BRAKE",
			PartNumber:    "HON-BP-RR-01",
			Description:   "Rear Ceramic Brake Pad Set",
			UnitPrice:     89.99,
			CostPrice:     41.50,
			StockSource:   "OEM Warehouse",
			Availability:  "In Stock",
		},
		{
			Make:          "HONDA",
			OperationCode: "RR-BRAKE",
			PartNumber:    "HON-RTR-RR-01",
			Description:   "Rear Brake Rotor",
			UnitPrice:     64.25,
			CostPrice:     30.10,
			StockSource:   "OEM Warehouse",
			Availability:  "In Stock",
		},
	}
}

func TestImportEntriesUpsertsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO parts_catalog").
		WithArgs("HONDA", "RR-BRAKE", "HON-BP-RR-01", "Rear Ceramic Brake Pad Set", 89.99, 41.50, "OEM Warehouse", "In Stock").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO parts_catalog").
		WithArgs("HONDA", "RR-BRAKE", "HON-RTR-RR-01", "Rear Brake Rotor", 64.25, 30.10, "OEM Warehouse", "In Stock").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err = ImportEntries(context.Background(), db, sampleEntries())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportEntriesRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO parts_catalog").
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err = ImportEntries(context.Background(), db, sampleEntries())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert part HON-BP-RR-01")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportEntriesNoRowsIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, ImportEntries(context.Background(), db, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
