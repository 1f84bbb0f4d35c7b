package catalog

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pgColumns = []string{
	"make", "operation_code", "part_number", "description",
	"unit_price", "cost_price", "stock_source", "availability",
}

func TestPGSourceLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT make, operation_code, part_number").
		WillReturnRows(sqlmock.NewRows(pgColumns).
			AddRow("HONDA", "RR-BRAKE", "HON-BP-220", "Rear Brake Pad Set (Ceramic)", 89.99, 52.50, "OEM Warehouse", "In Stock").
			AddRow("RAM", "OIL-LEAK", "RAM-VCG-57", "Valve Cover Gasket", 48.75, 22.10, "Mopar Direct", "In Stock"))

	src := NewPGSource(db)
	entries, err := src.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "HON-BP-220", entries[0].PartNumber)
	assert.InDelta(t, 89.99, entries[0].UnitPrice, 0.0001)
	assert.Equal(t, "RAM", entries[1].Make)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGSourceLoadQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT make, operation_code, part_number").
		WillReturnError(errors.New("relation \"parts_catalog\" does not exist"))

	src := NewPGSource(db)
	_, err = src.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parts_catalog")
}

func TestStoreOverPGSource(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT make, operation_code, part_number").
		WillReturnRows(sqlmock.NewRows(pgColumns).
			AddRow("FORD", "TIRE-SET", "FRD-TIRE-275", "All-Terrain TIRE 275/65R18", 245.00, 189.00, "Tire Rack", "In Stock"))

	store, err := NewStore(context.Background(), NewPGSource(db))
	require.NoError(t, err)

	rows := store.Lookup("ford", "TIRE-SET")
	require.Len(t, rows, 1)
	assert.Equal(t, "FRD-TIRE-275", rows[0].PartNumber)
	assert.Equal(t, "postgres", store.Version().Source)

	assert.NoError(t, mock.ExpectationsWereMet())
}
