package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterRepository_Reserve(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewCounterRepository(db)

	mock.ExpectQuery(`INSERT INTO counters \(name, seq\) VALUES \(\$1, \$2\)\s+ON CONFLICT`).
		WithArgs("umbrellas", 5).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(15))

	end, err := repo.Reserve(ctx, "umbrellas", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), end)
}
