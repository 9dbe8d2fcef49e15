package store

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"moVRP/internal/bench"
	"moVRP/internal/opt"
)

func TestResults_NilDB(t *testing.T) {
	s := NewResults(nil)
	ctx := context.Background()

	require.Error(t, s.SaveRuns(ctx, uuid.New(), []bench.Run{{}}))
	require.Error(t, s.SaveSummaries(ctx, uuid.New(), []bench.Record{{}}))
	require.Error(t, InitSchema(ctx, nil))
}

func TestResults_EmptyInputSkipsDB(t *testing.T) {
	// sql.Open is lazy: nothing dials until a statement runs.
	db, err := sql.Open("pgx", "postgres://movrp@127.0.0.1:1/movrp")
	require.NoError(t, err)
	defer db.Close()

	s := NewResults(db)
	require.NoError(t, s.SaveRuns(context.Background(), uuid.New(), nil))
	require.NoError(t, s.SaveSummaries(context.Background(), uuid.New(), nil))
}

func TestOpen_Unreachable(t *testing.T) {
	_, err := Open("postgres://movrp@127.0.0.1:1/movrp?connect_timeout=1")
	require.ErrorContains(t, err, "verify postgres connection")
}

func TestHelpers(t *testing.T) {
	require.False(t, warningText(nil).Valid)
	w := warningText(opt.ErrEmptyFront)
	require.True(t, w.Valid)
	require.Equal(t, opt.ErrEmptyFront.Error(), w.String)
	require.Equal(t, "x", warningText(errors.New("x")).String)

	require.Equal(t, -1.0, finite(math.Inf(1)))
	require.Equal(t, -1.0, finite(math.NaN()))
	require.Equal(t, 2.5, finite(2.5))
}
