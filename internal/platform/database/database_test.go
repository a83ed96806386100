package database

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), Postgres, "  ")
	require.ErrorContains(t, err, "DSN is empty")
}

func TestConnect_RejectsUnknownDialect(t *testing.T) {
	_, err := Connect(context.Background(), Dialect("oracle"), "dsn")
	require.ErrorContains(t, err, "unsupported database dialect")
}

func TestConnectOrWarn_FallsBackWithoutDSN(t *testing.T) {
	db, cleanup := ConnectOrWarn(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), MySQL, "")
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}
