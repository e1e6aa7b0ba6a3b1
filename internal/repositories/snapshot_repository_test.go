package repository

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/keicha2025/keicha-shop/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_Load(t *testing.T) {
	t.Run("Success - Snapshot Decoded", func(t *testing.T) {
		// Arrange
		db, mock := redismock.NewClientMock()
		repo := NewSnapshotRepo(db)

		snap := cart.Snapshot{
			SchemaVersion: cart.SnapshotSchemaVersion,
			Lines: []cart.SnapshotLine{
				{ItemID: "wako-40", Name: "和光 40g", UnitPrice: 1200, Quantity: 2, MaxPerCustomer: 99},
			},
		}
		data, _ := json.Marshal(snap)
		mock.ExpectGet("cart:abc").SetVal(string(data))

		// Act
		got, err := repo.Load(t.Context(), "abc")

		// Assert
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Len(t, got.Lines, 1)
		assert.Equal(t, 2, got.Lines[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss - No Snapshot Stored", func(t *testing.T) {
		// Arrange
		db, mock := redismock.NewClientMock()
		repo := NewSnapshotRepo(db)
		mock.ExpectGet("cart:abc").RedisNil()

		// Act
		got, err := repo.Load(t.Context(), "abc")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Corrupt Snapshot Is Discarded, Not An Error", func(t *testing.T) {
		// Arrange
		db, mock := redismock.NewClientMock()
		repo := NewSnapshotRepo(db)
		mock.ExpectGet("cart:abc").SetVal("{broken")
		mock.ExpectDel("cart:abc").SetVal(1)

		// Act
		got, err := repo.Load(t.Context(), "abc")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Unreachable", func(t *testing.T) {
		// Arrange
		db, mock := redismock.NewClientMock()
		repo := NewSnapshotRepo(db)
		mock.ExpectGet("cart:abc").SetErr(errors.New("connection refused"))

		// Act
		_, err := repo.Load(t.Context(), "abc")

		// Assert
		assert.Error(t, err)
	})
}

func TestSnapshotRepository_Save(t *testing.T) {
	// Arrange
	db, mock := redismock.NewClientMock()
	repo := NewSnapshotRepo(db)

	snap := cart.Snapshot{SchemaVersion: cart.SnapshotSchemaVersion}
	data, _ := json.Marshal(snap)
	mock.ExpectSet("cart:abc", data, 0).SetVal("OK")

	// Act
	err := repo.Save(t.Context(), "abc", snap)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_Delete(t *testing.T) {
	// Arrange
	db, mock := redismock.NewClientMock()
	repo := NewSnapshotRepo(db)
	mock.ExpectDel("cart:abc").SetVal(1)

	// Act
	err := repo.Delete(t.Context(), "abc")

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
