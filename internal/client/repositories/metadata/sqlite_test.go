package metadata

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("abc")))

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "theme", []byte("light")))
	require.NoError(t, r.Set(ctx, "theme", []byte("dark")))

	v, err := r.Get(ctx, "theme")
	require.NoError(t, err)
	require.Equal(t, []byte("dark"), v)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", nil))

	m, err := r.List(ctx)
	require.NoError(t, err)
	_, ok := m["k"]
	assert.True(t, ok)
}

func TestDelete_RemovesOnlyGivenKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("t")))
	require.NoError(t, r.Set(ctx, "user", []byte("{}")))
	require.NoError(t, r.Set(ctx, "theme", []byte("dark")))

	require.NoError(t, r.Delete(ctx, "token", "user"))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Equal(t, []byte("dark"), m["theme"])

	// repeated delete is a no-op
	require.NoError(t, r.Delete(ctx, "token", "user"))
	require.NoError(t, r.Delete(ctx))
}

func TestList_ReturnsAllPairs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte{0xAA}, m["a"])
	assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])
}

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestGet_DBErrorWrapped(t *testing.T) {
	r, mock := newRepoWithMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM metadata WHERE key = ?`)).
		WithArgs("k").
		WillReturnError(errors.New("disk I/O"))

	v, err := r.Get(context.Background(), "k")
	require.Error(t, err)
	require.Nil(t, v)
	require.Contains(t, err.Error(), "failed to get metadata[k]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_DBErrorWrapped(t *testing.T) {
	r, mock := newRepoWithMock(t)
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs("k", []byte("v")).
		WillReturnError(errors.New("readonly"))

	err := r.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set metadata[k]")
}

func TestDelete_DBErrorWrapped(t *testing.T) {
	r, mock := newRepoWithMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM metadata WHERE key IN (?,?)`)).
		WithArgs("token", "user").
		WillReturnError(errors.New("locked"))

	err := r.Delete(context.Background(), "token", "user")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to delete metadata")
}

func TestList_DBErrorWrapped(t *testing.T) {
	r, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT key, value FROM metadata`).WillReturnError(errors.New("boom"))

	_, err := r.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to list metadata")
}

func TestList_RowErrorWrapped(t *testing.T) {
	r, mock := newRepoWithMock(t)
	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("a", []byte("1")).
		RowError(0, errors.New("corrupt page"))
	mock.ExpectQuery(`SELECT key, value FROM metadata`).WillReturnRows(rows)

	_, err := r.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "metadata")
}
