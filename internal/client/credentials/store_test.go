package credentials

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/secondwear/internal/client/models"
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

func put(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func sampleCredential() models.Credential {
	return models.Credential{
		Token: "abc",
		User: models.User{
			ID:        7,
			Username:  "fashionista_dubai",
			Email:     "a@b.com",
			FirstName: "Mira",
			Location:  "Dubai, UAE",
		},
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()
	c := sampleCredential()

	require.NoError(t, s.Save(ctx, c))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, c, *got)
}

func TestLoad_EmptyStore(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLoad_MalformedOrPartial_ReturnsAbsent(t *testing.T) {
	tests := []struct {
		name  string
		token []byte
		user  []byte
	}{
		{name: "token only", token: []byte("abc")},
		{name: "user only", user: []byte(`{"id":1}`)},
		{name: "empty token", token: []byte{}, user: []byte(`{"id":1}`)},
		{name: "user not json", token: []byte("abc"), user: []byte(`{not json`)},
		{name: "user wrong shape", token: []byte("abc"), user: []byte(`"just a string"`)},
		{name: "empty user", token: []byte("abc"), user: []byte{}},
		{name: "user null", token: []byte("abc"), user: []byte("null")},
		{name: "user id wrong type", token: []byte("abc"), user: []byte(`{"id":"seven"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			if tt.token != nil {
				put(t, db, TokenKey, tt.token)
			}
			if tt.user != nil {
				put(t, db, UserKey, tt.user)
			}

			got, err := NewSQLiteStore(db).Load(context.Background())
			require.NoError(t, err)
			require.Nil(t, got)
		})
	}
}

func TestClear_RemovesBothAndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	put(t, db, "theme", []byte("dark"))
	require.NoError(t, s.Save(ctx, sampleCredential()))

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	require.Equal(t, 1, n, "unrelated keys must survive")
}

func TestSaveUser_ReplacesSnapshotKeepsToken(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleCredential()))

	updated := models.User{ID: 7, Username: "fashionista_dubai", Email: "new@b.com"}
	require.NoError(t, s.SaveUser(ctx, updated))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", got.Token)
	require.Equal(t, updated, got.User, "snapshot is replaced, not merged")
}

func TestSave_RollsBackWhenUserWriteFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metadata`).WithArgs(TokenKey, []byte("abc")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO metadata`).WithArgs(UserKey, sqlmock.AnyArg()).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewSQLiteStore(db).Save(context.Background(), sampleCredential())
	require.ErrorContains(t, err, "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_DBErrorPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT value FROM metadata`).WithArgs(TokenKey).WillReturnError(errors.New("locked"))

	got, err := NewSQLiteStore(db).Load(context.Background())
	require.Error(t, err)
	require.Nil(t, got)
}
