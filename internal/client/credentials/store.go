// Package credentials persists the session credential ({token, user}) in
// the local metadata table so it survives process restarts.
//
// Token and user are written and removed together inside one transaction.
// Load never returns a half-populated credential: a missing entry or a user
// payload that does not parse as JSON reads as "no session".
package credentials

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/secondwear/internal/client/models"
	"github.com/dmitrijs2005/secondwear/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/secondwear/internal/dbx"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

// Store is the credential persistence contract used by the session.
type Store interface {
	Save(ctx context.Context, c models.Credential) error
	SaveUser(ctx context.Context, u models.User) error
	Load(ctx context.Context) (*models.Credential, error)
	Clear(ctx context.Context) error
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

func (s *SQLiteStore) Save(ctx context.Context, c models.Credential) error {
	user, err := json.Marshal(c.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, TokenKey, []byte(c.Token)); err != nil {
			return err
		}
		return r.Set(ctx, UserKey, user)
	})
}

// SaveUser replaces the stored user snapshot and leaves the token alone.
func (s *SQLiteStore) SaveUser(ctx context.Context, u models.User) error {
	user, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo(s.db).Set(ctx, UserKey, user)
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Credential, error) {
	r := s.repo(s.db)

	token, err := r.Get(ctx, TokenKey)
	if err != nil {
		return nil, err
	}
	rawUser, err := r.Get(ctx, UserKey)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 || len(rawUser) == 0 {
		return nil, nil
	}

	if !bytes.HasPrefix(bytes.TrimSpace(rawUser), []byte("{")) {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		return nil, nil
	}

	return &models.Credential{Token: string(token), User: u}, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, TokenKey, UserKey)
	})
}
