package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/secondwear/internal/client/client"
	"github.com/dmitrijs2005/secondwear/internal/client/credentials"
	"github.com/dmitrijs2005/secondwear/internal/client/session"
	"github.com/dmitrijs2005/secondwear/internal/logging"
	"github.com/stretchr/testify/require"
)

// testEnv wires the real gateway, session and credential store against a
// fake API and an in-memory database.
type testEnv struct {
	db      *sql.DB
	store   *credentials.SQLiteStore
	session *session.Session
	gw      *client.HTTPClient
	srv     *httptest.Server
	calls   *atomic.Int32
}

func newTestEnv(t *testing.T, h http.HandlerFunc) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	store := credentials.NewSQLiteStore(db)
	sess := session.New(store, logging.Nop())
	require.NoError(t, sess.Restore(ctx))

	gw := client.NewHTTPClient(srv.URL+"/api", sess, logging.Nop(), client.WithHTTPClient(srv.Client()))

	return &testEnv{db: db, store: store, session: sess, gw: gw, srv: srv, calls: calls}
}

// loginAs puts the session into the authenticated state without a request.
func (e *testEnv) loginAs(t *testing.T, token string, id int64) {
	t.Helper()
	cred := credentialFor(token, id)
	require.NoError(t, e.session.Establish(context.Background(), e.session.Begin(), cred))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notCalled(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	}
}
