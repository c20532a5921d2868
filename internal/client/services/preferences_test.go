package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/secondwear/internal/client/client"
	"github.com/dmitrijs2005/secondwear/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences_DefaultsAndToggle(t *testing.T) {
	ctx := context.Background()
	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	p := NewPreferencesService(db, logging.Nop())
	prefs, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), prefs)

	prefs, err = p.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, prefs.Theme)

	prefs, err = p.ToggleLanguage(ctx)
	require.NoError(t, err)
	assert.Equal(t, LanguageArabic, prefs.Language)
	assert.Equal(t, "rtl", prefs.Direction)

	// A fresh service sees the stored values.
	reloaded, err := NewPreferencesService(db, logging.Nop()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Preferences{Theme: ThemeDark, Language: LanguageArabic, Direction: "rtl"}, reloaded)

	var dir []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, DirectionKey).Scan(&dir))
	assert.Equal(t, "rtl", string(dir))

	prefs, err = p.ToggleLanguage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ltr", prefs.Direction)
}

func TestPreferences_UnknownStoredValuesFallBack(t *testing.T) {
	ctx := context.Background()
	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO metadata(key, value) VALUES ('theme', 'sepia'), ('language', 'fr')`)
	require.NoError(t, err)

	prefs, err := NewPreferencesService(db, logging.Nop()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), prefs)
}

func TestPreferences_SaveFailureKeepsCurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metadata`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	p := NewPreferencesService(db, logging.Nop())
	prefs, err := p.ToggleTheme(context.Background())
	require.Error(t, err)
	assert.Equal(t, ThemeLight, prefs.Theme)
	assert.Equal(t, ThemeLight, p.Current().Theme)
	require.NoError(t, mock.ExpectationsWereMet())
}
