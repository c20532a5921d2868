package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/secondwear/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/secondwear/internal/dbx"
	"github.com/dmitrijs2005/secondwear/internal/logging"
)

const (
	ThemeKey     = "theme"
	LanguageKey  = "language"
	DirectionKey = "direction"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// Direction returns the text direction of the language.
func (l Language) Direction() string {
	if l == LanguageArabic {
		return "rtl"
	}
	return "ltr"
}

type Preferences struct {
	Theme     Theme
	Language  Language
	Direction string
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Language: LanguageEnglish, Direction: "ltr"}
}

// PreferencesService is the theme manager: display preferences kept in the
// local metadata table next to the credential.
type PreferencesService struct {
	db  *sql.DB
	log logging.Logger

	mu      sync.RWMutex
	current Preferences
}

func NewPreferencesService(db *sql.DB, log logging.Logger) *PreferencesService {
	return &PreferencesService{db: db, log: log.With("service", "preferences"), current: DefaultPreferences()}
}

// Load reads the stored preferences. Unknown stored values fall back to the
// defaults.
func (p *PreferencesService) Load(ctx context.Context) (Preferences, error) {
	repo := metadata.NewSQLiteRepository(p.db)
	prefs := DefaultPreferences()

	theme, err := repo.Get(ctx, ThemeKey)
	if err != nil {
		return prefs, fmt.Errorf("load theme: %w", err)
	}
	if t := Theme(theme); t == ThemeLight || t == ThemeDark {
		prefs.Theme = t
	}

	lang, err := repo.Get(ctx, LanguageKey)
	if err != nil {
		return prefs, fmt.Errorf("load language: %w", err)
	}
	if l := Language(lang); l == LanguageEnglish || l == LanguageArabic {
		prefs.Language = l
	}
	prefs.Direction = prefs.Language.Direction()

	p.mu.Lock()
	p.current = prefs
	p.mu.Unlock()
	return prefs, nil
}

func (p *PreferencesService) Current() Preferences {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *PreferencesService) ToggleTheme(ctx context.Context) (Preferences, error) {
	next := p.Current()
	if next.Theme == ThemeDark {
		next.Theme = ThemeLight
	} else {
		next.Theme = ThemeDark
	}
	if err := p.save(ctx, next); err != nil {
		return p.Current(), err
	}
	return next, nil
}

func (p *PreferencesService) ToggleLanguage(ctx context.Context) (Preferences, error) {
	next := p.Current()
	if next.Language == LanguageArabic {
		next.Language = LanguageEnglish
	} else {
		next.Language = LanguageArabic
	}
	next.Direction = next.Language.Direction()
	if err := p.save(ctx, next); err != nil {
		return p.Current(), err
	}
	return next, nil
}

func (p *PreferencesService) save(ctx context.Context, prefs Preferences) error {
	err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, ThemeKey, []byte(prefs.Theme)); err != nil {
			return err
		}
		if err := repo.Set(ctx, LanguageKey, []byte(prefs.Language)); err != nil {
			return err
		}
		return repo.Set(ctx, DirectionKey, []byte(prefs.Direction))
	})
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	p.mu.Lock()
	p.current = prefs
	p.mu.Unlock()
	p.log.Debug(ctx, "preferences saved", "theme", prefs.Theme, "language", prefs.Language)
	return nil
}
