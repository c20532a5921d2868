package cli

import (
	"context"

	"github.com/dmitrijs2005/secondwear/internal/metrics"
)

func (a *App) Theme(ctx context.Context) error {
	if a.prefs == nil {
		return errUnavailable
	}
	p, err := a.prefs.ToggleTheme(ctx)
	if err != nil {
		return err
	}
	a.printf("Theme: %s\n", p.Theme)
	return nil
}

func (a *App) Language(ctx context.Context) error {
	if a.prefs == nil {
		return errUnavailable
	}
	p, err := a.prefs.ToggleLanguage(ctx)
	if err != nil {
		return err
	}
	a.printf("Language: %s (%s)\n", p.Language, p.Direction)
	return nil
}

// Stats prints the request counters collected in this run.
func (a *App) Stats(ctx context.Context) error {
	s, err := metrics.Summary()
	if err != nil {
		return err
	}
	if s == "" {
		s = "No requests yet"
	}
	a.printf("%s\n", s)
	return nil
}
