package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// Storage keys of the display preferences.
const (
	KeyDarkMode   = "darkMode"
	KeyLargeFonts = "largeFonts"
	KeyLanguage   = "language"
)

// PreferenceStore holds the display settings. Every mutation is written to
// storage immediately; a failed write is logged and the in-memory value kept.
type PreferenceStore struct {
	mu      sync.RWMutex
	prefs   domain.Preferences
	storage ports.Storage
	log     zerolog.Logger
}

// NewPreferenceStore loads persisted preferences, falling back to defaults
// for anything missing or unreadable.
func NewPreferenceStore(ctx context.Context, storage ports.Storage, log zerolog.Logger) *PreferenceStore {
	p := &PreferenceStore{prefs: domain.DefaultPreferences(), storage: storage, log: log}

	p.prefs.DarkMode = p.load(ctx, KeyDarkMode) == "true"
	p.prefs.LargeFonts = p.load(ctx, KeyLargeFonts) == "true"
	if lang := p.load(ctx, KeyLanguage); lang != "" {
		if canon, err := canonicalLanguage(lang); err == nil {
			p.prefs.Language = canon
		} else {
			log.Warn().Str("language", lang).Msg("ignoring unparseable stored language")
		}
	}
	return p
}

// Preferences returns the current settings.
func (p *PreferenceStore) Preferences() domain.Preferences {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.prefs
}

// ToggleDarkMode flips dark mode and persists the new value.
func (p *PreferenceStore) ToggleDarkMode(ctx context.Context) domain.Preferences {
	return p.update(ctx, KeyDarkMode, func(prefs *domain.Preferences) string {
		prefs.DarkMode = !prefs.DarkMode
		return strconv.FormatBool(prefs.DarkMode)
	})
}

// ToggleFontSize switches between normal and large fonts and persists the
// new value.
func (p *PreferenceStore) ToggleFontSize(ctx context.Context) domain.Preferences {
	return p.update(ctx, KeyLargeFonts, func(prefs *domain.Preferences) string {
		prefs.LargeFonts = !prefs.LargeFonts
		return strconv.FormatBool(prefs.LargeFonts)
	})
}

// SetLanguage stores lang in its canonical BCP 47 form ("pt-br" becomes
// "pt-BR"). Unparseable tags leave the preferences unchanged.
func (p *PreferenceStore) SetLanguage(ctx context.Context, lang string) (domain.Preferences, error) {
	canon, err := canonicalLanguage(lang)
	if err != nil {
		return p.Preferences(), err
	}
	return p.update(ctx, KeyLanguage, func(prefs *domain.Preferences) string {
		prefs.Language = canon
		return canon
	}), nil
}

// update applies mutate and writes the value it returns under key. The lock
// is held across the write so storage sees changes in the order they were
// made.
func (p *PreferenceStore) update(ctx context.Context, key string, mutate func(*domain.Preferences) string) domain.Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	value := mutate(&p.prefs)
	p.save(ctx, key, value)
	return p.prefs
}

func (p *PreferenceStore) load(ctx context.Context, key string) string {
	v, _, err := p.storage.Get(ctx, key)
	if err != nil {
		p.log.Warn().Err(err).Str("key", key).Msg("failed to read preference")
		return ""
	}
	return v
}

func (p *PreferenceStore) save(ctx context.Context, key, value string) {
	if err := p.storage.Set(ctx, key, value); err != nil {
		p.log.Warn().Err(err).Str("key", key).Msg("failed to persist preference")
	}
}

func canonicalLanguage(lang string) (string, error) {
	if lang == "" {
		return "", domain.ErrInvalidLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", domain.ErrInvalidLanguage
	}
	return tag.String(), nil
}
