package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/infrastructure/storage"
)

func TestPreferenceStore_Defaults(t *testing.T) {
	p := NewPreferenceStore(context.Background(), storage.NewMemory(), zerolog.Nop())
	assert.Equal(t, domain.Preferences{Language: "en"}, p.Preferences())
	assert.Equal(t, "light", p.Preferences().Theme())
}

func TestPreferenceStore_LoadsPersisted(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	require.NoError(t, st.Set(ctx, KeyDarkMode, "true"))
	require.NoError(t, st.Set(ctx, KeyLargeFonts, "yes"))
	require.NoError(t, st.Set(ctx, KeyLanguage, "es"))

	p := NewPreferenceStore(ctx, st, zerolog.Nop())
	assert.Equal(t, domain.Preferences{DarkMode: true, LargeFonts: false, Language: "es"}, p.Preferences())
}

func TestPreferenceStore_ToggleDarkModeRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	p := NewPreferenceStore(ctx, st, zerolog.Nop())
	original := p.Preferences().DarkMode

	got := p.ToggleDarkMode(ctx)
	assert.Equal(t, !original, got.DarkMode)
	v, _, _ := st.Get(ctx, KeyDarkMode)
	assert.Equal(t, "true", v)

	got = p.ToggleDarkMode(ctx)
	assert.Equal(t, original, got.DarkMode)
	v, _, _ = st.Get(ctx, KeyDarkMode)
	assert.Equal(t, "false", v)
}

func TestPreferenceStore_ToggleFontSize(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	p := NewPreferenceStore(ctx, st, zerolog.Nop())

	got := p.ToggleFontSize(ctx)
	assert.True(t, got.LargeFonts)
	assert.Equal(t, "light-large", got.Theme())
	v, _, _ := st.Get(ctx, KeyLargeFonts)
	assert.Equal(t, "true", v)

	p.ToggleDarkMode(ctx)
	assert.Equal(t, "dark-large", p.Preferences().Theme())
}

func TestPreferenceStore_SetLanguage(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	p := NewPreferenceStore(ctx, st, zerolog.Nop())

	got, err := p.SetLanguage(ctx, "pt-br")
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", got.Language)
	v, _, _ := st.Get(ctx, KeyLanguage)
	assert.Equal(t, "pt-BR", v)

	_, err = p.SetLanguage(ctx, "not a language!")
	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
	assert.Equal(t, "pt-BR", p.Preferences().Language)

	_, err = p.SetLanguage(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
}

func TestPreferenceStore_StorageFailureKeepsMemoryValue(t *testing.T) {
	ctx := context.Background()
	p := NewPreferenceStore(ctx, brokenStorage{}, zerolog.Nop())

	assert.Equal(t, domain.DefaultPreferences(), p.Preferences())
	assert.True(t, p.ToggleDarkMode(ctx).DarkMode)
	assert.True(t, p.Preferences().DarkMode)
}

// slowFirstSet delays the first write so a second writer can overtake it.
type slowFirstSet struct {
	*storage.Memory
	calls   atomic.Int32
	started chan struct{}
}

func (s *slowFirstSet) Set(ctx context.Context, key, value string) error {
	if s.calls.Add(1) == 1 {
		close(s.started)
		time.Sleep(50 * time.Millisecond)
	}
	return s.Memory.Set(ctx, key, value)
}

func TestPreferenceStore_OverlappingTogglesPersistInOrder(t *testing.T) {
	ctx := context.Background()
	st := &slowFirstSet{Memory: storage.NewMemory(), started: make(chan struct{})}
	p := NewPreferenceStore(ctx, st, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.ToggleDarkMode(ctx)
	}()
	<-st.started
	p.ToggleDarkMode(ctx)
	wg.Wait()

	v, ok, err := st.Get(ctx, KeyDarkMode)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, p.Preferences().DarkMode)
	assert.Equal(t, "false", v)
}
