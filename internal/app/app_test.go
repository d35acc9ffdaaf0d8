package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/editor"
)

func newApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.Dir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}
	a := New(cfg, nil)
	require.NoError(t, a.Startup(context.Background()))
	t.Cleanup(func() { a.Shutdown(context.Background()) })
	return a
}

func TestStartup_EmbeddedSeed(t *testing.T) {
	a := newApp(t, nil)
	p := a.Store().Portfolio()
	assert.Equal(t, "Alex Morgan", p.Name)
	assert.False(t, a.Store().CanUndo())
	assert.Equal(t, 50, a.Store().HistoryStatus().Limit)
}

func TestStartup_HistoryDepthFromConfig(t *testing.T) {
	a := newApp(t, func(c *config.Config) { c.History.MaxDepth = 5 })
	assert.Equal(t, 5, a.Store().HistoryStatus().Limit)
}

func TestStartup_BadSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed.Path = filepath.Join(t.TempDir(), "missing.jsonc")
	assert.Error(t, New(cfg, nil).Startup(context.Background()))
}

func TestValidate(t *testing.T) {
	a := newApp(t, nil)

	reports, err := a.Validate("")
	require.NoError(t, err)
	assert.Empty(t, reports, "default seed is complete in its enabled locales")

	reports, err = a.Validate(domain.LocalePL)
	require.NoError(t, err)
	require.Len(t, reports, 5)
	assert.Equal(t, "hero-1", reports[0].SectionID)
	assert.Equal(t, editor.RequiredMessage, reports[0].Errors["headline.pl"])
}

func TestValidate_SkipsUnsupportedEnabledLocale(t *testing.T) {
	a := newApp(t, nil)
	require.True(t, a.Store().SetValue("enabledLocales", []any{"en", "de"}))

	reports, err := a.Validate("")
	require.NoError(t, err)
	assert.Empty(t, reports)

	_, err = a.Validate("de")
	assert.Error(t, err, "an explicitly requested locale is still checked")
}

func TestExport(t *testing.T) {
	a := newApp(t, nil)
	path, err := a.Export("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a.Config().Export.Dir, "alex-morgan-portfolio.html"), path)
	assert.FileExists(t, path)
	assert.False(t, a.Jobs().Running("export:alex-morgan-portfolio.html"))
}

func TestShutdown_ReleasesImages(t *testing.T) {
	a := newApp(t, nil)
	_, err := a.Editor().ReplaceImage("about-1", "avatar", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'})
	require.NoError(t, err)
	require.Equal(t, 1, a.Images().Live())

	a.Shutdown(context.Background())
	assert.Equal(t, 0, a.Images().Live())
}

func TestSeedWatch_ReloadsDocument(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "seed.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "p", "name": "Before", "sections": []}`), 0o644))

	cfg := config.DefaultConfig()
	cfg.Seed.Path = path
	cfg.Seed.Watch = true
	a := New(cfg, nil)
	require.NoError(t, a.Startup(context.Background()))

	reloaded := make(chan string, 1)
	a.OnReload(func(p domain.Portfolio) {
		select {
		case reloaded <- p.Name:
		default:
		}
	})
	a.Store().Patch(domain.PortfolioPatch{Name: ptr("edited")})

	require.NoError(t, os.WriteFile(path, []byte(`{"id": "p", "name": "After", "sections": [],}`), 0o644))
	select {
	case name := <-reloaded:
		assert.Equal(t, "After", name)
	case <-time.After(5 * time.Second):
		t.Fatal("seed was not reloaded")
	}
	assert.Equal(t, "After", a.Store().Portfolio().Name)
	assert.False(t, a.Store().CanUndo(), "reload resets history")

	a.Shutdown(context.Background())
}

func ptr[T any](v T) *T { return &v }
