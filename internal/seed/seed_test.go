package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"portfolio/internal/domain"
)

const minimal = `{
  // comments and trailing commas are allowed
  "id": "p",
  "name": "%s",
  "enabledLocales": ["en", "pl",],
  "defaultLocale": "pl",
  "sections": [
    {"id": "h", "type": "hero", "data": {"headline": {"en": "Hi", "pl": "Cześć"}}},
  ],
}`

func seedText(name string) string {
	return fmt.Sprintf(minimal, name)
}

func TestParse_JSONC(t *testing.T) {
	p, err := Parse([]byte(seedText("Jan")))
	require.NoError(t, err)

	assert.Equal(t, "Jan", p.Name)
	assert.Equal(t, domain.LocalePL, p.DefaultLocale)
	require.Len(t, p.Sections, 1)
	assert.Equal(t, "Cześć", domain.Localized(p.Sections[0].Data["headline"]).Get(domain.LocalePL))
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"id": `},
		{"missing id", `{"sections": [{"type": "hero"}]}`},
		{"duplicate id", `{"sections": [{"id": "a", "type": "hero"}, {"id": "a", "type": "about"}]}`},
		{"unknown type", `{"sections": [{"id": "a", "type": "gallery"}]}`},
		{"unknown locale", `{"enabledLocales": ["de"]}`},
		{"default not enabled", `{"enabledLocales": ["en"], "defaultLocale": "ua"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.NotEmpty(t, p.Name)
	require.NotEmpty(t, p.Sections)
	assert.Equal(t, domain.SectionHero, p.Sections[0].Type)
	assert.Contains(t, p.EnabledLocales, p.DefaultLocale)

	seen := map[domain.SectionType]bool{}
	for _, s := range p.Sections {
		seen[s.Type] = true
	}
	for _, typ := range domain.SectionTypes {
		assert.True(t, seen[typ], "default seed covers %s", typ)
	}
}

func TestLoad(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().ID, p.ID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.jsonc"))
	assert.Error(t, err)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "portfolio.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(seedText("first")), 0o644))

	loaded := make(chan domain.Portfolio, 4)
	w, err := Watch(context.Background(), path, func(p domain.Portfolio) { loaded <- p },
		WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{ broken"), 0o644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(seedText("second")), 0o644))

	select {
	case p := <-loaded:
		assert.Equal(t, "second", p.Name)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not reload")
	}
	require.NoError(t, w.Close())
}

func TestWatcher_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "portfolio.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(seedText("x")), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	w, err := Watch(ctx, path, func(domain.Portfolio) {})
	require.NoError(t, err)

	cancel()
	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("watch goroutine still running")
	}
	require.NoError(t, w.Close())
}
