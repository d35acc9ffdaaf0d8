// Package seed provides the document loaded at startup: an embedded default
// portfolio or a JSONC file, optionally watched for changes.
package seed

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/tidwall/jsonc"

	"portfolio/internal/domain"
)

//go:embed default.jsonc
var defaultSeed []byte

var ErrInvalid = errors.New("invalid seed")

// Parse strips JSONC comments and trailing commas from data, decodes the
// portfolio and checks it can be loaded.
func Parse(data []byte) (domain.Portfolio, error) {
	var p domain.Portfolio
	if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
		return domain.Portfolio{}, fmt.Errorf("parsing seed: %w", err)
	}
	if err := Validate(p); err != nil {
		return domain.Portfolio{}, err
	}
	if err := domain.NormalizePortfolio(&p); err != nil {
		return domain.Portfolio{}, fmt.Errorf("parsing seed: %w", err)
	}
	return p, nil
}

// ReadFile reads and parses a JSONC seed file.
func ReadFile(path string) (domain.Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("reading %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Default returns the embedded starter portfolio.
func Default() domain.Portfolio {
	p, err := Parse(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded seed: %v", err))
	}
	return p
}

// Load reads path, or returns Default when path is empty.
func Load(path string) (domain.Portfolio, error) {
	if path == "" {
		return Default(), nil
	}
	return ReadFile(path)
}

// Validate checks the structural rules the store relies on: unique
// non-empty section ids, known section types and locales, and a default
// locale that is enabled.
func Validate(p domain.Portfolio) error {
	seen := make(map[string]bool, len(p.Sections))
	for i, sec := range p.Sections {
		if sec.ID == "" {
			return fmt.Errorf("%w: section %d has no id", ErrInvalid, i)
		}
		if seen[sec.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalid, sec.ID)
		}
		seen[sec.ID] = true
		if !sec.Type.Valid() {
			return fmt.Errorf("%w: section %s: %w: %q", ErrInvalid, sec.ID, domain.ErrUnknownSectionType, sec.Type)
		}
	}
	for _, l := range p.EnabledLocales {
		if !lo.Contains(domain.Locales, l) {
			return fmt.Errorf("%w: %w: %q", ErrInvalid, domain.ErrUnknownLocale, l)
		}
	}
	if p.DefaultLocale != "" && len(p.EnabledLocales) > 0 && !lo.Contains(p.EnabledLocales, p.DefaultLocale) {
		return fmt.Errorf("%w: default locale %q is not enabled", ErrInvalid, p.DefaultLocale)
	}
	return nil
}
