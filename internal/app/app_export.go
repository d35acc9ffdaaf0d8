package app

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"portfolio/internal/domain"
	"portfolio/internal/export"
)

// ============================================================
// Export & validation
// ============================================================

// Export writes the current document into dir (the configured export
// directory when empty) and returns the file path.
func (a *App) Export(dir string) (string, error) {
	if dir == "" {
		dir = a.cfg.Export.Dir
	}
	p := a.store.Portfolio()

	job := "export:" + export.FileName(p)
	if !a.jobs.TryLock(job) {
		return "", fmt.Errorf("export of %s already running", export.FileName(p))
	}
	defer a.jobs.Unlock(job)

	path, err := a.exporter.WriteFile(dir, p)
	if err != nil {
		return "", err
	}
	a.logger.Info("exported", zap.String("path", path))
	return path, nil
}

// SectionReport lists the validation messages of one section.
type SectionReport struct {
	SectionID string             `json:"sectionId"`
	Type      domain.SectionType `json:"type"`
	Errors    map[string]string  `json:"errors"`
}

// Validate runs the inspector validation over every section for locale and
// returns the sections that have errors. An empty locale means each
// enabled locale of the document; unsupported codes among them are skipped.
func (a *App) Validate(locale domain.Locale) ([]SectionReport, error) {
	p := a.store.Portfolio()
	locales := []domain.Locale{locale}
	if locale == "" {
		locales = lo.Filter(p.EnabledLocales, func(l domain.Locale, _ int) bool {
			return lo.Contains(domain.Locales, l)
		})
		if skipped := len(p.EnabledLocales) - len(locales); skipped > 0 {
			a.logger.Warn("validate: skipping unsupported locales", zap.Int("count", skipped))
		}
		if len(locales) == 0 {
			locales = []domain.Locale{a.cfg.EditorLocale()}
		}
	}

	var reports []SectionReport
	for _, l := range locales {
		for _, sec := range p.Sections {
			form, err := a.editor.Form(sec.ID, l)
			if err != nil {
				return nil, fmt.Errorf("validate %s: %w", sec.ID, err)
			}
			if form.Valid() {
				continue
			}
			errs := make(map[string]string)
			for key, msg := range form.Errors() {
				errs[key+"."+string(l)] = msg
			}
			reports = mergeReport(reports, SectionReport{SectionID: sec.ID, Type: sec.Type, Errors: errs})
		}
	}
	return reports, nil
}

func mergeReport(reports []SectionReport, r SectionReport) []SectionReport {
	_, i, ok := lo.FindIndexOf(reports, func(x SectionReport) bool { return x.SectionID == r.SectionID })
	if !ok {
		return append(reports, r)
	}
	for k, v := range r.Errors {
		reports[i].Errors[k] = v
	}
	return reports
}
