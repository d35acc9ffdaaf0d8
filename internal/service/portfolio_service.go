package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"portfolio/internal/domain"
	"portfolio/internal/dotpath"
	"portfolio/internal/history"
	"portfolio/internal/schema"
)

// ─────────────────────────────────────────────────────────────
// Portfolio Service
// ─────────────────────────────────────────────────────────────

// ImageReleaser frees the transient reference behind an image URL.
// Release must ignore URLs it does not own and be idempotent.
type ImageReleaser interface {
	Release(url string) bool
}

// PortfolioDeps holds the collaborators of a PortfolioService.
type PortfolioDeps struct {
	Schemas      *schema.Registry // defaults to the built-in registry
	Images       ImageReleaser    // optional
	Emitter      EventEmitter     // optional
	Logger       *zap.Logger      // optional
	HistoryLimit int              // <= 0 means history.DefaultLimit
}

// HistoryStatus reports undo/redo availability to the shell.
type HistoryStatus struct {
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
	Past    int  `json:"past"`
	Future  int  `json:"future"`
	Limit   int  `json:"limit"`
}

// ChangeEvent is the payload of EventChanged and EventReset.
type ChangeEvent struct {
	Op     string        `json:"op"`
	Status HistoryStatus `json:"status"`
}

// PortfolioService owns the single live Portfolio. Every mutation except
// SetPortfolio is recorded for undo/redo. Mutations never fail: invalid
// input is logged and ignored, and the method reports false.
type PortfolioService struct {
	mu      sync.Mutex
	hist    *history.History[domain.Portfolio]
	schemas *schema.Registry
	images  ImageReleaser
	emitter EventEmitter
	logger  *zap.Logger
}

// NewPortfolioService creates a store holding an empty Portfolio.
func NewPortfolioService(deps PortfolioDeps) *PortfolioService {
	s := &PortfolioService{
		schemas: deps.Schemas,
		images:  deps.Images,
		emitter: deps.Emitter,
		logger:  deps.Logger,
	}
	if s.schemas == nil {
		s.schemas = schema.NewDefaultRegistry()
	}
	if s.emitter == nil {
		s.emitter = NopEmitter{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.hist = history.New(domain.Portfolio{}, deps.HistoryLimit, domain.Portfolio.Clone)
	return s
}

// ── Reads ──────────────────────────────────────────────────

// Portfolio returns a deep copy of the current document.
func (s *PortfolioService) Portfolio() domain.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Present()
}

// Sections returns a deep copy of the current section list.
func (s *PortfolioService) Sections() []domain.Section {
	return s.Portfolio().Sections
}

// Section returns a deep copy of the section with id.
func (s *PortfolioService) Section(id string) (domain.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		out   domain.Section
		found bool
	)
	s.hist.Peek(func(p domain.Portfolio) {
		if i := p.SectionIndex(id); i >= 0 {
			out, found = p.Sections[i].Clone(), true
		}
	})
	return out, found
}

// GetValue reads the value at path in the document's JSON tree.
func (s *PortfolioService) GetValue(path string) (any, bool) {
	tree, err := s.Portfolio().Tree()
	if err != nil {
		s.logger.Warn("get value: build tree", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return dotpath.Get(tree, path)
}

// Schemas returns the registry used to interpret sections.
func (s *PortfolioService) Schemas() *schema.Registry { return s.schemas }

// HistoryStatus reports the current undo/redo depth.
func (s *PortfolioService) HistoryStatus() HistoryStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *PortfolioService) CanUndo() bool { return s.HistoryStatus().CanUndo }
func (s *PortfolioService) CanRedo() bool { return s.HistoryStatus().CanRedo }

// ── Load ───────────────────────────────────────────────────

// SetPortfolio replaces the document and clears undo/redo history. It is the
// only operation that does not record a history entry. Image references held
// only by the discarded states are released.
func (s *PortfolioService) SetPortfolio(p domain.Portfolio) bool {
	p = p.Clone()
	sections, err := s.prepareSections(p.Sections)
	if err != nil {
		s.logger.Warn("set portfolio: rejected", zap.Error(err))
		return false
	}
	p.Sections = sections
	s.mu.Lock()
	held := make(map[string]bool)
	s.hist.Walk(func(old domain.Portfolio) { s.collectImages(old, held) })
	s.hist.Reset(p)
	status := s.statusLocked()
	s.mu.Unlock()

	s.releaseImages("setPortfolio", held, s.collectImages(p, nil))

	s.logger.Debug("portfolio loaded", zap.String("id", p.ID), zap.Int("sections", len(p.Sections)))
	s.emitter.Emit(context.Background(), EventReset, ChangeEvent{Op: "setPortfolio", Status: status})
	return true
}

// ── Mutations ──────────────────────────────────────────────

// Patch shallow-merges the non-nil fields of patch into the document.
func (s *PortfolioService) Patch(patch domain.PortfolioPatch) bool {
	if patch.Empty() {
		return s.skip("patch", "empty patch")
	}
	if patch.Sections != nil {
		sections, err := s.prepareSections(*patch.Sections)
		if err != nil {
			return s.skip("patch", err.Error())
		}
		patch.Sections = &sections
	}
	if patch.EnabledLocales != nil {
		locales := append([]domain.Locale(nil), (*patch.EnabledLocales)...)
		patch.EnabledLocales = &locales
	}
	return s.apply("patch", func(p domain.Portfolio) (domain.Portfolio, bool) {
		patch.Apply(&p)
		return p, true
	})
}

// UpdateSection shallow-merges partial into the data of the section with
// id. Other sections and the section's effects are left untouched. An
// unknown id is a no-op and records nothing.
func (s *PortfolioService) UpdateSection(id string, partial map[string]any) bool {
	data, err := domain.NormalizeData(partial)
	if err != nil {
		return s.skip("updateSection", err.Error())
	}
	return s.apply("updateSection", func(p domain.Portfolio) (domain.Portfolio, bool) {
		i := p.SectionIndex(id)
		if i < 0 {
			s.logger.Debug("update section: not found", zap.String("section", id))
			return p, false
		}
		if p.Sections[i].Data == nil {
			p.Sections[i].Data = make(map[string]any, len(data))
		}
		for k, v := range data {
			p.Sections[i].Data[k] = v
		}
		return p, true
	})
}

// AddSection appends section to the end of the page. The caller supplies
// the id; an empty or duplicate id or an unknown type is a no-op.
func (s *PortfolioService) AddSection(section domain.Section) bool {
	prepared, err := s.prepareSections([]domain.Section{section})
	if err != nil {
		return s.skip("addSection", err.Error())
	}
	section = prepared[0]
	return s.apply("addSection", func(p domain.Portfolio) (domain.Portfolio, bool) {
		if p.SectionIndex(section.ID) >= 0 {
			s.logger.Debug("add section: duplicate id", zap.String("section", section.ID))
			return p, false
		}
		p.Sections = append(p.Sections, section)
		return p, true
	})
}

// RemoveSection drops the section with id and releases the transient image
// references it held. An unknown id is a no-op.
func (s *PortfolioService) RemoveSection(id string) bool {
	return s.apply("removeSection", func(p domain.Portfolio) (domain.Portfolio, bool) {
		if p.SectionIndex(id) < 0 {
			s.logger.Debug("remove section: not found", zap.String("section", id))
			return p, false
		}
		p.Sections = lo.Filter(p.Sections, func(sec domain.Section, _ int) bool { return sec.ID != id })
		return p, true
	})
}

// ReorderSections moves the section at start so that it ends up at end in
// the list obtained after removing it (a splice move, not a swap). An
// out-of-range start is a no-op; end is clamped into range.
func (s *PortfolioService) ReorderSections(start, end int) bool {
	return s.apply("reorderSections", func(p domain.Portfolio) (domain.Portfolio, bool) {
		n := len(p.Sections)
		if start < 0 || start >= n {
			s.logger.Debug("reorder sections: start out of range", zap.Int("start", start), zap.Int("len", n))
			return p, false
		}
		end = max(0, min(end, n-1))
		if start == end {
			return p, false
		}
		moved := p.Sections[start]
		rest := append(append([]domain.Section{}, p.Sections[:start]...), p.Sections[start+1:]...)
		out := make([]domain.Section, 0, n)
		out = append(out, rest[:end]...)
		out = append(out, moved)
		out = append(out, rest[end:]...)
		p.Sections = out
		return p, true
	})
}

// SetValue assigns value at path in the document's JSON tree. A result that
// no longer decodes into a valid Portfolio is a no-op.
func (s *PortfolioService) SetValue(path string, value any) bool {
	if len(dotpath.Split(path)) == 0 {
		return s.skip("setValue", "empty path")
	}
	v, err := domain.Normalize(value)
	if err != nil {
		return s.skip("setValue", err.Error())
	}
	return s.apply("setValue", func(p domain.Portfolio) (domain.Portfolio, bool) {
		tree, err := p.Tree()
		if err != nil {
			s.logger.Warn("set value: build tree", zap.Error(err))
			return p, false
		}
		dotpath.Set(tree, path, v)
		next, err := domain.PortfolioFromTree(tree)
		if err != nil {
			s.logger.Debug("set value: result does not decode", zap.String("path", path), zap.Error(err))
			return p, false
		}
		sections, err := s.prepareSections(next.Sections)
		if err != nil {
			s.logger.Debug("set value: invalid sections", zap.String("path", path), zap.Error(err))
			return p, false
		}
		next.Sections = sections
		return next, true
	})
}

// Undo restores the previous state. It reports false when there is nothing
// to undo.
func (s *PortfolioService) Undo() bool {
	return s.move("undo", func() bool { return s.hist.Undo() })
}

// Redo re-applies the nearest undone state. It reports false when there is
// nothing to redo.
func (s *PortfolioService) Redo() bool {
	return s.move("redo", func() bool { return s.hist.Redo() })
}

// ── internals ──────────────────────────────────────────────

// apply records fn as one history entry. Image references that leave the
// present, or that only the discarded future branch still held, are released
// once the lock is dropped. Undo restores such references as released URLs.
func (s *PortfolioService) apply(op string, fn func(domain.Portfolio) (domain.Portfolio, bool)) bool {
	s.mu.Lock()
	var before, future map[string]bool
	s.hist.Peek(func(p domain.Portfolio) { before = s.collectImages(p, nil) })
	if _, n := s.hist.Len(); n > 0 {
		future = make(map[string]bool)
		s.hist.WalkFuture(func(p domain.Portfolio) { s.collectImages(p, future) })
	}
	changed := s.hist.Apply(fn)
	var after, kept map[string]bool
	if changed {
		s.hist.Peek(func(p domain.Portfolio) { after = s.collectImages(p, nil) })
		if len(future) > 0 {
			kept = make(map[string]bool)
			s.hist.Walk(func(p domain.Portfolio) { s.collectImages(p, kept) })
		}
	}
	status := s.statusLocked()
	s.mu.Unlock()

	if !changed {
		return false
	}
	s.releaseImages(op, before, after)
	s.releaseImages(op, future, kept)
	s.emitter.Emit(context.Background(), EventChanged, ChangeEvent{Op: op, Status: status})
	return true
}

func (s *PortfolioService) move(op string, fn func() bool) bool {
	s.mu.Lock()
	moved := fn()
	status := s.statusLocked()
	s.mu.Unlock()

	if !moved {
		s.logger.Debug(op + ": nothing to do")
		return false
	}
	s.emitter.Emit(context.Background(), EventChanged, ChangeEvent{Op: op, Status: status})
	return true
}

func (s *PortfolioService) skip(op, reason string) bool {
	s.logger.Debug("mutation ignored", zap.String("op", op), zap.String("reason", reason))
	return false
}

func (s *PortfolioService) statusLocked() HistoryStatus {
	past, future := s.hist.Len()
	return HistoryStatus{
		CanUndo: past > 0,
		CanRedo: future > 0,
		Past:    past,
		Future:  future,
		Limit:   s.hist.Limit(),
	}
}

// prepareSections validates and normalizes a caller-supplied section list
// into a copy the store can own.
func (s *PortfolioService) prepareSections(in []domain.Section) ([]domain.Section, error) {
	out := make([]domain.Section, len(in))
	seen := make(map[string]bool, len(in))
	for i, sec := range in {
		if sec.ID == "" {
			return nil, fmt.Errorf("section %d: missing id", i)
		}
		if seen[sec.ID] {
			return nil, fmt.Errorf("section %s: duplicate id", sec.ID)
		}
		seen[sec.ID] = true
		if !sec.Type.Valid() {
			return nil, fmt.Errorf("section %s: %w: %q", sec.ID, domain.ErrUnknownSectionType, sec.Type)
		}
		if err := domain.NormalizeSection(&sec); err != nil {
			return nil, err
		}
		out[i] = sec
	}
	return out, nil
}

// collectImages adds the image URLs referenced by p's image fields to into,
// allocating it when nil.
func (s *PortfolioService) collectImages(p domain.Portfolio, into map[string]bool) map[string]bool {
	if into == nil {
		into = make(map[string]bool)
	}
	if s.images == nil {
		return into
	}
	for _, sec := range p.Sections {
		sch, err := s.schemas.Lookup(sec.Type)
		if err != nil {
			continue
		}
		for _, f := range sch.FieldsOfKind(schema.KindImage) {
			if img, ok := domain.Image(sec.Data[f.Key]); ok {
				into[img.URL] = true
			}
		}
	}
	return into
}

// releaseImages releases every URL in held that keep no longer references.
func (s *PortfolioService) releaseImages(op string, held, keep map[string]bool) {
	if s.images == nil {
		return
	}
	for url := range held {
		if keep[url] {
			continue
		}
		if s.images.Release(url) {
			s.logger.Debug("released image", zap.String("op", op), zap.String("url", url))
		}
	}
}
