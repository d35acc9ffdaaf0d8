// Package editor is the schema-driven section inspector.
//
// It reads a section through its schema into a Form and writes single field
// values back through the document store, so every edit is undoable. The
// store never fails; the editor reports bad input as errors.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"portfolio/internal/blob"
	"portfolio/internal/domain"
	"portfolio/internal/schema"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrUnknownField    = errors.New("unknown field")
	ErrFieldKind       = errors.New("field kind mismatch")
	ErrUnknownOption   = errors.New("value is not one of the field options")
	ErrNoImage         = errors.New("no image set")
	ErrNotImage        = blob.ErrNotImage
)

// Store is the part of the document store the editor writes through.
type Store interface {
	Section(id string) (domain.Section, bool)
	UpdateSection(id string, partial map[string]any) bool
}

// Images mints and frees transient image references.
type Images interface {
	Create(data []byte) (blob.Object, error)
	Release(url string) bool
}

// Editor edits section content field by field.
type Editor struct {
	store   Store
	schemas *schema.Registry
	images  Images
	logger  *zap.Logger
}

// New creates an Editor. images may be nil when uploads are not supported.
func New(store Store, schemas *schema.Registry, images Images, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{store: store, schemas: schemas, images: images, logger: logger}
}

// Form reads the section with id and validates it for locale.
func (e *Editor) Form(sectionID string, locale domain.Locale) (Form, error) {
	if err := checkLocale(locale); err != nil {
		return Form{}, err
	}
	sec, sch, err := e.load(sectionID)
	if err != nil {
		return Form{}, err
	}
	return BuildForm(sec, sch, locale), nil
}

// ── Localized text ─────────────────────────────────────────

// SetText writes value into the locale slot of a text or textarea field,
// keeping the other locales.
func (e *Editor) SetText(sectionID, key string, locale domain.Locale, value string) error {
	if err := checkLocale(locale); err != nil {
		return err
	}
	sec, fd, err := e.field(sectionID, key, schema.KindText, schema.KindTextarea)
	if err != nil {
		return err
	}
	next := domain.Localized(sec.Data[fd.Key]).With(locale, value)
	return e.write(sectionID, fd.Key, next.Value())
}

// ── Select / switch ────────────────────────────────────────

// SetSelect stores one of the field's declared options.
func (e *Editor) SetSelect(sectionID, key, value string) error {
	_, fd, err := e.field(sectionID, key, schema.KindSelect)
	if err != nil {
		return err
	}
	if !fd.HasOption(value) {
		return fmt.Errorf("%w: %s=%q", ErrUnknownOption, key, value)
	}
	return e.write(sectionID, fd.Key, value)
}

func (e *Editor) SetSwitch(sectionID, key string, on bool) error {
	_, fd, err := e.field(sectionID, key, schema.KindSwitch)
	if err != nil {
		return err
	}
	return e.write(sectionID, fd.Key, on)
}

// ── Chips ──────────────────────────────────────────────────

// AddChip appends a trimmed chip. Blank chips and exact duplicates are
// ignored; it reports whether the list changed.
func (e *Editor) AddChip(sectionID, key, chip string) (bool, error) {
	sec, fd, err := e.field(sectionID, key, schema.KindChips)
	if err != nil {
		return false, err
	}
	chip = strings.TrimSpace(chip)
	list := chips(sec.Data[fd.Key])
	if chip == "" || lo.Contains(list, chip) {
		return false, nil
	}
	return true, e.write(sectionID, fd.Key, append(list, chip))
}

// RemoveChip drops the chip at index. An index out of range changes
// nothing.
func (e *Editor) RemoveChip(sectionID, key string, index int) (bool, error) {
	sec, fd, err := e.field(sectionID, key, schema.KindChips)
	if err != nil {
		return false, err
	}
	list := chips(sec.Data[fd.Key])
	if index < 0 || index >= len(list) {
		return false, nil
	}
	return true, e.write(sectionID, fd.Key, append(list[:index], list[index+1:]...))
}

// SetChips replaces the whole list, trimming and dropping blanks and
// duplicates the same way AddChip does.
func (e *Editor) SetChips(sectionID, key string, values []string) error {
	_, fd, err := e.field(sectionID, key, schema.KindChips)
	if err != nil {
		return err
	}
	list := lo.Uniq(lo.Compact(lo.Map(values, func(s string, _ int) string { return strings.TrimSpace(s) })))
	return e.write(sectionID, fd.Key, list)
}

// ── Images ─────────────────────────────────────────────────

// ReplaceImage stores data as a new transient image for the field. Non-image
// content is rejected with ErrNotImage. The previous reference is released
// and its alt text carried over.
func (e *Editor) ReplaceImage(sectionID, key string, data []byte) (domain.ImageValue, error) {
	if e.images == nil {
		return domain.ImageValue{}, fmt.Errorf("replace image: uploads are disabled")
	}
	sec, fd, err := e.field(sectionID, key, schema.KindImage)
	if err != nil {
		return domain.ImageValue{}, err
	}
	obj, err := e.images.Create(data)
	if err != nil {
		return domain.ImageValue{}, fmt.Errorf("replace image %s: %w", key, err)
	}
	old, hadOld := domain.Image(sec.Data[fd.Key])
	img := domain.ImageValue{ID: uuid.NewString(), URL: obj.URL, Alt: old.Alt}
	if err := e.write(sectionID, fd.Key, img.Value()); err != nil {
		e.images.Release(obj.URL)
		return domain.ImageValue{}, err
	}
	if hadOld {
		e.release(sectionID, key, old.URL)
	}
	return img, nil
}

// SetImageAlt updates the alt text of the current image.
func (e *Editor) SetImageAlt(sectionID, key, alt string) error {
	sec, fd, err := e.field(sectionID, key, schema.KindImage)
	if err != nil {
		return err
	}
	img, ok := domain.Image(sec.Data[fd.Key])
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoImage, key)
	}
	img.Alt = alt
	return e.write(sectionID, fd.Key, img.Value())
}

// RemoveImage clears the field and releases its reference. It reports
// whether there was an image to remove.
func (e *Editor) RemoveImage(sectionID, key string) (bool, error) {
	sec, fd, err := e.field(sectionID, key, schema.KindImage)
	if err != nil {
		return false, err
	}
	old, ok := domain.Image(sec.Data[fd.Key])
	if !ok {
		return false, nil
	}
	if err := e.write(sectionID, fd.Key, nil); err != nil {
		return false, err
	}
	e.release(sectionID, key, old.URL)
	return true, nil
}

// ── Generic dispatch ───────────────────────────────────────

// SetField writes a loosely typed value according to the field's kind. It
// backs callers that do not know the schema up front. Image fields only
// accept nil (remove); uploads go through ReplaceImage.
func (e *Editor) SetField(sectionID, key string, locale domain.Locale, value any) error {
	_, sch, err := e.load(sectionID)
	if err != nil {
		return err
	}
	fd, ok := sch.Field(key)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, sch.Type, key)
	}
	switch fd.Kind {
	case schema.KindText, schema.KindTextarea:
		s, err := cast.ToStringE(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants text: %v", ErrFieldKind, key, err)
		}
		return e.SetText(sectionID, key, locale, s)
	case schema.KindSelect:
		return e.SetSelect(sectionID, key, cast.ToString(value))
	case schema.KindSwitch:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants a boolean: %v", ErrFieldKind, key, err)
		}
		return e.SetSwitch(sectionID, key, b)
	case schema.KindChips:
		list, err := cast.ToStringSliceE(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants a list of strings: %v", ErrFieldKind, key, err)
		}
		return e.SetChips(sectionID, key, list)
	case schema.KindImage:
		if value != nil {
			return fmt.Errorf("%w: %s only accepts null, upload images instead", ErrFieldKind, key)
		}
		_, err := e.RemoveImage(sectionID, key)
		return err
	}
	return fmt.Errorf("%w: %s has kind %q", ErrFieldKind, key, fd.Kind)
}

// ── internals ──────────────────────────────────────────────

func (e *Editor) load(sectionID string) (domain.Section, schema.SectionSchema, error) {
	sec, ok := e.store.Section(sectionID)
	if !ok {
		return domain.Section{}, schema.SectionSchema{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	sch, err := e.schemas.Lookup(sec.Type)
	if err != nil {
		return domain.Section{}, schema.SectionSchema{}, err
	}
	return sec, sch, nil
}

func (e *Editor) field(sectionID, key string, kinds ...schema.FieldKind) (domain.Section, schema.FieldDescriptor, error) {
	sec, sch, err := e.load(sectionID)
	if err != nil {
		return domain.Section{}, schema.FieldDescriptor{}, err
	}
	fd, ok := sch.Field(key)
	if !ok {
		return domain.Section{}, schema.FieldDescriptor{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, sch.Type, key)
	}
	if !lo.Contains(kinds, fd.Kind) {
		return domain.Section{}, schema.FieldDescriptor{}, fmt.Errorf("%w: %s is %s", ErrFieldKind, key, fd.Kind)
	}
	return sec, fd, nil
}

func (e *Editor) write(sectionID, key string, value any) error {
	if !e.store.UpdateSection(sectionID, map[string]any{key: value}) {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	e.logger.Debug("field written", zap.String("section", sectionID), zap.String("field", key))
	return nil
}

func (e *Editor) release(sectionID, key, url string) {
	if e.images != nil && e.images.Release(url) {
		e.logger.Debug("released image", zap.String("section", sectionID), zap.String("field", key))
	}
}

func checkLocale(l domain.Locale) error {
	if !lo.Contains(domain.Locales, l) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownLocale, l)
	}
	return nil
}
