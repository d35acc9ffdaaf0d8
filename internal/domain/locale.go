package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Locale is a supported content language.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleUA Locale = "ua"
	LocaleRU Locale = "ru"
	LocalePL Locale = "pl"
)

// Locales lists every supported locale in display order.
var Locales = []Locale{LocaleEN, LocaleUA, LocaleRU, LocalePL}

var ErrUnknownLocale = errors.New("unknown locale")

// ParseLocale accepts a locale code in any case.
func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case LocaleEN, LocaleUA, LocaleRU, LocalePL:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
}

// LocalizedString holds one translation per supported locale.
// All four slots are always present, possibly empty.
type LocalizedString struct {
	EN string `json:"en"`
	UA string `json:"ua"`
	RU string `json:"ru"`
	PL string `json:"pl"`
}

// Get returns the value for locale, or "" for an unknown locale.
func (s LocalizedString) Get(l Locale) string {
	switch l {
	case LocaleEN:
		return s.EN
	case LocaleUA:
		return s.UA
	case LocaleRU:
		return s.RU
	case LocalePL:
		return s.PL
	}
	return ""
}

// With returns a copy of s with the slot for l replaced.
func (s LocalizedString) With(l Locale, value string) LocalizedString {
	switch l {
	case LocaleEN:
		s.EN = value
	case LocaleUA:
		s.UA = value
	case LocaleRU:
		s.RU = value
	case LocalePL:
		s.PL = value
	}
	return s
}

// Value converts s into the JSON-normal form stored in Section.Data.
func (s LocalizedString) Value() map[string]any {
	return map[string]any{
		string(LocaleEN): s.EN,
		string(LocaleUA): s.UA,
		string(LocaleRU): s.RU,
		string(LocalePL): s.PL,
	}
}

// Localized reads a LocalizedString out of a Section.Data value.
// Missing slots and non-object values read as empty.
func Localized(v any) LocalizedString {
	switch t := v.(type) {
	case LocalizedString:
		return t
	case *LocalizedString:
		if t != nil {
			return *t
		}
	case map[string]any:
		return LocalizedString{
			EN: cast.ToString(t[string(LocaleEN)]),
			UA: cast.ToString(t[string(LocaleUA)]),
			RU: cast.ToString(t[string(LocaleRU)]),
			PL: cast.ToString(t[string(LocalePL)]),
		}
	case map[string]string:
		return LocalizedString{
			EN: t[string(LocaleEN)],
			UA: t[string(LocaleUA)],
			RU: t[string(LocaleRU)],
			PL: t[string(LocalePL)],
		}
	}
	return LocalizedString{}
}

// DeviceView is the preview width selected in the shell.
type DeviceView string

const (
	DeviceDesktop DeviceView = "desktop"
	DeviceTablet  DeviceView = "tablet"
	DeviceMobile  DeviceView = "mobile"
)

// DeviceViews lists the preview widths in toolbar order.
var DeviceViews = []DeviceView{DeviceDesktop, DeviceTablet, DeviceMobile}

var ErrUnknownDeviceView = errors.New("unknown device view")

// ParseDeviceView accepts a device view name in any case.
func ParseDeviceView(s string) (DeviceView, error) {
	v := DeviceView(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case DeviceDesktop, DeviceTablet, DeviceMobile:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDeviceView, s)
}
