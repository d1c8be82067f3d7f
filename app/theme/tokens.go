// Package theme maps component styling props to the data attributes the
// stylesheet selects on.
package theme

import (
	"sort"
	"strings"
)

// Variant is the semantic color intent of a component.
type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantNeutral   Variant = "neutral"
	VariantSuccess   Variant = "success"
	VariantWarning   Variant = "warning"
	VariantDanger    Variant = "danger"
	VariantInfo      Variant = "info"
)

// Appearance is the visual treatment applied to a variant.
type Appearance string

const (
	AppearanceFilled   Appearance = "filled"
	AppearanceOutlined Appearance = "outlined"
	AppearanceGhost    Appearance = "ghost"
	AppearanceTonal    Appearance = "tonal"
)

// Paint names a channel, or a preset of channels, that prepared tokens are
// allowed to color.
type Paint string

const (
	PaintBackground Paint = "background"
	PaintForeground Paint = "foreground"
	PaintBorder     Paint = "border"
	PaintAll        Paint = "all"
	PaintNone       Paint = "none"
)

var channels = []Paint{PaintBackground, PaintForeground, PaintBorder}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantPrimary, VariantSecondary, VariantNeutral, VariantSuccess,
		VariantWarning, VariantDanger, VariantInfo:
		return true
	}
	return false
}

// Valid reports whether a is a known appearance.
func (a Appearance) Valid() bool {
	switch a {
	case AppearanceFilled, AppearanceOutlined, AppearanceGhost, AppearanceTonal:
		return true
	}
	return false
}

// Valid reports whether p is a known channel or preset.
func (p Paint) Valid() bool {
	switch p {
	case PaintBackground, PaintForeground, PaintBorder, PaintAll, PaintNone:
		return true
	}
	return false
}

// ParseVariant returns the variant named by s, or VariantNeutral.
func ParseVariant(s string) Variant {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return VariantNeutral
	}
	return v
}

// ParseAppearance returns the appearance named by s, or AppearanceFilled.
func ParseAppearance(s string) Appearance {
	a := Appearance(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return AppearanceFilled
	}
	return a
}

// ParsePaint splits a space or comma separated list into paints, dropping
// unknown entries.
func ParsePaint(s string) []Paint {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ' '
	})
	var out []Paint
	for _, f := range fields {
		if p := Paint(f); p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

// Style is the full set of styling props a component accepts.
type Style struct {
	Variant    Variant
	Appearance Appearance
	Paint      []Paint
}

// Channels expands presets and returns the enabled channels in canonical
// order. PaintNone wins over everything else.
func (s Style) Channels() []Paint {
	enabled := make(map[Paint]bool, len(channels))
	for _, p := range s.Paint {
		switch p {
		case PaintNone:
			return nil
		case PaintAll:
			for _, c := range channels {
				enabled[c] = true
			}
		case PaintBackground, PaintForeground, PaintBorder:
			enabled[p] = true
		}
	}

	var out []Paint
	for _, c := range channels {
		if enabled[c] {
			out = append(out, c)
		}
	}
	return out
}

// Attributes returns the data attributes describing s. Unset or unknown
// tokens are omitted; the paint attribute is present only when at least one
// channel is enabled.
func (s Style) Attributes() map[string]string {
	props := map[string]any{}
	if s.Variant.Valid() {
		props["variant"] = string(s.Variant)
	}
	if s.Appearance.Valid() {
		props["appearance"] = string(s.Appearance)
	}
	if ch := s.Channels(); len(ch) > 0 {
		names := make([]string, len(ch))
		for i, c := range ch {
			names[i] = string(c)
		}
		sort.Strings(names)
		props["paint"] = strings.Join(names, " ")
	}
	return DataAttributes(props)
}
