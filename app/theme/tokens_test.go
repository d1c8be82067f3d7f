package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTokens(t *testing.T) {
	assert.Equal(t, VariantDanger, ParseVariant(" Danger "))
	assert.Equal(t, VariantNeutral, ParseVariant("loud"))
	assert.Equal(t, AppearanceGhost, ParseAppearance("ghost"))
	assert.Equal(t, AppearanceFilled, ParseAppearance(""))
	assert.Equal(t, []Paint{PaintBackground, PaintBorder}, ParsePaint("background, glitter border"))
	assert.Nil(t, ParsePaint(""))
}

func TestStyleChannels(t *testing.T) {
	tests := []struct {
		name  string
		paint []Paint
		want  []Paint
	}{
		{name: "nothing enabled", paint: nil, want: nil},
		{name: "single channel", paint: []Paint{PaintForeground}, want: []Paint{PaintForeground}},
		{name: "preset all", paint: []Paint{PaintAll}, want: []Paint{PaintBackground, PaintForeground, PaintBorder}},
		{name: "canonical order", paint: []Paint{PaintBorder, PaintBackground}, want: []Paint{PaintBackground, PaintBorder}},
		{name: "none wins", paint: []Paint{PaintAll, PaintNone}, want: nil},
		{name: "unknown ignored", paint: []Paint{"glitter", PaintBorder}, want: []Paint{PaintBorder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Style{Paint: tt.paint}.Channels())
		})
	}
}

func TestStyleAttributes(t *testing.T) {
	t.Run("full style", func(t *testing.T) {
		s := Style{Variant: VariantPrimary, Appearance: AppearanceOutlined, Paint: []Paint{PaintForeground, PaintBorder}}
		assert.Equal(t, map[string]string{
			"data-variant":    "primary",
			"data-appearance": "outlined",
			"data-paint":      "border foreground",
		}, s.Attributes())
	})

	t.Run("unpainted style omits paint", func(t *testing.T) {
		s := Style{Variant: VariantDanger, Appearance: AppearanceGhost}
		assert.Equal(t, map[string]string{
			"data-variant":    "danger",
			"data-appearance": "ghost",
		}, s.Attributes())
	})

	t.Run("unknown tokens omitted", func(t *testing.T) {
		s := Style{Variant: "loud", Appearance: "shiny"}
		assert.Empty(t, s.Attributes())
	})
}
