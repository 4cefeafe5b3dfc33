package convert

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dangunter/idaes-model-conn/internal/models"
)

// StylePreset overrides individual element style defaults. Unset fields keep
// the fixed upstream values.
type StylePreset struct {
	StrokeColor     *string `yaml:"strokeColor"`
	ArrowColor      *string `yaml:"arrowColor"`
	BackgroundColor *string `yaml:"backgroundColor"`
	FillStyle       *string `yaml:"fillStyle"`
	StrokeWidth     *int    `yaml:"strokeWidth"`
	StrokeStyle     *string `yaml:"strokeStyle"`
	Roughness       *int    `yaml:"roughness"`
	Opacity         *int    `yaml:"opacity"`
	FontFamily      *int    `yaml:"fontFamily"`
}

// LoadStylePreset reads a YAML preset file and applies it over the defaults.
func LoadStylePreset(filePath string) (models.Style, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return models.Style{}, err
	}
	defer file.Close()

	return ParseStylePreset(file)
}

// ParseStylePreset parses a preset from an io.Reader.
func ParseStylePreset(r io.Reader) (models.Style, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Style{}, err
	}

	var preset StylePreset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return models.Style{}, fmt.Errorf("parsing style preset: %w", err)
	}

	return preset.Apply(models.DefaultStyle()), nil
}

// Apply merges the preset's set fields over a base style.
func (p *StylePreset) Apply(base models.Style) models.Style {
	if p.StrokeColor != nil {
		base.StrokeColor = *p.StrokeColor
	}
	if p.ArrowColor != nil {
		base.ArrowColor = *p.ArrowColor
	}
	if p.BackgroundColor != nil {
		base.BackgroundColor = *p.BackgroundColor
	}
	if p.FillStyle != nil {
		base.FillStyle = *p.FillStyle
	}
	if p.StrokeWidth != nil {
		base.StrokeWidth = *p.StrokeWidth
	}
	if p.StrokeStyle != nil {
		base.StrokeStyle = *p.StrokeStyle
	}
	if p.Roughness != nil {
		base.Roughness = *p.Roughness
	}
	if p.Opacity != nil {
		base.Opacity = *p.Opacity
	}
	if p.FontFamily != nil {
		base.FontFamily = *p.FontFamily
	}
	return base
}
