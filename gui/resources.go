package gui

import (
	"fmt"
	"image/color"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Fixed resource names of the default style and control definitions
const (
	DefaultStyleFile   = "default-styles.yaml"
	DefaultControlFile = "default-controls.yaml"
)

// Style holds the visual attributes elements refer to by name
type Style struct {
	Font       string `yaml:"font"`
	Scale      int    `yaml:"scale"`
	Color      string `yaml:"color"`
	Background string `yaml:"background"`
	Hover      string `yaml:"hover"`
	Pressed    string `yaml:"pressed"`
}

// ControlDef describes how a control type is drawn and sized
type ControlDef struct {
	Style   string `yaml:"style"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Padding int    `yaml:"padding"`
}

type styleFile struct {
	Styles map[string]Style `yaml:"styles"`
}

type controlFile struct {
	Controls map[string]ControlDef `yaml:"controls"`
}

// resolvedStyle is a Style with its colours parsed
type resolvedStyle struct {
	scale      int
	color      color.NRGBA
	background color.NRGBA
	hover      color.NRGBA
	pressed    color.NRGBA
}

// LoadStyleFile reads named styles from a YAML resource. Later files
// override earlier styles with the same name.
func (g *GUI) LoadStyleFile(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read style file: %w", err)
	}
	var file styleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse style file %s: %w", name, err)
	}
	for styleName, style := range file.Styles {
		resolved, err := resolveStyle(style)
		if err != nil {
			return fmt.Errorf("style %q in %s: %w", styleName, name, err)
		}
		g.styles[styleName] = resolved
	}
	return nil
}

// LoadControlFile reads control definitions from a YAML resource
func (g *GUI) LoadControlFile(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read control file: %w", err)
	}
	var file controlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse control file %s: %w", name, err)
	}
	for controlName, def := range file.Controls {
		if def.Width < 0 || def.Height < 0 || def.Padding < 0 {
			return fmt.Errorf("control %q in %s: negative size", controlName, name)
		}
		g.controls[controlName] = def
	}
	return nil
}

func resolveStyle(s Style) (resolvedStyle, error) {
	if s.Font != "" && s.Font != "7x13" {
		return resolvedStyle{}, fmt.Errorf("unknown font %q", s.Font)
	}
	r := resolvedStyle{scale: s.Scale}
	if r.scale <= 0 {
		r.scale = 1
	}

	colors := []struct {
		value    string
		fallback string
		dst      *color.NRGBA
	}{
		{s.Color, "#000f", &r.color},
		{s.Background, "#0000", &r.background},
		{s.Hover, s.Background, &r.hover},
		{s.Pressed, s.Background, &r.pressed},
	}
	for _, c := range colors {
		value := c.value
		if value == "" {
			value = c.fallback
		}
		if value == "" {
			value = "#0000"
		}
		parsed, err := ParseColor(value)
		if err != nil {
			return resolvedStyle{}, err
		}
		*c.dst = parsed
	}
	return r, nil
}
