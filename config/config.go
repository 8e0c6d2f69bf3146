// Package config holds the user-facing settings of a radial text document and
// loads them from .radial or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/radialtext/dsl"
	"github.com/ByLCY/radialtext/export"
	"github.com/ByLCY/radialtext/layout"
	"github.com/ByLCY/radialtext/projection"
)

// Format 是导出格式。
type Format string

const (
	FormatOutlines Format = "outlines" // 扁平化轮廓 SVG
	FormatLive     Format = "live"     // 可编辑 SVG（textPath + 内嵌字体）
	FormatPDF      Format = "pdf"
	FormatPNG      Format = "png"
)

// ParseFormat accepts the format names and a few aliases ("svg" means outlines).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "outlines", "svg", "outline":
		return FormatOutlines, nil
	case "live", "editable", "text":
		return FormatLive, nil
	case "pdf":
		return FormatPDF, nil
	case "png", "raster":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("未知的导出格式 %q", s)
	}
}

// DefaultFileName returns the download name used when the output is a directory.
func (f Format) DefaultFileName() string {
	switch f {
	case FormatLive:
		return "radial_text.svg"
	case FormatPDF:
		return "radial_text.pdf"
	case FormatPNG:
		return "radial_text_screen.png"
	default:
		return "radial_text_outlines.svg"
	}
}

// Settings 对应界面上的全部可调参数，长度为 px，角度为度。
type Settings struct {
	Title         string              `yaml:"title"`
	Words         string              `yaml:"words"` // 逗号分隔
	FontSize      float64             `yaml:"font-size"`
	Radius        float64             `yaml:"radius"`
	Angle         float64             `yaml:"angle"`
	LetterSpacing float64             `yaml:"letter-spacing"`
	Start         float64             `yaml:"start"`
	Rotation      projection.Rotation `yaml:"rotate"`
	Font          string              `yaml:"font"`    // builtin:<name>、文件路径或系统字体名
	Shaping       string              `yaml:"shaping"` // harfbuzz | cmap
	Format        Format              `yaml:"format"`
	Perspective   float64             `yaml:"perspective"`
	DisplayScale  float64             `yaml:"scale"`
	Fill          string              `yaml:"fill"`
}

// Defaults returns the initial settings of a new document.
func Defaults() Settings {
	return Settings{
		Words:        "ALPHA, BETA, GAMMA, DELTA",
		FontSize:     32,
		Radius:       120,
		Font:         DefaultFont,
		Format:       FormatOutlines,
		Perspective:  projection.DefaultPerspective,
		DisplayScale: 1,
		Fill:         export.DefaultFill,
	}
}

// DefaultFont is the font source of a new document.
const DefaultFont = "builtin:go-regular"

// Layout returns the layout configuration described by s.
func (s Settings) Layout() layout.Config {
	return layout.Config{
		Words:         layout.ParseWords(s.Words),
		FontSize:      s.FontSize,
		Radius:        s.Radius,
		AngleOffset:   s.Angle,
		LetterSpacing: s.LetterSpacing,
		StartOffset:   s.Start,
	}
}

// Load 根据扩展名读取 .radial 或 YAML 文件，未出现的字段保留默认值。
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	case ".radial", "":
		doc, err := dsl.ParseString(string(data))
		if err != nil {
			return Settings{}, fmt.Errorf("解析 DSL 失败: %w", err)
		}
		return FromDocument(doc)
	default:
		return Settings{}, fmt.Errorf("不支持的配置文件类型 %s", path)
	}
}

// LoadYAML decodes YAML settings on top of Defaults.
func LoadYAML(data []byte) (Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("解析 YAML 配置失败: %w", err)
	}
	f, err := ParseFormat(string(s.Format))
	if err != nil {
		return Settings{}, err
	}
	s.Format = f
	if _, err := fill(s.Fill); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// EncodeYAML writes s as YAML, the inverse of LoadYAML.
func (s Settings) EncodeYAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("序列化 YAML 配置失败: %w", err)
	}
	return data, nil
}
