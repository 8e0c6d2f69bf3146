package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/radialtext/dsl"
	"github.com/ByLCY/radialtext/export"
	"github.com/ByLCY/radialtext/layout"
)

// FromDocument 将 .radial 文档的各节映射到 Settings，未出现的字段保留默认值。
func FromDocument(doc *dsl.Document) (Settings, error) {
	s := Defaults()
	if doc == nil {
		return s, nil
	}
	s.Title = doc.Name

	for _, sec := range doc.Sections {
		block := sec.Block()
		if block == nil {
			continue
		}
		for _, st := range block.Statements {
			if err := s.apply(sec.Kind(), st.Key, st.Value); err != nil {
				return Settings{}, fmt.Errorf("第 %d 行 %s.%s: %w", st.Pos.Line, sec.Kind(), st.Key, err)
			}
		}
	}
	return s, nil
}

func (s *Settings) apply(section, key string, v *dsl.Value) error {
	raw := v.Text()
	var err error
	switch section + "." + key {
	case "layout.words":
		s.Words = raw
	case "layout.font-size":
		s.FontSize, err = length(raw)
	case "layout.radius":
		s.Radius, err = length(raw)
	case "layout.angle":
		s.Angle, err = angle(raw)
	case "layout.letter-spacing":
		s.LetterSpacing, err = length(raw)
	case "layout.start":
		s.Start, err = length(raw)
	case "rotate.x":
		s.Rotation.X, err = angle(raw)
	case "rotate.y":
		s.Rotation.Y, err = angle(raw)
	case "rotate.z":
		s.Rotation.Z, err = angle(raw)
	case "font.src":
		s.Font = raw
	case "font.shaping":
		s.Shaping = raw
	case "export.format":
		s.Format, err = ParseFormat(raw)
	case "export.perspective":
		s.Perspective, err = length(raw)
	case "export.scale":
		s.DisplayScale, err = parseScale(raw)
	case "export.fill":
		s.Fill, err = fill(raw)
	case "export.title":
		s.Title = raw
	default:
		return fmt.Errorf("未知的设置项")
	}
	return err
}

func length(s string) (float64, error) {
	v, ok := layout.ParseLength(s)
	if !ok {
		return 0, fmt.Errorf("无效的长度 %q", s)
	}
	return v, nil
}

func angle(s string) (float64, error) {
	v, ok := layout.ParseAngle(s)
	if !ok {
		return 0, fmt.Errorf("无效的角度 %q", s)
	}
	return v, nil
}

// fill 校验填充色，使 PDF/PNG 与 SVG 呈现相同的颜色。
func fill(s string) (string, error) {
	if _, err := export.ParseFill(s); err != nil {
		return "", err
	}
	return s, nil
}

// parseScale accepts "2", "2x" or "200%".
func parseScale(s string) (float64, error) {
	s = strings.TrimSpace(s)
	div := 1.0
	switch {
	case strings.HasSuffix(s, "x"):
		s = strings.TrimSuffix(s, "x")
	case strings.HasSuffix(s, "%"):
		s = strings.TrimSuffix(s, "%")
		div = 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("无效的缩放值 %q: %w", s, err)
	}
	return v / div, nil
}
