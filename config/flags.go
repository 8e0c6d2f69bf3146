package config

import (
	"flag"
	"strings"

	"github.com/ByLCY/radialtext/fonts"
)

// Flags 把命令行参数绑定到 Settings。只有显式传入的参数才会覆盖文件中的值。
type Flags struct {
	fs     *flag.FlagSet
	v      Settings
	format string
}

// BindFlags registers the settings flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Defaults()
	fs.StringVar(&f.v.Title, "title", "", "文档标题")
	fs.StringVar(&f.v.Words, "words", d.Words, "逗号分隔的单词")
	fs.Float64Var(&f.v.FontSize, "font-size", d.FontSize, "字号 px")
	fs.Float64Var(&f.v.Radius, "radius", d.Radius, "半径 px，可为负")
	fs.Float64Var(&f.v.Angle, "angle", d.Angle, "起始角度（度）")
	fs.Float64Var(&f.v.LetterSpacing, "letter-spacing", d.LetterSpacing, "字间距 px")
	fs.Float64Var(&f.v.Start, "start", d.Start, "起始偏移 px")
	fs.Float64Var(&f.v.Rotation.X, "rot-x", 0, "绕 X 轴旋转（度）")
	fs.Float64Var(&f.v.Rotation.Y, "rot-y", 0, "绕 Y 轴旋转（度）")
	fs.Float64Var(&f.v.Rotation.Z, "rot-z", 0, "绕 Z 轴旋转（度）")
	fs.StringVar(&f.v.Font, "font", d.Font,
		"字体：builtin:<name>（"+strings.Join(fonts.BuiltinNames(), ", ")+"）、文件路径或系统字体名")
	fs.StringVar(&f.v.Shaping, "shaping", "", "整形方式：harfbuzz | cmap")
	fs.StringVar(&f.format, "format", string(d.Format), "导出格式：outlines | live | pdf | png")
	fs.Float64Var(&f.v.Perspective, "perspective", d.Perspective, "透视距离 px")
	fs.Float64Var(&f.v.DisplayScale, "scale", d.DisplayScale, "预览显示缩放（渲染宽度 / 1200）")
	fs.StringVar(&f.v.Fill, "fill", d.Fill, "轮廓填充色")
	return f
}

// Apply copies every flag that was set on the command line into s.
func (f *Flags) Apply(s *Settings) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "title":
			s.Title = f.v.Title
		case "words":
			s.Words = f.v.Words
		case "font-size":
			s.FontSize = f.v.FontSize
		case "radius":
			s.Radius = f.v.Radius
		case "angle":
			s.Angle = f.v.Angle
		case "letter-spacing":
			s.LetterSpacing = f.v.LetterSpacing
		case "start":
			s.Start = f.v.Start
		case "rot-x":
			s.Rotation.X = f.v.Rotation.X
		case "rot-y":
			s.Rotation.Y = f.v.Rotation.Y
		case "rot-z":
			s.Rotation.Z = f.v.Rotation.Z
		case "font":
			s.Font = f.v.Font
		case "shaping":
			s.Shaping = f.v.Shaping
		case "format":
			format, ferr := ParseFormat(f.format)
			if ferr != nil {
				err = ferr
				return
			}
			s.Format = format
		case "perspective":
			s.Perspective = f.v.Perspective
		case "scale":
			s.DisplayScale = f.v.DisplayScale
		case "fill":
			v, ferr := fill(f.v.Fill)
			if ferr != nil {
				err = ferr
				return
			}
			s.Fill = v
		}
	})
	return err
}
