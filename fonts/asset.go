// Package fonts turns font binaries into assets usable by both the live
// preview (embedded as data URLs) and the outline export (parsed glyphs).
package fonts

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/radialtext/glyphs"
	"github.com/ByLCY/radialtext/logging"
)

var (
	// ErrUnknownFont is returned when a font source cannot be resolved.
	ErrUnknownFont = errors.New("fonts: 未知字体")
	// ErrSuperseded is returned for a load that finished after a later-started
	// load was installed; its asset is not installed.
	ErrSuperseded = errors.New("fonts: 已被较新的加载取代")
)

// Asset 是一次成功加载的字体。Font 为 nil 表示轮廓解析失败，此时字体仍可嵌入预览，
// 但无法导出轮廓。
type Asset struct {
	Family string       `json:"family"` // UserFont_<n>
	Name   string       `json:"name"`   // 原始文件名
	MIME   string       `json:"mime"`
	Data   []byte       `json:"-"`
	Base64 string       `json:"-"`
	Font   *glyphs.Font `json:"-"`
	// ParseErr 记录轮廓解析失败的原因。
	ParseErr error `json:"-"`
}

// MIMEForName maps a file extension to a font MIME type.
func MIMEForName(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "otf":
		return "font/otf"
	case "ttf":
		return "font/ttf"
	case "woff":
		return "font/woff"
	case "woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}

// Format returns the CSS @font-face format hint, the MIME subtype.
func (a *Asset) Format() string {
	if a == nil {
		return ""
	}
	if i := strings.LastIndex(a.MIME, "/"); i >= 0 {
		return a.MIME[i+1:]
	}
	return a.MIME
}

// HasOutlines reports whether the asset can be used for outline export.
func (a *Asset) HasOutlines() bool { return a != nil && a.Font != nil }

// DataURL returns "data:<mime>;base64,<data>".
func (a *Asset) DataURL() string {
	if a == nil {
		return ""
	}
	return "data:" + a.MIME + ";base64," + a.Base64
}

// NewAsset builds an asset for family from raw bytes. Outline parsing errors are
// kept in ParseErr and do not fail the asset.
func NewAsset(family, name string, data []byte, opts ...glyphs.Option) *Asset {
	a := &Asset{
		Family: family,
		Name:   name,
		MIME:   MIMEForName(name),
		Data:   data,
		Base64: base64.StdEncoding.EncodeToString(data),
	}
	f, err := glyphs.Parse(data, opts...)
	if err != nil {
		a.ParseErr = fmt.Errorf("fonts: 无法解析 %s 的轮廓: %w", name, err)
		return a
	}
	a.Font = f
	logging.Logger().Debug("parsed font", "family", family, "file", name, "name", f.Name())
	return a
}
