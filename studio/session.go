// Package studio holds the editing session: the current settings, the loaded
// font and the live preview, plus the export commands that snapshot them.
package studio

import (
	"context"
	"fmt"
	"sync"

	"github.com/ByLCY/radialtext/config"
	"github.com/ByLCY/radialtext/export"
	"github.com/ByLCY/radialtext/fonts"
	"github.com/ByLCY/radialtext/glyphs"
	"github.com/ByLCY/radialtext/layout"
	"github.com/ByLCY/radialtext/logging"
	"github.com/ByLCY/radialtext/preview"
	"github.com/ByLCY/radialtext/projection"
	"github.com/ByLCY/radialtext/renderer"
	canvasrenderer "github.com/ByLCY/radialtext/renderer/canvas"
	svgrenderer "github.com/ByLCY/radialtext/renderer/svg"
)

// Event 标识一次状态变化。
type Event int

const (
	// EventPreview: 布局参数或字体变化，预览已重建。
	EventPreview Event = iota + 1
	// EventTransform: 只有旋转变化，预览结构不变，仅更新表面变换。
	EventTransform
)

func (e Event) String() string {
	switch e {
	case EventPreview:
		return "preview"
	case EventTransform:
		return "transform"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Listener is notified after each change, outside the session lock.
type Listener func(Event, *preview.Document)

// Session 是单个编辑会话。方法可并发调用。
type Session struct {
	mu        sync.Mutex
	settings  config.Settings
	doc       *preview.Document
	listeners []Listener

	baseDir   string
	loader    *fonts.Loader
	slot      fonts.Slot
	renderers map[config.Format]renderer.Renderer // 轮廓文档的各输出格式
	live      renderer.LiveRenderer
}

// Option configures a Session.
type Option func(*Session)

// WithBaseDir resolves relative font paths against dir.
func WithBaseDir(dir string) Option {
	return func(s *Session) { s.baseDir = dir }
}

// WithCanvasRenderer replaces the PDF/PNG renderer.
func WithCanvasRenderer(r *canvasrenderer.Renderer) Option {
	return func(s *Session) {
		s.renderers[config.FormatPDF] = r
		s.renderers[config.FormatPNG] = r.PNGRenderer()
	}
}

// NewSession creates a session. An unknown shaping name falls back to HarfBuzz
// with a warning.
func NewSession(settings config.Settings, opts ...Option) *Session {
	shaping, err := glyphs.ParseShaping(settings.Shaping)
	if err != nil {
		logging.Logger().Warn("unknown shaping, using harfbuzz", "shaping", settings.Shaping)
	}
	s := &Session{
		settings: settings,
		loader:   fonts.NewLoader(glyphs.WithShaping(shaping)),
		live:     svgrenderer.Renderer{},
	}
	canvas := canvasrenderer.NewRenderer()
	s.renderers = map[config.Format]renderer.Renderer{
		config.FormatOutlines: svgrenderer.Renderer{},
		config.FormatPDF:      canvas,
		config.FormatPNG:      canvas.PNGRenderer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = s.buildPreview()
	return s
}

// Subscribe registers l for change notifications.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Settings returns a snapshot of the current settings.
func (s *Session) Settings() config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Font returns the installed font asset, or nil.
func (s *Session) Font() *fonts.Asset { return s.slot.Current() }

// Preview returns the current live preview document.
func (s *Session) Preview() *preview.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// SetWords sets the comma separated word list.
func (s *Session) SetWords(words string) { s.updateLayout(func(c *config.Settings) { c.Words = words }) }

// SetFontSize sets the font size in px.
func (s *Session) SetFontSize(v float64) { s.updateLayout(func(c *config.Settings) { c.FontSize = v }) }

// SetRadius sets the spoke radius in px.
func (s *Session) SetRadius(v float64) { s.updateLayout(func(c *config.Settings) { c.Radius = v }) }

// SetAngle sets the angle offset in degrees.
func (s *Session) SetAngle(v float64) { s.updateLayout(func(c *config.Settings) { c.Angle = v }) }

// SetLetterSpacing sets the letter spacing in px.
func (s *Session) SetLetterSpacing(v float64) {
	s.updateLayout(func(c *config.Settings) { c.LetterSpacing = v })
}

// SetStart sets the start offset in px.
func (s *Session) SetStart(v float64) { s.updateLayout(func(c *config.Settings) { c.Start = v }) }

// SetRotationX sets the rotation about X in degrees.
func (s *Session) SetRotationX(v float64) { s.updateRotation(func(r *projection.Rotation) { r.X = v }) }

// SetRotationY sets the rotation about Y in degrees.
func (s *Session) SetRotationY(v float64) { s.updateRotation(func(r *projection.Rotation) { r.Y = v }) }

// SetRotationZ sets the rotation about Z in degrees.
func (s *Session) SetRotationZ(v float64) { s.updateRotation(func(r *projection.Rotation) { r.Z = v }) }

// ResetRotation sets all three rotations to 0.
func (s *Session) ResetRotation() {
	s.updateRotation(func(r *projection.Rotation) { *r = projection.Rotation{} })
}

func (s *Session) updateLayout(fn func(*config.Settings)) {
	s.mu.Lock()
	fn(&s.settings)
	s.doc = s.buildPreview()
	doc, ls := s.doc, s.listenersLocked()
	s.mu.Unlock()
	notify(ls, EventPreview, doc)
}

func (s *Session) updateRotation(fn func(*projection.Rotation)) {
	s.mu.Lock()
	fn(&s.settings.Rotation)
	s.doc = s.doc.WithRotation(s.settings.Perspective, s.settings.Rotation)
	doc, ls := s.doc, s.listenersLocked()
	s.mu.Unlock()
	notify(ls, EventTransform, doc)
}

// buildPreview 需持有 s.mu。
func (s *Session) buildPreview() *preview.Document {
	doc := preview.Build(s.settings.Layout(), s.slot.Current(), preview.DefaultOptions())
	return doc.WithRotation(s.settings.Perspective, s.settings.Rotation)
}

func (s *Session) listenersLocked() []Listener {
	return append([]Listener(nil), s.listeners...)
}

func notify(ls []Listener, e Event, doc *preview.Document) {
	for _, l := range ls {
		l(e, doc)
	}
}

// LoadFont 异步解析字体并在成功后安装到会话中。后开始的加载优先：较早开始的加载
// 即使较晚完成也不会覆盖它。
//
// 轮廓解析失败时字体仍会安装（用于预览嵌入），同时返回该资源和解析错误；此时轮廓
// 导出会报告 export.ErrNoFont。被更晚开始的加载取代时返回该资源和
// fonts.ErrSuperseded，资源未安装。其他错误不改变当前字体。
func (s *Session) LoadFont(ctx context.Context, name string, data []byte) (*fonts.Asset, error) {
	return s.install(ctx, s.loader.Load(ctx, name, data))
}

// LoadFontSource resolves src (builtin:, file path or system font) and loads it.
func (s *Session) LoadFontSource(ctx context.Context, src string) (*fonts.Asset, error) {
	p, err := s.loader.LoadSource(ctx, src, s.baseDir)
	if err != nil {
		logging.Logger().Warn("font load failed", "src", src, "error", err)
		return nil, err
	}
	return s.install(ctx, p)
}

func (s *Session) install(ctx context.Context, p fonts.Promise) (*fonts.Asset, error) {
	asset, err := p.Await(ctx)
	if err != nil {
		logging.Logger().Warn("font load failed", "seq", p.Seq(), "error", err)
		return nil, err
	}
	if !s.slot.Install(p.Seq(), asset) {
		logging.Logger().Debug("font load superseded", "family", asset.Family)
		return asset, fonts.ErrSuperseded
	}
	logging.Logger().Info("font loaded", "family", asset.Family, "name", asset.Name, "outlines", asset.HasOutlines())

	s.mu.Lock()
	s.doc = s.buildPreview()
	doc, ls := s.doc, s.listenersLocked()
	s.mu.Unlock()
	notify(ls, EventPreview, doc)

	if asset.ParseErr != nil {
		logging.Logger().Warn("font outlines unavailable", "name", asset.Name, "error", asset.ParseErr)
		return asset, asset.ParseErr
	}
	return asset, nil
}

// Request 在调用时刻对设置和字体做快照。进行中的字体加载不会阻塞导出。
func (s *Session) Request() export.Request {
	st := s.Settings()
	req := export.NewRequest(st.Layout(), st.Rotation, s.slot.Current())
	req.Perspective = st.Perspective
	req.DisplayScale = st.DisplayScale
	req.Title = st.Title
	if st.Fill != "" {
		req.Fill = st.Fill
	}
	return req
}

// LayoutResult computes the layout with the installed font.
func (s *Session) LayoutResult() (*layout.Result, error) {
	font := s.slot.Current()
	if !font.HasOutlines() {
		return nil, export.ErrNoFont
	}
	return layout.Build(s.Settings().Layout(), layout.BuildOptions{Glyphs: font.Font})
}

// ExportOutlines returns the flattened outline SVG.
func (s *Session) ExportOutlines() ([]byte, error) { return s.Export(config.FormatOutlines) }

// ExportLive returns the editable SVG with the font embedded.
func (s *Session) ExportLive() ([]byte, error) { return s.Export(config.FormatLive) }

// ExportPDF returns the flattened outlines as a PDF page.
func (s *Session) ExportPDF() ([]byte, error) { return s.Export(config.FormatPDF) }

// ExportPNG rasterizes the flattened outlines.
func (s *Session) ExportPNG() ([]byte, error) { return s.Export(config.FormatPNG) }

// Export renders the current state in format. The live format serializes the
// preview; every other format flattens the outlines first.
func (s *Session) Export(format config.Format) ([]byte, error) {
	if format == "" {
		format = config.FormatOutlines
	}
	if format == config.FormatLive {
		return s.live.RenderLive(s.Preview())
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("未知的导出格式 %q", format)
	}
	doc, err := export.Outlines(s.Request())
	if err != nil {
		return nil, err
	}
	return r.Render(doc)
}
