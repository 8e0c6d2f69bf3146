package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/vector"

	"github.com/ByLCY/radialtext/export"
	"github.com/ByLCY/radialtext/layout"
	"github.com/ByLCY/radialtext/logging"
	"github.com/ByLCY/radialtext/renderer"
)

// DefaultPixelRatio is the PNG device pixel ratio.
const DefaultPixelRatio = 2

// ErrRasterFailed is returned when neither raster path produced an image.
var ErrRasterFailed = errors.New("canvasrenderer: 无法生成位图")

// Renderer draws flattened outline documents via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options

	// 位图生成的两级策略，测试中可替换
	primary  rasterFunc
	fallback rasterFunc
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	PixelRatio float64     // PNG 像素比，≤0 时取 DefaultPixelRatio
	Background color.Color // PNG 背景，nil 为透明
	// PDF 文档信息
	Subject, Author, Creator string
}

type rasterFunc func(doc *export.Document, ratio float64) (image.Image, error)

// NewRenderer creates a renderer with default options.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with the given options.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.PixelRatio <= 0 {
		opts.PixelRatio = DefaultPixelRatio
	}
	return &Renderer{
		opts:     opts,
		primary:  rasterizeCanvas,
		fallback: rasterizeVector,
	}
}

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *export.Document) ([]byte, error) { return r.PDF(doc) }

// PDF 以 viewBox 大小（px 转 mm）生成单页 PDF。
func (r *Renderer) PDF(doc *export.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染文档为空")
	}
	vb, err := ParseViewBox(doc.ViewBox)
	if err != nil {
		return nil, err
	}
	c := drawCanvas(doc, vb)

	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	writer.SetInfo(doc.Title, r.opts.Subject, "", r.opts.Author, r.opts.Creator)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// PNG 光栅化文档。先使用 canvas 光栅器，失败时改用 x/image/vector；两者都失败时
// 返回 ErrRasterFailed。矢量导出不受影响。
func (r *Renderer) PNG(doc *export.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染文档为空")
	}
	img, err := r.primary(doc, r.opts.PixelRatio)
	if err != nil {
		logging.Logger().Warn("canvas rasterizer failed, falling back", "error", err)
		img, err = r.fallback(doc, r.opts.PixelRatio)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRasterFailed, err)
		}
	}
	if r.opts.Background != nil {
		img = flatten(img, r.opts.Background)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// PNGRenderer adapts PNG to renderer.Renderer.
func (r *Renderer) PNGRenderer() renderer.Renderer { return pngRenderer{r} }

type pngRenderer struct{ r *Renderer }

func (p pngRenderer) Render(doc *export.Document) ([]byte, error) { return p.r.PNG(doc) }

// ViewBox 是 SVG viewBox 的四个数值（px）。
type ViewBox struct {
	X, Y, W, H float64
}

// ParseViewBox parses "minX minY width height"; commas are accepted as separators.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("无效的 viewBox %q", s)
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("无效的 viewBox %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return ViewBox{}, fmt.Errorf("viewBox %q 的宽高必须为正", s)
	}
	return ViewBox{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

// drawCanvas 在 mm 画布上绘制所有形状，左上角对应 viewBox 的 (X, Y)。
func drawCanvas(doc *export.Document, vb ViewBox) *canvas.Canvas {
	c := canvas.New(toMm(vb.W), toMm(vb.H))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与 SVG 一致，y 轴向下
	ctx.SetStrokeColor(canvas.Transparent)
	view := canvas.Identity.Scale(layout.PxToMm, layout.PxToMm).Translate(-vb.X, -vb.Y)
	for _, s := range doc.Shapes {
		if s.Path == nil || s.Path.Empty() {
			continue
		}
		ctx.SetFillColor(fillColor(s.Fill))
		// Transform 会原地修改路径，文档中的路径保持不变
		ctx.DrawPath(0, 0, s.Path.Copy().Transform(view))
	}
	return c
}

func rasterizeCanvas(doc *export.Document, ratio float64) (img image.Image, err error) {
	vb, err := ParseViewBox(doc.ViewBox)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			img, err = nil, fmt.Errorf("canvas rasterizer: %v", rec)
		}
	}()
	c := drawCanvas(doc, vb)
	// 每 mm 的像素数 = ratio · (px/mm)
	out := rasterizer.Draw(c, canvas.DPMM(ratio*layout.MmToPx), canvas.DefaultColorSpace)
	if out == nil {
		return nil, fmt.Errorf("canvas rasterizer 未返回图像")
	}
	return out, nil
}

// rasterizeVector 直接用 x/image/vector 逐个填充路径，曲线由光栅器自行细分。
func rasterizeVector(doc *export.Document, ratio float64) (image.Image, error) {
	vb, err := ParseViewBox(doc.ViewBox)
	if err != nil {
		return nil, err
	}
	w := int(math.Ceil(vb.W * ratio))
	h := int(math.Ceil(vb.H * ratio))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	z := vector.NewRasterizer(w, h)
	pt := func(q canvas.Point) (float32, float32) {
		return float32((q.X - vb.X) * ratio), float32((q.Y - vb.Y) * ratio)
	}
	for _, s := range doc.Shapes {
		if s.Path == nil || s.Path.Empty() {
			continue
		}
		z.Reset(w, h)
		for sc := s.Path.Scanner(); sc.Scan(); {
			switch sc.Cmd() {
			case canvas.MoveToCmd:
				z.MoveTo(pt(sc.End()))
			case canvas.LineToCmd, canvas.ArcToCmd:
				z.LineTo(pt(sc.End()))
			case canvas.QuadToCmd:
				bx, by := pt(sc.CP1())
				cx, cy := pt(sc.End())
				z.QuadTo(bx, by, cx, cy)
			case canvas.CubeToCmd:
				bx, by := pt(sc.CP1())
				cx, cy := pt(sc.CP2())
				dx, dy := pt(sc.End())
				z.CubeTo(bx, by, cx, cy, dx, dy)
			case canvas.CloseCmd:
				z.ClosePath()
			}
		}
		z.Draw(dst, dst.Bounds(), image.NewUniform(fillColor(s.Fill)), image.Point{})
	}
	return dst, nil
}

func flatten(img image.Image, bg color.Color) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

func fillColor(s string) color.Color {
	c, err := export.ParseFill(s)
	if err != nil {
		logging.Logger().Warn("unsupported fill, using default", "fill", s, "error", err)
		c, _ = export.ParseFill(export.DefaultFill)
	}
	return c
}

// toMm converts px (96 dpi) to mm.
func toMm(px float64) float64 { return px * layout.PxToMm }
