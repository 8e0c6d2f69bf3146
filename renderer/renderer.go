package renderer

import (
	"github.com/ByLCY/radialtext/export"
	"github.com/ByLCY/radialtext/preview"
)

// Renderer 将扁平化的轮廓文档输出为最终文件，例如 SVG、PDF 或 PNG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(doc *export.Document) ([]byte, error)
}

// LiveRenderer 输出可编辑的预览文档（文字仍为文本）。
type LiveRenderer interface {
	RenderLive(doc *preview.Document) ([]byte, error)
}
