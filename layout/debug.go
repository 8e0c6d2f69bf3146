package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// DebugDump 是调试 JSON 的顶层结构：输入参数与每个 spoke 的笔位置。
type DebugDump struct {
	Config     Config  `json:"config"`
	Scale      float64 `json:"scale"`
	GlyphCount int     `json:"glyphCount"`
	Spokes     []Spoke `json:"spokes"`
}

// WriteDebugJSON 将布局输入与结果输出为 JSON，便于对照预览排查字形位置。
func WriteDebugJSON(cfg Config, res *Result, path string) error {
	if res == nil {
		return fmt.Errorf("layout: 没有可输出的布局结果")
	}
	dump := DebugDump{
		Config:     cfg,
		Scale:      res.Scale,
		GlyphCount: res.GlyphCount(),
		Spokes:     res.Spokes,
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
