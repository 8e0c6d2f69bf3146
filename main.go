package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/radialtext/binding"
	"github.com/ByLCY/radialtext/config"
	"github.com/ByLCY/radialtext/layout"
	"github.com/ByLCY/radialtext/logging"
	canvasrenderer "github.com/ByLCY/radialtext/renderer/canvas"
	"github.com/ByLCY/radialtext/studio"
)

func main() {
	configPath := flag.String("config", "", ".radial 或 YAML 配置文件路径")
	output := flag.String("out", "output", "输出文件路径；为目录时使用默认文件名")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	verbose := flag.Bool("v", false, "在 stderr 输出日志")
	dataJSON := flag.String("data", "", "填入单词中 ${...} 占位符的 JSON 数据")
	overrides := config.BindFlags(flag.CommandLine)
	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	settings, baseDir, err := loadSettings(*configPath, overrides)
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	settings.Words = binding.Words(settings.Words, inputData)
	path, err := run(context.Background(), settings, baseDir, *output, *debug)
	if err != nil {
		log.Fatalf("导出失败: %v", err)
	}
	fmt.Printf("已生成 %s：%s\n", settings.Format, path)
}

// loadSettings 读取配置文件（可选），再用显式传入的命令行参数覆盖。
func loadSettings(path string, overrides *config.Flags) (config.Settings, string, error) {
	settings := config.Defaults()
	baseDir := "."
	if path != "" {
		s, err := config.Load(path)
		if err != nil {
			return config.Settings{}, "", err
		}
		settings = s
		baseDir = filepath.Dir(path)
	}
	if err := overrides.Apply(&settings); err != nil {
		return config.Settings{}, "", err
	}
	return settings, baseDir, nil
}

// run 串联字体加载、布局、导出与写文件，返回实际写入的路径。
func run(ctx context.Context, settings config.Settings, baseDir, outputPath, debugPath string) (string, error) {
	session := studio.NewSession(settings,
		studio.WithBaseDir(baseDir),
		studio.WithCanvasRenderer(canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Creator: "radialtext"})),
	)
	if _, err := session.LoadFontSource(ctx, settings.Font); err != nil {
		// 可编辑 SVG 在没有可用轮廓时仍可输出（回退到通用字体族）
		if settings.Format != config.FormatLive {
			return "", fmt.Errorf("加载字体 %s 失败: %w", settings.Font, err)
		}
		logging.Logger().Warn("continuing without font outlines", "font", settings.Font, "error", err)
	}

	if debugPath != "" {
		result, err := session.LayoutResult()
		if err != nil {
			return "", fmt.Errorf("布局计算失败: %w", err)
		}
		if err := writeDebug(settings.Layout(), result, debugPath); err != nil {
			return "", err
		}
	}

	data, err := session.Export(settings.Format)
	if err != nil {
		return "", fmt.Errorf("生成 %s 失败: %w", settings.Format, err)
	}

	target := outputFile(outputPath, settings.Format)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	return target, nil
}

// outputFile 在 path 为目录或没有扩展名时补上格式的默认文件名。
func outputFile(path string, format config.Format) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, format.DefaultFileName())
	}
	if filepath.Ext(path) == "" {
		return filepath.Join(path, format.DefaultFileName())
	}
	return path
}

func writeDebug(cfg layout.Config, result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(cfg, result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
