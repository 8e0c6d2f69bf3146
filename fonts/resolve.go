package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"

	"github.com/ByLCY/radialtext/logging"
)

// Resolve 读取字体来源并返回文件名与字节数据。src 可以是：
//   - "builtin:<name>"：内置字体
//   - 文件路径（相对路径基于 baseDir）
//   - 系统字体名称，例如 "DejaVuSans.ttf"，通过 go-findfont 查找
func Resolve(src, baseDir string) (name string, data []byte, err error) {
	if src == "" {
		return "", nil, fmt.Errorf("字体来源为空: %w", ErrUnknownFont)
	}
	if strings.HasPrefix(src, BuiltinPrefix) {
		data, err := Load(src)
		if err != nil {
			return "", nil, err
		}
		return strings.TrimPrefix(src, BuiltinPrefix) + ".ttf", data, nil
	}

	path := src
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	if data, err := os.ReadFile(path); err == nil {
		return filepath.Base(path), data, nil
	} else if !os.IsNotExist(err) {
		return "", nil, fmt.Errorf("读取字体文件 %s 失败: %w", path, err)
	}

	fpath, err := findfont.Find(src) // 作为系统字体查找
	if err != nil || fpath == "" {
		return "", nil, fmt.Errorf("找不到字体 %s: %w", src, ErrUnknownFont)
	}
	logging.Logger().Debug("resolved system font", "name", src, "path", fpath)
	data, err = os.ReadFile(fpath)
	if err != nil {
		return "", nil, fmt.Errorf("读取系统字体 %s 失败: %w", fpath, err)
	}
	return filepath.Base(fpath), data, nil
}
