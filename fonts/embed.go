package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是卡片未指定字体时使用的内置字体。
const Default = "embed:gomono"

var builtin = map[string][]byte{
	"gomono":      gomono.TTF,
	"gomono-bold": gomonobold.TTF,
	"goregular":   goregular.TTF,
	"gobold":      gobold.TTF,
	"goitalic":    goitalic.TTF,
}

// Load 返回内置字体的字节数据，path 可写为 "embed:gomono" 或直接 "gomono"。
func Load(path string) ([]byte, error) {
	name := strings.ToLower(strings.TrimPrefix(path, "embed:"))
	name = strings.TrimSuffix(name, ".ttf")
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("找不到内置字体 %s（可用: %s）", path, strings.Join(Names(), ", "))
	}
	return data, nil
}

// IsEmbedded 判断 src 是否引用内置字体。
func IsEmbedded(src string) bool { return strings.HasPrefix(src, "embed:") }

// Names 返回所有内置字体名称。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
