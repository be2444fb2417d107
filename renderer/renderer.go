package renderer

import "github.com/ByLCY/interlinear/layout"

// Renderer 将布局结果输出为最终文件。
// Render 返回生成的二进制数据（PNG 字节切片）以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Surface 是可测量、可绘制文本的画布。(x, y) 均为文本左上角。
type Surface interface {
	layout.Measurer
	DrawText(x, y float64, text string, font layout.FontResource, col layout.Color) error
	DrawMultilineText(x, y float64, lines []string, font layout.FontResource, col layout.Color, align layout.Align, spacing float64) error
}
