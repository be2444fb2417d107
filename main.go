package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/interlinear/card"
	"github.com/ByLCY/interlinear/layout"
	"github.com/ByLCY/interlinear/renderer"
	canvasrenderer "github.com/ByLCY/interlinear/renderer/canvas"
)

func main() {
	cardPath := flag.String("card", "", "卡片文件路径（为空时使用内置卡片）")
	output := flag.String("out", "", "PNG 输出路径（覆盖卡片中的 output）")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到卡片文本的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	c, err := loadCard(*cardPath, inputData)
	if err != nil {
		log.Fatalf("读取卡片失败: %v", err)
	}
	if *output != "" {
		c.Output = *output
	}

	var r renderer.Renderer = canvasrenderer.NewRenderer(c.BaseDir)
	if err := run(c, *debug, r); err != nil {
		log.Fatalf("生成图片失败: %v", err)
	}
	fmt.Printf("已生成图片：%s\n", c.Output)
}

func loadCard(path string, data any) (*card.Card, error) {
	if path == "" {
		return card.Default(), nil
	}
	return card.Load(path, data)
}

// run 串联布局与渲染；图片在内存中完整生成后才写入文件。
func run(c *card.Card, debugPath string, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("卡片配置无效: %w", err)
	}
	for _, w := range c.Warnings {
		log.Printf("警告: %s", w)
	}

	m, ok := r.(layout.Measurer)
	if !ok {
		return fmt.Errorf("renderer 未实现测量接口")
	}
	result, err := layout.Build(c.Spec, layout.BuildOptions{Measurer: m})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	reportOverflow(result)

	if debugPath != "" {
		if err := layout.WriteDebugJSON(result, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	png, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染图片失败: %w", err)
	}
	if dir := filepath.Dir(c.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(c.Output, png, 0o644); err != nil {
		return fmt.Errorf("写入图片文件失败: %w", err)
	}
	return nil
}

// reportOverflow 记录超宽词对与超出画布底边的段落，不视为错误。
func reportOverflow(res *layout.Result) {
	for _, p := range res.Pairs.Oversized() {
		log.Printf("警告: 词对 %q/%q 宽度 %.1f 超过行宽，独占一行", p.Source, p.Target, p.Width)
	}
	if bottom := res.Paragraph.Bottom(); bottom > res.Canvas.Height {
		log.Printf("警告: 底部段落超出画布 %.1fpx", bottom-res.Canvas.Height)
	}
}
