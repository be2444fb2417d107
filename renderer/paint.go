package renderer

import (
	"fmt"

	"github.com/ByLCY/interlinear/layout"
)

// Paint 把布局结果绘制到 s 上：先绘制词对（原词与译词各自在词对宽度内居中），再绘制底部段落。
func Paint(s Surface, res *layout.Result) error {
	if s == nil {
		return fmt.Errorf("绘制目标不能为空")
	}
	if res == nil {
		return fmt.Errorf("渲染结果为空")
	}
	fg := res.Canvas.Foreground
	for i, p := range res.Pairs.Pairs {
		src, dst := res.PairPosition(i)
		if err := s.DrawText(src.X, src.Y, p.Source, res.Fonts.Primary, fg); err != nil {
			return fmt.Errorf("绘制原词 %q 失败: %w", p.Source, err)
		}
		if err := s.DrawText(dst.X, dst.Y, p.Target, res.Fonts.Secondary, fg); err != nil {
			return fmt.Errorf("绘制译词 %q 失败: %w", p.Target, err)
		}
	}

	para := res.Paragraph
	if len(para.Lines) == 0 {
		return nil
	}
	if err := s.DrawMultilineText(para.X, para.Y, para.Contents(), res.Fonts.Paragraph, fg, layout.AlignCenter, para.Spacing); err != nil {
		return fmt.Errorf("绘制底部段落失败: %w", err)
	}
	return nil
}
