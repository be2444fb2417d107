package layout

import (
	"fmt"
)

// Build 根据卡片输入计算词对行流布局、居中偏移与底部段落。
func Build(spec Spec, opts BuildOptions) (*Result, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: 缺少测量后端 Measurer")
	}
	if spec.Canvas.Width <= 0 || spec.Canvas.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", spec.Canvas.Width, spec.Canvas.Height)
	}

	pairs, err := LayoutPairs(spec.Source, spec.Translation, spec.Fonts, spec.RowWidth, spec.WordSpacing, spec.RowSpacing, opts.Measurer)
	if err != nil {
		return nil, fmt.Errorf("词对布局失败: %w", err)
	}

	paragraph, err := LayoutParagraph(spec.Target, spec.Fonts.Paragraph, spec.ParagraphChars, spec.Canvas.Width, spec.ParagraphTop, spec.ParagraphSpacing, opts.Measurer)
	if err != nil {
		return nil, fmt.Errorf("段落布局失败: %w", err)
	}

	return &Result{
		Canvas:    spec.Canvas,
		Fonts:     spec.Fonts,
		Pairs:     pairs,
		Origin:    centerOrigin(spec.Canvas, pairs),
		GlossStep: glossStep(spec.Gloss, spec.GlossGap),
		Paragraph: paragraph,
		Meta:      spec.Meta,
	}, nil
}

// centerOrigin 计算把行流块放到画布中央所需的偏移。
// 空布局的宽高为 0，偏移退化为画布中心。
func centerOrigin(c Canvas, pairs PairLayout) Point {
	return Point{
		X: (c.Width - pairs.Width) / 2,
		Y: (c.Height - pairs.Height) / 2,
	}
}

func glossStep(placement GlossPlacement, gap float64) float64 {
	if placement == GlossAbove {
		return -gap
	}
	return gap
}

// PairPosition 返回第 i 个词对中原词与译词在画布上的左上角坐标（已做词对内居中）。
func (r *Result) PairPosition(i int) (source, target Point) {
	p := r.Pairs.Pairs[i]
	x := p.X + r.Origin.X
	y := p.Y + r.Origin.Y
	source = Point{X: x + (p.Width-p.SourceWidth)/2, Y: y}
	target = Point{X: x + (p.Width-p.TargetWidth)/2, Y: y + r.GlossStep}
	return source, target
}
