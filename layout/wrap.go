package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Wrap 按词边界贪心折行，每行字符数（rune）不超过 maxChars。
// 超过 maxChars 的单词独占一行且不拆分；maxChars <= 0 时不折行。
func Wrap(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxChars <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	var builder strings.Builder
	current := 0
	for _, word := range words {
		n := utf8.RuneCountInString(word)
		if current > 0 && current+1+n > maxChars {
			lines = append(lines, builder.String())
			builder.Reset()
			current = 0
		}
		if current > 0 {
			builder.WriteByte(' ')
			current++
		}
		builder.WriteString(word)
		current += n
	}
	if builder.Len() > 0 {
		lines = append(lines, builder.String())
	}
	return lines
}

// LayoutParagraph 折行并测量底部整句，返回在 canvasWidth 内水平居中的文本块。
// 各行自 top 起向下堆叠，行距为最大行高加 spacing；每行相对块宽居中。
func LayoutParagraph(text string, font FontResource, maxChars int, canvasWidth, top, spacing float64, m Measurer) (Paragraph, error) {
	p := Paragraph{Y: top, Spacing: spacing}
	wrapped := Wrap(text, maxChars)
	if len(wrapped) == 0 {
		p.X = canvasWidth / 2
		return p, nil
	}
	if m == nil {
		return p, fmt.Errorf("layout: 缺少测量后端 Measurer")
	}

	lineHeight := 0.0
	p.Lines = make([]ParagraphLine, 0, len(wrapped))
	for _, content := range wrapped {
		box, err := m.Measure(content, font)
		if err != nil {
			return Paragraph{}, fmt.Errorf("测量段落行 %q 失败: %w", content, err)
		}
		p.Lines = append(p.Lines, ParagraphLine{Content: content, Width: box.Width(), Height: box.Height()})
		p.Width = max(p.Width, box.Width())
		lineHeight = max(lineHeight, box.Height())
	}

	p.X = (canvasWidth - p.Width) / 2
	cursorY := top
	for i := range p.Lines {
		ln := &p.Lines[i]
		ln.X = p.X + (p.Width-ln.Width)/2
		ln.Y = cursorY
		p.Height += ln.Height
		if i > 0 {
			p.Height += spacing
		}
		cursorY += lineHeight + spacing
	}
	return p, nil
}

// Bottom 返回文本块底边的 y 坐标。
func (p Paragraph) Bottom() float64 { return p.Y + p.Height }
