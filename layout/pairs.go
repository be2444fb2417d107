package layout

import "fmt"

// MeasurePair 解析 word 的译词并测量词对宽度。
func MeasurePair(word string, tr *Translation, fonts FontSet, m Measurer) (WordPair, error) {
	target, mapped := tr.Resolve(word)
	src, err := m.Measure(word, fonts.Primary)
	if err != nil {
		return WordPair{}, fmt.Errorf("测量原词 %q 失败: %w", word, err)
	}
	dst, err := m.Measure(target, fonts.Secondary)
	if err != nil {
		return WordPair{}, fmt.Errorf("测量译词 %q 失败: %w", target, err)
	}
	return WordPair{
		Source:      word,
		Target:      target,
		Mapped:      mapped,
		Width:       max(src.Width(), dst.Width()),
		SourceWidth: src.Width(),
		TargetWidth: dst.Width(),
	}, nil
}

// LayoutPairs 按行流方式贪心排布词对：从左到右放置，超出 rowWidth 时换行。
// 词对不会被拆分；单个超宽词对独占一行并标记为 Oversized。
func LayoutPairs(words []string, tr *Translation, fonts FontSet, rowWidth, wordSpacing, rowSpacing float64, m Measurer) (PairLayout, error) {
	out := PairLayout{Pairs: make([]PlacedWordPair, 0, len(words))}
	if len(words) == 0 {
		return out, nil
	}
	if m == nil {
		return out, fmt.Errorf("layout: 缺少测量后端 Measurer")
	}

	x, y := 0.0, 0.0
	row := 0
	for _, word := range words {
		pair, err := MeasurePair(word, tr, fonts, m)
		if err != nil {
			return PairLayout{}, err
		}
		// 当前行已有词对时才换行，保证超宽词对只占用一个新行
		if x > 0 && x+pair.Width > rowWidth {
			x = 0
			y += rowSpacing
			row++
		}
		out.Pairs = append(out.Pairs, PlacedWordPair{
			WordPair:  pair,
			X:         x,
			Y:         y,
			Row:       row,
			Oversized: pair.Width > rowWidth,
		})
		x += pair.Width + wordSpacing
		out.Width = max(out.Width, x)
	}
	out.Height = y
	return out, nil
}

// Rows 按行号分组返回词对，顺序与输入一致。
func (l PairLayout) Rows() [][]PlacedWordPair {
	var rows [][]PlacedWordPair
	for _, p := range l.Pairs {
		for len(rows) <= p.Row {
			rows = append(rows, nil)
		}
		rows[p.Row] = append(rows[p.Row], p)
	}
	return rows
}

// Oversized 返回超出行宽限制的词对。
func (l PairLayout) Oversized() []PlacedWordPair {
	var out []PlacedWordPair
	for _, p := range l.Pairs {
		if p.Oversized {
			out = append(out, p)
		}
	}
	return out
}
