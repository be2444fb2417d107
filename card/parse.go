package card

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/ByLCY/interlinear/binding"
	"github.com/ByLCY/interlinear/dsl"
	"github.com/ByLCY/interlinear/layout"
)

// Load 读取并解析卡片文件，相对字体路径以卡片所在目录为基准。
func Load(path string, data any) (*Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开卡片文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析卡片文件失败: %w", err)
	}
	c, err := FromDocument(doc, data)
	if err != nil {
		return nil, err
	}
	c.BaseDir = filepath.Dir(path)
	return c, nil
}

// FromDocument 将卡片 AST 转为配置。未出现的参数取与 scale 相应的默认值，
// 显式给出的长度按未缩放单位书写并乘以 scale。
func FromDocument(doc *dsl.Document, data any) (*Card, error) {
	if doc == nil {
		return nil, fmt.Errorf("卡片文档为空")
	}
	seen := map[string]bool{}
	for _, s := range doc.Sections {
		if !knownSections[s.Name] {
			return nil, fmt.Errorf("%s: 未知的段落 %q", s.Pos, s.Name)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%s: 段落 %q 重复", s.Pos, s.Name)
		}
		seen[s.Name] = true
	}

	scale, size, err := canvasGeometry(doc.Section("canvas"))
	if err != nil {
		return nil, err
	}

	p := &cardParser{card: newCard(scale, size), data: data}
	p.card.Name = doc.Name
	var source, target string
	mapping := map[string]string{}
	sentinel := layout.DefaultSentinel

	steps := []struct {
		name  string
		apply func(*dsl.Assignment) error
	}{
		{"meta", p.applyMeta},
		{"canvas", p.applyCanvas},
		{"layout", p.applyLayout},
		{"text", func(a *dsl.Assignment) error {
			switch a.Key {
			case "source":
				source = p.str(a)
			case "target":
				target = p.str(a)
			case "missing":
				sentinel = p.str(a)
				if sentinel == "" {
					return fmt.Errorf("%s: missing 不能为空", a.Pos)
				}
			default:
				return unknownKey(a, "text")
			}
			return nil
		}},
	}
	for _, step := range steps {
		if err := p.eachAssignment(doc.Section(step.name), step.apply); err != nil {
			return nil, err
		}
	}
	if err := p.applyFonts(doc.Section("fonts")); err != nil {
		return nil, err
	}
	if sec := doc.Section("mapping"); sec != nil {
		for _, st := range sec.Block.Statements {
			if st.Entry == nil {
				return nil, fmt.Errorf("%s: mapping 段落只允许 \"原词\": \"译词\" 形式", sec.Pos)
			}
			mapping[p.interpolate(string(st.Entry.Key))] = p.interpolate(string(st.Entry.Value))
		}
	}

	words, target, mapping := normalize(source, target, mapping)
	p.card.Spec.Source = words
	p.card.Spec.Target = target
	p.card.Spec.Translation = layout.NewTranslation(mapping, sentinel)

	if err := p.card.Validate(); err != nil {
		return nil, err
	}
	return p.card, nil
}

var knownSections = map[string]bool{
	"meta": true, "canvas": true, "fonts": true, "layout": true, "text": true, "mapping": true,
}

type cardParser struct {
	card *Card
	data any
}

// canvasGeometry 先读取 scale 与 size，其余默认值依赖它们。
func canvasGeometry(sec *dsl.Section) (int, float64, error) {
	scale, size := DefaultScale, 200.0
	if sec == nil {
		return scale, size, nil
	}
	for _, st := range sec.Block.Statements {
		a := st.Assignment
		if a == nil {
			continue
		}
		switch a.Key {
		case "scale":
			v, err := strconv.Atoi(a.Value.Raw())
			if err != nil || v <= 0 {
				return 0, 0, fmt.Errorf("%s: scale 必须为正整数: %q", a.Pos, a.Value.Raw())
			}
			scale = v
		case "size":
			v, err := parseNumber(a.Value.Raw())
			if err != nil || v <= 0 {
				return 0, 0, fmt.Errorf("%s: size 必须为正数: %q", a.Pos, a.Value.Raw())
			}
			size = v
		}
	}
	return scale, size, nil
}

func (p *cardParser) eachAssignment(sec *dsl.Section, apply func(*dsl.Assignment) error) error {
	if sec == nil {
		return nil
	}
	for _, st := range sec.Block.Statements {
		if st.Assignment == nil {
			return fmt.Errorf("%s: %s 段落只允许 key: value 形式", sec.Pos, sec.Name)
		}
		if err := apply(st.Assignment); err != nil {
			return err
		}
	}
	return nil
}

func (p *cardParser) applyMeta(a *dsl.Assignment) error {
	meta := &p.card.Spec.Meta
	switch a.Key {
	case "title":
		meta.Title = p.str(a)
	case "source-lang", "target-lang":
		tag, err := language.Parse(p.str(a))
		if err != nil {
			return fmt.Errorf("%s: 无效的语言标记 %q: %w", a.Pos, a.Value.Raw(), err)
		}
		if a.Key == "source-lang" {
			meta.SourceLang = tag.String()
		} else {
			meta.TargetLang = tag.String()
		}
	default:
		return unknownKey(a, "meta")
	}
	return nil
}

func (p *cardParser) applyCanvas(a *dsl.Assignment) error {
	c := &p.card.Spec.Canvas
	switch a.Key {
	case "scale", "size":
		// 已在 canvasGeometry 中处理
	case "background", "foreground":
		col, err := parseColor(a.Value.Raw())
		if err != nil {
			return fmt.Errorf("%s: %w", a.Pos, err)
		}
		if a.Key == "background" {
			c.Background = col
		} else {
			c.Foreground = col
		}
	case "output":
		out := p.str(a)
		if out == "" {
			return fmt.Errorf("%s: output 不能为空", a.Pos)
		}
		p.card.Output = out
	default:
		return unknownKey(a, "canvas")
	}
	return nil
}

func (p *cardParser) applyLayout(a *dsl.Assignment) error {
	s := &p.card.Spec
	raw := a.Value.Raw()
	switch a.Key {
	case "row-width":
		return p.length(a, &s.RowWidth, s.Canvas.Width)
	case "row-spacing":
		return p.length(a, &s.RowSpacing, s.Canvas.Height)
	case "word-spacing":
		return p.length(a, &s.WordSpacing, s.Canvas.Width)
	case "gloss-gap":
		return p.length(a, &s.GlossGap, s.Canvas.Height)
	case "paragraph-top":
		return p.length(a, &s.ParagraphTop, s.Canvas.Height)
	case "paragraph-spacing":
		return p.length(a, &s.ParagraphSpacing, s.Canvas.Height)
	case "paragraph-chars":
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: paragraph-chars 必须为整数: %q", a.Pos, raw)
		}
		s.ParagraphChars = v
	case "gloss":
		switch g := layout.GlossPlacement(strings.ToLower(raw)); g {
		case layout.GlossAbove, layout.GlossBelow:
			s.Gloss = g
		default:
			return fmt.Errorf("%s: gloss 只能为 below 或 above: %q", a.Pos, raw)
		}
	default:
		return unknownKey(a, "layout")
	}
	return nil
}

// applyFonts 支持段落级 src/style（作用于全部字体）与 font <role> { ... } 声明。
func (p *cardParser) applyFonts(sec *dsl.Section) error {
	if sec == nil {
		return nil
	}
	set := &p.card.Spec.Fonts
	roles := map[string]*layout.FontResource{
		"primary":   &set.Primary,
		"secondary": &set.Secondary,
		"paragraph": &set.Paragraph,
	}
	for _, st := range sec.Block.Statements {
		switch {
		case st.Assignment != nil:
			for _, role := range []*layout.FontResource{&set.Primary, &set.Secondary, &set.Paragraph} {
				if err := p.applyFont(st.Assignment, role, false); err != nil {
					return err
				}
			}
		case st.Command != nil && st.Command.Name == "font":
			cmd := st.Command
			if len(cmd.Args) != 1 {
				return fmt.Errorf("%s: font 需要且只需要一个角色名", cmd.Pos)
			}
			role, ok := roles[cmd.Args[0].Value]
			if !ok {
				return fmt.Errorf("%s: 未知的字体角色 %q（可用: primary, secondary, paragraph）", cmd.Pos, cmd.Args[0].Value)
			}
			if cmd.Block == nil {
				continue
			}
			for _, inner := range cmd.Block.Statements {
				if inner.Assignment == nil {
					return fmt.Errorf("%s: font 块只允许 key: value 形式", cmd.Pos)
				}
				if err := p.applyFont(inner.Assignment, role, true); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%s: fonts 段落只允许 font 声明或 src/style 属性", sec.Pos)
		}
	}
	return nil
}

func (p *cardParser) applyFont(a *dsl.Assignment, font *layout.FontResource, allowSize bool) error {
	switch a.Key {
	case "src":
		font.Src = p.str(a)
	case "style":
		font.Style = p.str(a)
	case "size":
		if !allowSize {
			return fmt.Errorf("%s: size 只能在 font 块中设置", a.Pos)
		}
		return p.length(a, &font.Size, 0)
	default:
		return unknownKey(a, "font")
	}
	return nil
}

// length 解析未缩放长度并乘以 scale；百分比相对 reference（已是像素）。
func (p *cardParser) length(a *dsl.Assignment, dst *float64, reference float64) error {
	raw := strings.TrimSpace(a.Value.Raw())
	if strings.HasSuffix(raw, "%") {
		if reference <= 0 {
			return fmt.Errorf("%s: %s 不支持百分比", a.Pos, a.Key)
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return fmt.Errorf("%s: 无效的百分比 %q", a.Pos, raw)
		}
		*dst = reference * v / 100
		return nil
	}
	v, err := parseNumber(raw)
	if err != nil {
		return fmt.Errorf("%s: %s 需要数值: %q", a.Pos, a.Key, raw)
	}
	*dst = layout.Scaled(v, p.card.Scale)
	return nil
}

func (p *cardParser) str(a *dsl.Assignment) string {
	return p.interpolate(a.Value.Raw())
}

func (p *cardParser) interpolate(s string) string {
	out, missing := binding.Interpolate(s, p.data)
	for _, path := range missing {
		p.card.Warnings = append(p.card.Warnings, fmt.Sprintf("无法解析占位符 ${%s}", path))
	}
	return out
}

func unknownKey(a *dsl.Assignment, section string) error {
	return fmt.Errorf("%s: %s 中未知的属性 %q", a.Pos, section, a.Key)
}

func parseNumber(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw), "px"), 64)
}

// parseColor 支持 #RGB 与 #RRGGBB。
func parseColor(value string) (layout.Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return layout.Color{}, fmt.Errorf("无效颜色 %q", value)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return layout.Color{}, fmt.Errorf("无效颜色 %q", value)
	}
	return layout.Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}
