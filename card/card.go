// Package card 提供学习卡的静态配置：内置默认卡片、卡片文件解析与校验。
package card

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/interlinear/fonts"
	"github.com/ByLCY/interlinear/layout"
)

// DefaultScale 控制输出分辨率，所有长度都会乘以它。
const DefaultScale = 10

// DefaultOutput 是默认输出路径，已有文件会被直接覆盖。
const DefaultOutput = "image_with_text.png"

// 默认卡片内容：英文原句、土耳其语译句与逐词对照。
const (
	defaultSource = "Hello, World! This is a longer English sentence."
	defaultTarget = "Merhaba, Dünya! Bu daha uzun bir Türkçe cümle."
)

var defaultMapping = map[string]string{
	"Hello,":    "Merhaba,",
	"World!":    "Dünya!",
	"This":      "Bu",
	"is":        "-",
	"a":         "bir",
	"longer":    "daha uzun",
	"English":   "inglizce",
	"sentence.": "cümle.",
}

// Card 是一次运行的完整配置。
type Card struct {
	Name     string
	Output   string
	Scale    int
	BaseDir  string   // 解析相对字体路径的目录
	Warnings []string // 非致命问题，例如无法解析的占位符
	Spec     layout.Spec
}

// Default 返回内置的英土对照卡片。
func Default() *Card {
	c := newCard(DefaultScale, 200)
	c.Name = "Greeting"
	c.Spec.Meta.Title = "Hello, World!"
	words, target, mapping := normalize(defaultSource, defaultTarget, defaultMapping)
	c.Spec.Source = words
	c.Spec.Target = target
	c.Spec.Translation = layout.NewTranslation(mapping, layout.DefaultSentinel)
	return c
}

// newCard 按缩放系数与未缩放的画布边长生成默认尺寸参数，文本与映射为空。
func newCard(scale int, size float64) *Card {
	width := size * float64(scale)
	base := 10 * scale
	secondary := base / 2
	paragraph := base * 2 / 3

	font := func(name string, px int) layout.FontResource {
		return layout.FontResource{Name: name, Src: fonts.Default, Size: float64(px)}
	}

	return &Card{
		Output: DefaultOutput,
		Scale:  scale,
		Spec: layout.Spec{
			Canvas: layout.Canvas{
				Width:      width,
				Height:     width,
				Background: layout.Color{R: 255, G: 255, B: 255},
				Foreground: layout.Color{},
			},
			Fonts: layout.FontSet{
				Primary:   font("primary", base),
				Secondary: font("secondary", secondary),
				Paragraph: font("paragraph", paragraph),
			},
			Meta:             layout.DocumentMeta{SourceLang: "en", TargetLang: "tr"},
			RowWidth:         float64(int(width)/3) * 2,
			RowSpacing:       float64(base * 3),
			WordSpacing:      float64(base / 4),
			Gloss:            layout.GlossBelow,
			GlossGap:         float64(base + base/4),
			ParagraphChars:   int(width) / secondary,
			ParagraphTop:     width - float64(int(width)/6),
			ParagraphSpacing: layout.Scaled(0.4, scale),
		},
	}
}

// Validate 检查必填文本与尺寸参数，错误视为配置错误。
func (c *Card) Validate() error {
	s := c.Spec
	switch {
	case c.Scale <= 0:
		return fmt.Errorf("scale 必须为正数: %d", c.Scale)
	case s.Canvas.Width <= 0 || s.Canvas.Height <= 0:
		return fmt.Errorf("画布尺寸无效: %gx%g", s.Canvas.Width, s.Canvas.Height)
	case len(s.Source) == 0:
		return fmt.Errorf("原文不能为空")
	case strings.TrimSpace(s.Target) == "":
		return fmt.Errorf("译文不能为空")
	case s.RowWidth <= 0:
		return fmt.Errorf("row-width 必须为正数: %g", s.RowWidth)
	case s.ParagraphChars <= 0:
		return fmt.Errorf("paragraph-chars 必须为正数: %d", s.ParagraphChars)
	case s.Gloss != layout.GlossBelow && s.Gloss != layout.GlossAbove:
		return fmt.Errorf("gloss 只能为 below 或 above: %q", s.Gloss)
	}
	for _, f := range []layout.FontResource{s.Fonts.Primary, s.Fonts.Secondary, s.Fonts.Paragraph} {
		if f.Size <= 0 {
			return fmt.Errorf("字体 %s 字号必须为正数: %g", f.Name, f.Size)
		}
		if f.Src == "" {
			return fmt.Errorf("字体 %s 缺少 src", f.Name)
		}
	}
	return nil
}

// normalize 将原文、译文与映射统一为 NFC，使精确匹配不受组合字符写法影响。
func normalize(source, target string, mapping map[string]string) ([]string, string, map[string]string) {
	words := strings.Fields(norm.NFC.String(source))
	out := make(map[string]string, len(mapping))
	for k, v := range mapping {
		out[norm.NFC.String(k)] = norm.NFC.String(v)
	}
	return words, norm.NFC.String(target), out
}
