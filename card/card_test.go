package card

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/interlinear/dsl"
	"github.com/ByLCY/interlinear/layout"
)

func TestDefaultCard(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default card invalid: %v", err)
	}
	s := c.Spec
	if s.Canvas.Width != 2000 || s.Canvas.Height != 2000 {
		t.Fatalf("canvas should be 200×scale square: %+v", s.Canvas)
	}
	if s.Fonts.Primary.Size != 100 || s.Fonts.Secondary.Size != 50 || s.Fonts.Paragraph.Size != 66 {
		t.Fatalf("unexpected font sizes: %+v", s.Fonts)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"row width", s.RowWidth, 1332},
		{"row spacing", s.RowSpacing, 300},
		{"word spacing", s.WordSpacing, 25},
		{"gloss gap", s.GlossGap, 125},
		{"paragraph top", s.ParagraphTop, 1667},
		{"paragraph spacing", s.ParagraphSpacing, 4},
		{"paragraph chars", float64(s.ParagraphChars), 40},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("%s: got %g want %g", c.name, c.got, c.want)
		}
	}
	if len(s.Source) != 8 || s.Translation.Len() != 8 {
		t.Fatalf("unexpected default text: %q (%d mappings)", s.Source, s.Translation.Len())
	}
	if got, ok := s.Translation.Resolve("longer"); !ok || got != "daha uzun" {
		t.Fatalf("default mapping lookup: %q", got)
	}
	if c.Output != DefaultOutput {
		t.Fatalf("unexpected output %q", c.Output)
	}
}

func TestExampleCardMatchesDefault(t *testing.T) {
	c, err := Load(filepath.Join("..", "examples", "greeting.card"), nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	d := Default()
	if strings.Join(c.Spec.Source, " ") != strings.Join(d.Spec.Source, " ") || c.Spec.Target != d.Spec.Target {
		t.Fatalf("example text differs from default")
	}
	if c.Spec.RowSpacing != d.Spec.RowSpacing || c.Spec.WordSpacing != d.Spec.WordSpacing || c.Spec.RowWidth != d.Spec.RowWidth {
		t.Fatalf("example spacing differs from default: %+v vs %+v", c.Spec, d.Spec)
	}
	if c.Spec.Fonts != d.Spec.Fonts {
		t.Fatalf("example fonts differ: %+v vs %+v", c.Spec.Fonts, d.Spec.Fonts)
	}
	if c.BaseDir != filepath.Join("..", "examples") {
		t.Fatalf("unexpected base dir %q", c.BaseDir)
	}
}

func parseCard(t *testing.T, src string, data any) (*Card, error) {
	t.Helper()
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return FromDocument(doc, data)
}

func TestFromDocumentOverrides(t *testing.T) {
	src := `card Custom {
  meta { title: "${lesson.title}" source-lang: "en-us" target-lang: "tr" }
  canvas { scale: 2 size: 300 background: #000 foreground: #ff8000 output: "out/card.png" }
  fonts {
    font primary { src: "fonts/Fira.ttf" size: 12 style: "bold" }
    font paragraph { size: 8px }
  }
  layout {
    row-width: 50%
    row-spacing: 40
    word-spacing: 3
    gloss: above
    gloss-gap: 9
    paragraph-chars: 30
    paragraph-top: 250
    paragraph-spacing: 1
  }
  text { source: "one two three" target: "bir iki ${lesson.missing}" missing: "?" }
  mapping { "one": "bir" "two": "iki" }
}`
	data := map[string]any{"lesson": map[string]any{"title": "Numbers"}}
	c, err := parseCard(t, src, data)
	if err != nil {
		t.Fatalf("FromDocument error: %v", err)
	}
	s := c.Spec
	if c.Name != "Custom" || c.Scale != 2 || c.Output != "out/card.png" {
		t.Fatalf("unexpected card header: %+v", c)
	}
	if s.Meta.Title != "Numbers" || s.Meta.SourceLang != "en-US" {
		t.Fatalf("unexpected meta: %+v", s.Meta)
	}
	if s.Canvas.Width != 600 || s.Canvas.Background != (layout.Color{}) || s.Canvas.Foreground != (layout.Color{R: 255, G: 128}) {
		t.Fatalf("unexpected canvas: %+v", s.Canvas)
	}
	if s.Fonts.Primary.Src != "fonts/Fira.ttf" || s.Fonts.Primary.Size != 24 || s.Fonts.Primary.Style != "bold" {
		t.Fatalf("unexpected primary font: %+v", s.Fonts.Primary)
	}
	// secondary 保持默认：10×2/2
	if s.Fonts.Secondary.Size != 10 || s.Fonts.Paragraph.Size != 16 {
		t.Fatalf("unexpected font sizes: %+v", s.Fonts)
	}
	if s.RowWidth != 300 || s.RowSpacing != 80 || s.WordSpacing != 6 || s.GlossGap != 18 {
		t.Fatalf("unexpected layout lengths: %+v", s)
	}
	if s.Gloss != layout.GlossAbove || s.ParagraphChars != 30 || s.ParagraphTop != 500 || s.ParagraphSpacing != 2 {
		t.Fatalf("unexpected paragraph settings: %+v", s)
	}
	if got, ok := s.Translation.Resolve("three"); ok || got != "?" {
		t.Fatalf("custom sentinel not applied: %q", got)
	}
	if s.Target != "bir iki ${lesson.missing}" || len(c.Warnings) != 1 {
		t.Fatalf("unresolved placeholder should be kept and reported: %q %q", s.Target, c.Warnings)
	}
}

func TestFromDocumentNormalizesUnicode(t *testing.T) {
	// "Dünya" 以分解形式 (u + U+0308) 书写
	src := "card N { text { source: \"Du\u0308nya\" target: \"x\" } mapping { \"D\u00fcnya\": \"World\" } }"
	c, err := parseCard(t, src, nil)
	if err != nil {
		t.Fatalf("FromDocument error: %v", err)
	}
	if got, ok := c.Spec.Translation.Lookup(c.Spec.Source[0]); !ok || got != "World" {
		t.Fatalf("NFC normalisation should make decomposed input match: %q %v", got, ok)
	}
}

func TestFromDocumentErrors(t *testing.T) {
	cases := map[string]string{
		"empty source":     `card E { text { target: "x" } }`,
		"empty target":     `card E { text { source: "x" } }`,
		"unknown section":  `card E { extra { a: 1 } text { source: "x" target: "y" } }`,
		"duplicate":        `card E { text { source: "x" target: "y" } text { source: "x" } }`,
		"unknown key":      `card E { layout { columns: 2 } text { source: "x" target: "y" } }`,
		"bad scale":        `card E { canvas { scale: 0 } text { source: "x" target: "y" } }`,
		"bad lang":         `card E { meta { source-lang: "not a tag!" } text { source: "x" target: "y" } }`,
		"bad colour":       `card E { canvas { background: "#12" } text { source: "x" target: "y" } }`,
		"bad gloss":        `card E { layout { gloss: left } text { source: "x" target: "y" } }`,
		"bad role":         `card E { fonts { font title { size: 3 } } text { source: "x" target: "y" } }`,
		"size outside":     `card E { fonts { size: 3 } text { source: "x" target: "y" } }`,
		"zero chars":       `card E { layout { paragraph-chars: 0 } text { source: "x" target: "y" } }`,
		"mapping form":     `card E { mapping { a: "b" } text { source: "x" target: "y" } }`,
		"empty sentinel":   `card E { text { source: "x" target: "y" missing: "" } }`,
		"bad length value": `card E { layout { row-width: wide } text { source: "x" target: "y" } }`,
	}
	for name, src := range cases {
		if _, err := parseCard(t, src, nil); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.card"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.card")
	if err := os.WriteFile(bad, []byte("card {"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
