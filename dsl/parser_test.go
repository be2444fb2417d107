package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/interlinear/dsl"
)

const sampleCard = `
// 英土对照学习卡
card Greeting v1 {
  meta {
    title: "Hello World"
    source-lang: "en"; target-lang: "tr"
  }

  canvas {
    scale: 10
    background: #FFFFFF
    foreground: #000
  }

  fonts {
    font primary { src: "embed:gomono" size: 10px }
    font secondary {
      src: "embed:gomono"
      style: bold
    }
  }

  layout {
    gloss: above
    row-spacing: 30
  }

  /* 原文与译文 */
  text {
    source: "Hello, World!"
    target: "Merhaba, Dünya!"
  }

  mapping {
    "Hello,": "Merhaba,"
    "World!":
      "Dünya!"
  }
}
`

func TestParseCard(t *testing.T) {
	doc, err := dsl.ParseString(sampleCard)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Greeting" || doc.Version != "v1" {
		t.Fatalf("unexpected header: %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 6 {
		t.Fatalf("expected 6 sections, got %d", len(doc.Sections))
	}

	meta := doc.Section("meta")
	if meta == nil || len(meta.Block.Statements) != 3 {
		t.Fatalf("meta section should hold 3 assignments: %+v", meta)
	}
	if a := meta.Block.Statements[2].Assignment; a == nil || a.Key != "target-lang" || a.Value.Raw() != "tr" {
		t.Fatalf("unexpected target-lang assignment: %+v", meta.Block.Statements[2])
	}

	canvas := doc.Section("canvas")
	if bg := canvas.Block.Statements[1].Assignment; bg == nil || bg.Value.Color == nil || *bg.Value.Color != "#FFFFFF" {
		t.Fatalf("expected colour value, got %+v", canvas.Block.Statements[1])
	}
	if scale := canvas.Block.Statements[0].Assignment; scale.Value.Number == nil || *scale.Value.Number != "10" {
		t.Fatalf("expected number value, got %+v", scale.Value)
	}

	fonts := doc.Section("fonts")
	primary := fonts.Block.Statements[0].Command
	if primary == nil || primary.Name != "font" || len(primary.Args) != 1 || primary.Args[0].Value != "primary" {
		t.Fatalf("unexpected font command: %+v", fonts.Block.Statements[0])
	}
	if size := primary.Block.Statements[1].Assignment; size.Value.Raw() != "10px" {
		t.Fatalf("expected 10px, got %q", size.Value.Raw())
	}
	secondary := fonts.Block.Statements[1].Command
	if style := secondary.Block.Statements[1].Assignment; style.Value.Ident == nil || *style.Value.Ident != "bold" {
		t.Fatalf("expected ident value, got %+v", style.Value)
	}

	mapping := doc.Section("mapping")
	if len(mapping.Block.Statements) != 2 {
		t.Fatalf("expected 2 mapping entries, got %d", len(mapping.Block.Statements))
	}
	second := mapping.Block.Statements[1].Entry
	if second == nil || second.Key != "World!" || second.Value != "Dünya!" {
		t.Fatalf("unexpected entry: %+v", mapping.Block.Statements[1])
	}
	if doc.Section("missing") != nil {
		t.Fatalf("unknown section lookup should return nil")
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	inputs := []string{
		`doc Greeting v1 { }`,
		`card Greeting v1 { text { source: } }`,
		`card Greeting v1 { mapping { "Hello," "Merhaba," } }`,
		`card Greeting v1 { text { source: "x" }`,
	}
	for _, in := range inputs {
		if _, err := dsl.Parse(strings.NewReader(in)); err == nil {
			t.Fatalf("expected parse error for %q", in)
		}
	}
}
