package layout

// 该文件定义布局输入、布局结果与资源描述，供布局计算、渲染与调试 JSON 共用。

// Result 保存一次运行的完整布局：画布、字体、词对行流布局与底部段落。
type Result struct {
	Canvas    Canvas       `json:"canvas"`
	Fonts     FontSet      `json:"fonts"`
	Pairs     PairLayout   `json:"pairs"`
	Origin    Point        `json:"origin"`    // 行流坐标 → 画布坐标的居中偏移
	GlossStep float64      `json:"glossStep"` // 译词相对原词的纵向偏移（负数表示在上方）
	Paragraph Paragraph    `json:"paragraph"`
	Meta      DocumentMeta `json:"meta"`
}

// Canvas 描述输出画布，单位为像素。
type Canvas struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background Color   `json:"background"`
	Foreground Color   `json:"foreground"`
}

// Point 是二维坐标。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box 是测量得到的包围盒 (x0,y0,x1,y1)，相对于绘制原点。
type Box struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (b Box) Width() float64  { return b.X1 - b.X0 }
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// FontResource 描述字体资源，src 可以是文件路径或 embed:<name> 内置字体；Size 以像素为单位。
type FontResource struct {
	Name  string  `json:"name"`
	Src   string  `json:"src"`
	Style string  `json:"style,omitempty"`
	Size  float64 `json:"size"`
}

// FontSet 对应三种字体角色：原词、译词与底部整句。
type FontSet struct {
	Primary   FontResource `json:"primary"`
	Secondary FontResource `json:"secondary"`
	Paragraph FontResource `json:"paragraph"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Align 是多行文本的水平对齐方式。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// GlossPlacement 决定译词画在原词的上方还是下方。
type GlossPlacement string

const (
	GlossBelow GlossPlacement = "below"
	GlossAbove GlossPlacement = "above"
)

// WordPair 是一个原词与其对齐译词，宽度取两者测量宽度的较大值。
type WordPair struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Mapped      bool    `json:"mapped"` // false 时 Target 为占位符
	Width       float64 `json:"width"`
	SourceWidth float64 `json:"sourceWidth"`
	TargetWidth float64 `json:"targetWidth"`
}

// PlacedWordPair 记录词对在行流坐标系中的位置（尚未居中）。
type PlacedWordPair struct {
	WordPair
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Row       int     `json:"row"`
	Oversized bool    `json:"oversized,omitempty"` // 单个词对已超过行宽限制
}

// PairLayout 是行流布局的结果。
// Width 为实际达到的最大行宽（含末尾词距），Height 为最后一行的 y 坐标，不含字形高度。
type PairLayout struct {
	Pairs  []PlacedWordPair `json:"pairs"`
	Width  float64          `json:"width"`
	Height float64          `json:"height"`
}

// Paragraph 是底部整句折行后的文本块，坐标为画布坐标。
type Paragraph struct {
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Spacing float64         `json:"spacing"`
	Lines   []ParagraphLine `json:"lines"`
}

// ParagraphLine 表示一行文本及其测量尺寸与居中后的位置。
type ParagraphLine struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Contents 返回各行文本。
func (p Paragraph) Contents() []string {
	out := make([]string, 0, len(p.Lines))
	for _, ln := range p.Lines {
		out = append(out, ln.Content)
	}
	return out
}

// DocumentMeta 保存卡片元信息。
type DocumentMeta struct {
	Title      string `json:"title"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// Spec 是 Build 的完整输入，由 card 包从默认值或卡片文件生成。
type Spec struct {
	Canvas      Canvas
	Fonts       FontSet
	Meta        DocumentMeta
	Source      []string // 原文按空白切分后的词序列
	Target      string   // 完整译句
	Translation *Translation

	RowWidth    float64
	RowSpacing  float64
	WordSpacing float64
	Gloss       GlossPlacement
	GlossGap    float64

	ParagraphChars   int
	ParagraphTop     float64
	ParagraphSpacing float64
}
