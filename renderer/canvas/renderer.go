package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/interlinear/fonts"
	"github.com/ByLCY/interlinear/layout"
	"github.com/ByLCY/interlinear/renderer"
)

// Renderer draws layout results via github.com/tdewolff/canvas and rasterises them to PNG.
// One canvas unit is one output pixel.
type Renderer struct {
	baseDir string

	// injected resources
	fontBlobs map[string][]byte // by unique name

	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry

	ctx *canvas.Context // only set while Render is painting
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Surface  = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Fonts   map[string]Resource // fonts accessible via built-in:<name>
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// resolution 为每毫米一个像素。
var resolution = canvas.DPMM(1.0)

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving font paths.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected font resources and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:      opts.BaseDir,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败时在实际使用该字体时报错
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Render 绘制背景、词对与底部段落，返回 PNG 字节。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	img, err := r.RenderImage(result)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderImage 与 Render 相同，但返回栅格化后的图像。
func (r *Renderer) RenderImage(result *layout.Result) (*image.RGBA, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	w, h := result.Canvas.Width, result.Canvas.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", w, h)
	}

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	ctx.SetFillColor(colorFromLayout(result.Canvas.Background))
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	r.ctx = ctx
	defer func() { r.ctx = nil }()
	if err := renderer.Paint(r, result); err != nil {
		return nil, err
	}
	return rasterizer.Draw(c, resolution, canvas.DefaultColorSpace), nil
}

// Measure 实现 layout.Measurer：宽度取字形前进宽度，高度为字体上升部与下降部之和。
func (r *Renderer) Measure(text string, font layout.FontResource) (layout.Box, error) {
	face, err := r.fontFace(font, layout.Color{})
	if err != nil {
		return layout.Box{}, err
	}
	metrics := face.Metrics()
	return layout.Box{
		X0: 0,
		Y0: 0,
		X1: face.TextWidth(text),
		Y1: metrics.Ascent + metrics.Descent,
	}, nil
}

// DrawText 在 (x, y) 处绘制单行文本，y 为文本顶部。
func (r *Renderer) DrawText(x, y float64, text string, font layout.FontResource, col layout.Color) error {
	if r.ctx == nil {
		return fmt.Errorf("DrawText 只能在 Render 过程中调用")
	}
	face, err := r.fontFace(font, col)
	if err != nil {
		return err
	}
	// 基线位置：文本顶部加上字体上升部
	baseline := y + face.Metrics().Ascent
	r.ctx.DrawText(x, baseline, canvas.NewTextLine(face, text, canvas.Left))
	return nil
}

// DrawMultilineText 以 (x, y) 为文本块左上角逐行绘制，各行按 align 相对最宽行对齐。
func (r *Renderer) DrawMultilineText(x, y float64, lines []string, font layout.FontResource, col layout.Color, align layout.Align, spacing float64) error {
	if r.ctx == nil {
		return fmt.Errorf("DrawMultilineText 只能在 Render 过程中调用")
	}
	face, err := r.fontFace(font, col)
	if err != nil {
		return err
	}

	widths := make([]float64, len(lines))
	blockWidth := 0.0
	for i, ln := range lines {
		widths[i] = face.TextWidth(ln)
		blockWidth = max(blockWidth, widths[i])
	}

	metrics := face.Metrics()
	lineHeight := metrics.Ascent + metrics.Descent
	cursorY := y
	for i, ln := range lines {
		lx := x
		switch align {
		case layout.AlignCenter:
			lx += (blockWidth - widths[i]) / 2
		case layout.AlignRight:
			lx += blockWidth - widths[i]
		}
		r.ctx.DrawText(lx, cursorY+metrics.Ascent, canvas.NewTextLine(face, ln, canvas.Left))
		cursorY += lineHeight + spacing
	}
	return nil
}

// fontFace 创建字号为 font.Size 像素的字体面。
func (r *Renderer) fontFace(font layout.FontResource, col layout.Color) (*canvas.FontFace, error) {
	if font.Size <= 0 {
		return nil, fmt.Errorf("字体 %s 字号无效: %g", font.Name, font.Size)
	}
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(layout.PxToPt(font.Size), colorFromLayout(col), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Style)
	familyName := font.Name
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)
	data, err := r.loadFontBytes(font)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", font.Src, err)
	}

	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func (r *Renderer) loadFontBytes(font layout.FontResource) ([]byte, error) {
	if font.Src == "" {
		return nil, fmt.Errorf("字体 %s 缺少 src", font.Name)
	}
	src := font.Src
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("找不到注入的字体资源 built-in:%s", name)
	}
	if fonts.IsEmbedded(src) {
		return fonts.Load(src)
	}
	path := src
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
