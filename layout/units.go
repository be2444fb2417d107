package layout

// 画布以像素为单位，渲染后端按 1px = 1mm 的分辨率栅格化，
// 因此像素与毫米可以互换；字体系统使用 pt。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将像素字号转换为字体系统使用的 pt。
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx 将 pt 转换回像素。
func PtToPx(pt float64) float64 { return pt * PtToMm }

// Scaled 将未缩放的长度乘以缩放系数。
func Scaled(v float64, scale int) float64 { return v * float64(scale) }
