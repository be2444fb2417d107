package layout

// BuildOptions 配置布局阶段所需的依赖，例如测量后端。
type BuildOptions struct {
	Measurer Measurer
}

// Measurer 负责在给定字体下测量文本的包围盒。
// 渲染后端实现它，测试中可注入返回确定宽度的桩实现。
type Measurer interface {
	Measure(text string, font FontResource) (Box, error)
}
