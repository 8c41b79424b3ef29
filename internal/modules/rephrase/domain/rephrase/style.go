package rephrase

// Style 改写风格
//
// 三种固定风格，每种对应一个 Prompt 模板和一个默认温度。
type Style int

const (
	StyleUnknown Style = iota
	StylePlain
	StyleAnalogy
	StyleExample
)

// 表单上展示的风格标签，必须与前端下拉框完全一致
const (
	LabelPlain   = "Simple/less technical terms"
	LabelAnalogy = "Include Analogy"
	LabelExample = "Include Examples"
)

// 默认温度：简化改写要求忠实原文，类比/举例需要一定发散
const (
	DefaultPlainTemperature    float32 = 0.3
	DefaultCreativeTemperature float32 = 0.7
)

// ParseStyle 根据表单标签解析风格，未知标签返回 false
func ParseStyle(label string) (Style, bool) {
	switch label {
	case LabelPlain:
		return StylePlain, true
	case LabelAnalogy:
		return StyleAnalogy, true
	case LabelExample:
		return StyleExample, true
	default:
		return StyleUnknown, false
	}
}

// Labels 按表单顺序返回全部风格标签
func Labels() []string {
	return []string{LabelPlain, LabelAnalogy, LabelExample}
}

// Valid 是否为三种已知风格之一
func (s Style) Valid() bool {
	return s == StylePlain || s == StyleAnalogy || s == StyleExample
}

// Label 返回风格对应的表单标签
func (s Style) Label() string {
	switch s {
	case StylePlain:
		return LabelPlain
	case StyleAnalogy:
		return LabelAnalogy
	case StyleExample:
		return LabelExample
	default:
		return ""
	}
}

// String 用于日志字段
func (s Style) String() string {
	switch s {
	case StylePlain:
		return "plain"
	case StyleAnalogy:
		return "analogy"
	case StyleExample:
		return "example"
	default:
		return "unknown"
	}
}

// DefaultTemperature 返回风格的默认采样温度
func (s Style) DefaultTemperature() float32 {
	if s == StylePlain {
		return DefaultPlainTemperature
	}
	return DefaultCreativeTemperature
}
