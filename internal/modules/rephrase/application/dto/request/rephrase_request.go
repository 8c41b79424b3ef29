package request

// RephraseRequest 改写请求
//
// JSON 接口和表单提交共用，form 标签对应页面上的输入框名称。
type RephraseRequest struct {
	Style   string `json:"style" form:"style"`
	Summary string `json:"summary" form:"summary"`
	Answer  string `json:"answer" form:"answer"`
}
