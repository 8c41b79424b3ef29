package respond

type RephraseRespond struct {
	RephrasedText string `json:"rephrased_text"`
	Style         string `json:"style"`
	TokensUsed    int    `json:"tokens_used"`
	LatencyMs     int64  `json:"latency_ms"`
}

type StylesRespond struct {
	Styles []string `json:"styles"`
}
