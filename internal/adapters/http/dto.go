package http

// CardsResponse is the JSON shape returned by GET /v1/cards.
type CardsResponse struct {
	Cards []string `json:"cards"`
	Seed  string   `json:"seed"`
}

type NormalizeRequest struct {
	Text string `json:"text"`
}

type NormalizeResponse struct {
	SpreadKind   string `json:"spread_kind"`
	RenderedText string `json:"rendered_text"`
}

type ReadingRequest struct {
	Text         string `json:"text"`
	Mode         string `json:"mode"`
	Theme        string `json:"theme"`
	Context      string `json:"context"`
	StrictFormat bool   `json:"strict_format"`
}

type ReadingResponse struct {
	Text       string   `json:"text"`
	SpreadKind string   `json:"spread_kind"`
	Meta       MetaResp `json:"meta"`
}

type MetaResp struct {
	Model     string `json:"model"`
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
