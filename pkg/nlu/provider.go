package nlu

import (
	"context"
)

const (
	PartTypeText    = "text"
	PartTypePayload = "payload"
)

// Part is one normalized entry of an engine response. Text parts carry
// joined plain-text fragments; payload parts pass the engine's custom
// JSON through untouched.
type Part struct {
	Type    string                 `json:"type"`
	Text    string                 `json:"text,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Result is the provider-agnostic shape of one DetectIntent exchange.
type Result struct {
	Parts       []Part
	Intent      string
	Confidence  float64
	CurrentPage string
}

// Provider defines the contract for any NLU backend. The session ID is
// the continuity key correlating exchanges into one conversation inside
// the engine; the engine itself is concurrency-tolerant per session.
type Provider interface {
	DetectIntent(ctx context.Context, text, sessionId string) (*Result, error)
}
