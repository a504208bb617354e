package echo

import (
	"context"
	"fmt"

	"campus-chatbot-be/pkg/nlu"
)

// Provider is a loopback NLU backend for local development: it answers
// every utterance by repeating it. No credentials, no network.
type Provider struct{}

var _ nlu.Provider = (*Provider)(nil)

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) DetectIntent(ctx context.Context, text, sessionId string) (*nlu.Result, error) {
	return &nlu.Result{
		Parts: []nlu.Part{
			{Type: nlu.PartTypeText, Text: fmt.Sprintf("You said: %s", text)},
		},
		Intent:      "echo",
		Confidence:  1.0,
		CurrentPage: "Echo",
	}, nil
}
