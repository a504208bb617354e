package dialogflow

import (
	"context"
	"fmt"
	"strings"

	"campus-chatbot-be/pkg/nlu"

	cx "cloud.google.com/go/dialogflow/cx/apiv3"
	"cloud.google.com/go/dialogflow/cx/apiv3/cxpb"
	"google.golang.org/api/option"
)

type Config struct {
	ProjectID       string
	Location        string
	AgentID         string
	LanguageCode    string
	CredentialsFile string
}

// Provider talks to a Dialogflow CX agent. One client is shared across
// requests; the session path carries the per-user conversation token.
type Provider struct {
	client *cx.SessionsClient
	cfg    Config
}

var _ nlu.Provider = (*Provider)(nil)

func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en"
	}

	opts := []option.ClientOption{}
	if cfg.Location != "" && cfg.Location != "global" {
		// Regional agents must be reached through their regional endpoint
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-dialogflow.googleapis.com:443", cfg.Location)))
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := cx.NewSessionsClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create dialogflow sessions client: %w", err)
	}

	return &Provider{
		client: client,
		cfg:    cfg,
	}, nil
}

func (p *Provider) sessionPath(sessionId string) string {
	return fmt.Sprintf("projects/%s/locations/%s/agents/%s/sessions/%s",
		p.cfg.ProjectID, p.cfg.Location, p.cfg.AgentID, sessionId)
}

func (p *Provider) DetectIntent(ctx context.Context, text, sessionId string) (*nlu.Result, error) {
	req := &cxpb.DetectIntentRequest{
		Session: p.sessionPath(sessionId),
		QueryInput: &cxpb.QueryInput{
			Input: &cxpb.QueryInput_Text{
				Text: &cxpb.TextInput{
					Text: text,
				},
			},
			LanguageCode: p.cfg.LanguageCode,
		},
	}

	resp, err := p.client.DetectIntent(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("detect intent: %w", err)
	}

	qr := resp.GetQueryResult()

	parts := make([]nlu.Part, 0, len(qr.GetResponseMessages()))
	for _, message := range qr.GetResponseMessages() {
		if t := message.GetText(); t != nil {
			parts = append(parts, nlu.Part{
				Type: nlu.PartTypeText,
				Text: strings.Join(t.GetText(), " "),
			})
		} else if payload := message.GetPayload(); payload != nil {
			parts = append(parts, nlu.Part{
				Type:    nlu.PartTypePayload,
				Payload: payload.AsMap(),
			})
		}
	}

	intent := "No intent matched"
	if qr.GetIntent() != nil {
		intent = qr.GetIntent().GetDisplayName()
	}

	currentPage := "Unknown"
	if qr.GetCurrentPage() != nil {
		currentPage = qr.GetCurrentPage().GetDisplayName()
	}

	return &nlu.Result{
		Parts:       parts,
		Intent:      intent,
		Confidence:  float64(qr.GetIntentDetectionConfidence()),
		CurrentPage: currentPage,
	}, nil
}

func (p *Provider) Close() error {
	return p.client.Close()
}
