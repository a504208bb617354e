package factory

import (
	"context"
	"fmt"

	"campus-chatbot-be/pkg/nlu"
	"campus-chatbot-be/pkg/nlu/dialogflow"
	"campus-chatbot-be/pkg/nlu/echo"
)

func NewNLUProvider(ctx context.Context, providerType string, cfg dialogflow.Config) (nlu.Provider, error) {
	switch providerType {
	case "dialogflow":
		return dialogflow.NewProvider(ctx, cfg)
	case "echo":
		return echo.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported NLU provider: %s", providerType)
	}
}
