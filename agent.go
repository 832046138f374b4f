// Package docqa is a Q&A agent restricted to a configured set of
// documentation websites. The language model and the search/scrape tools are
// remote; this package decodes the site configuration, builds the prompt and
// tool list, and runs the structured-chat loop.
package docqa

import (
	"context"
	"time"

	"github.com/m-v-r/docqa/generator"
	"github.com/m-v-r/docqa/history"
	agentservice "github.com/m-v-r/docqa/internal/service/agent"
	"github.com/m-v-r/docqa/sites"
	toolhandler "github.com/m-v-r/docqa/tool_handler"
)

// Params is the tunable parameter tuple forwarded to the model and tools.
type Params struct {
	Temperature      float32
	MaxTokens        int
	Timeout          time.Duration
	MaxSearchResults int
}

// DefaultParams match the platform tool surface defaults.
func DefaultParams() Params {
	return Params{
		Temperature:      0.0,
		MaxTokens:        2048,
		Timeout:          60 * time.Second,
		MaxSearchResults: 5,
	}
}

type Agent struct {
	service *agentservice.Service
}

// Chat forwards one question to the agent and returns its answer.
func (a *Agent) Chat(ctx context.Context, sessionId string, userInput string) (string, error) {
	return a.service.Respond(ctx, sessionId, userInput)
}

func New(
	sources []sites.Source,
	gen generator.Generator,
	toolHandlers []toolhandler.ToolHandler,
	hist history.History,
	params Params,
	contextLimit int,
) (*Agent, error) {
	service, err := agentservice.New(
		gen,
		toolHandlers,
		hist,
		sources,
		params.MaxSearchResults,
		contextLimit,
	)
	if err != nil {
		return nil, err
	}

	return &Agent{
		service: service,
	}, nil
}
