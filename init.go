package docqa

import (
	"context"
	"fmt"

	"github.com/m-v-r/docqa/generator"
	googlegenerator "github.com/m-v-r/docqa/generator/google"
	"github.com/m-v-r/docqa/history"
	memoryhistory "github.com/m-v-r/docqa/history/memory"
	"github.com/m-v-r/docqa/sites"
	toolhandler "github.com/m-v-r/docqa/tool_handler"
	"github.com/m-v-r/docqa/tool_handler/guard"
	toolprovider "github.com/m-v-r/docqa/tool_provider"
	utcpprovider "github.com/m-v-r/docqa/tool_provider/utcp"
)

// Remote tool names on the tool-calling platform.
const (
	SearchToolName = "search_google"
	ScrapeToolName = "scrape_url"
)

// InitAgent wires the default stack: Gemini generator, the two platform
// tools behind their policy guards, and an in-process history window.
func InitAgent(
	ctx context.Context,
	platformApiKey string,
	platformAddrs []string,
	googleApiKey string,
	sources []sites.Source,
	params Params,
) (*Agent, error) {
	gen := googlegenerator.NewGenerator(
		generator.WithApiKey(googleApiKey),
		generator.WithTemperature(params.Temperature),
		generator.WithMaxTokens(params.MaxTokens),
		generator.WithTimeout(params.Timeout),
	)

	provider := utcpprovider.NewToolProvider(
		toolprovider.WithAddrs(platformAddrs...),
		toolprovider.WithApiKey(platformApiKey),
	)

	handlers, err := provider.Load(ctx, SearchToolName, ScrapeToolName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize platform tools: %w", err)
	}

	domains := sites.Domains(sources)

	guarded := []toolhandler.ToolHandler{
		guard.NewSearchGuard(handlers[0], domains, params.MaxSearchResults),
		guard.NewScrapeGuard(handlers[1], domains),
	}

	hist := memoryhistory.NewHistory(
		history.WithWindow(8),
	)

	return New(sources, gen, guarded, hist, params, 8)
}
