package utcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	goutcp "github.com/universal-tool-calling-protocol/go-utcp"
	toolhandler "github.com/m-v-r/docqa/tool_handler"
	"github.com/m-v-r/docqa/tool_handler/utcp"
	toolprovider "github.com/m-v-r/docqa/tool_provider"
)

const discoveryLimit = 50

type utcpToolProvider struct {
	options toolprovider.Options
	client  goutcp.UtcpClientInterface
}

// Load initializes the named remote tools. Every requested name must exist
// on the platform; a missing tool is an error rather than a silent gap.
func (tp *utcpToolProvider) Load(ctx context.Context, names ...string) ([]toolhandler.ToolHandler, error) {
	remoteTools, err := tp.client.SearchTools("", discoveryLimit)
	if err != nil {
		return nil, fmt.Errorf("utcp discovery failed: %w", err)
	}

	byName := make(map[string]toolhandler.ToolHandler, len(remoteTools))
	for _, tool := range remoteTools {
		spec := toolhandler.ToolSpec{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.Inputs.Properties,
		}
		byName[strings.ToLower(tool.Name)] = utcp.NewToolHandler(
			utcp.WithUtcpClient(tp.client),
			utcp.WithToolName(tool.Name),
			utcp.WithToolSpec(spec),
		)
	}

	var handlers []toolhandler.ToolHandler
	for _, name := range names {
		handler, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("tool %s is not available on the platform", name)
		}
		handlers = append(handlers, handler)
	}

	return handlers, nil
}

func (tp *utcpToolProvider) createTempConfig(addrs []string, apiKey string) (string, error) {
	type providerConfig struct {
		Type    string            `json:"provider_type"`
		Name    string            `json:"name"`
		URL     string            `json:"url"`
		Method  string            `json:"http_method"`
		Headers map[string]string `json:"headers"`
	}

	config := struct {
		Providers []providerConfig `json:"providers"`
	}{}

	for _, u := range addrs {
		parsed, err := url.Parse(u)
		if err != nil {
			return "", err
		}
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if len(apiKey) > 0 {
			headers["Authorization"] = "Bearer " + apiKey
		}
		config.Providers = append(config.Providers, providerConfig{
			Type:    "http",
			Name:    parsed.Hostname(),
			URL:     u,
			Method:  "POST",
			Headers: headers,
		})
	}

	f, err := os.CreateTemp("", "utcp_config_*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(config); err != nil {
		return "", err
	}

	return f.Name(), nil
}

func NewToolProvider(opts ...toolprovider.Option) toolprovider.ToolProvider {
	options := toolprovider.NewOptions(opts...)

	tp := &utcpToolProvider{
		options: options,
	}

	var configPath string

	if len(options.Addrs) > 0 {
		tmpPath, err := tp.createTempConfig(options.Addrs, options.ApiKey)
		if err != nil {
			panic(err)
		}
		configPath = tmpPath
		defer os.Remove(tmpPath)
	}

	client, err := goutcp.NewUTCPClient(
		context.Background(),
		&goutcp.UtcpClientConfig{
			ProvidersFilePath: configPath,
		},
		nil,
		nil,
	)
	if err != nil {
		panic(err)
	}

	tp.client = client

	return tp
}
