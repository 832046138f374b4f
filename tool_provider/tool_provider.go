package toolprovider

import (
	"context"

	toolhandler "github.com/m-v-r/docqa/tool_handler"
)

// ToolProvider initializes remotely hosted tools and exposes them as
// local tool handlers.
type ToolProvider interface {
	Load(ctx context.Context, names ...string) ([]toolhandler.ToolHandler, error)
}
