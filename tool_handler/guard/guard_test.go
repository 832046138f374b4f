package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	toolhandler "github.com/m-v-r/docqa/tool_handler"
)

type fakeHandler struct {
	spec     toolhandler.ToolSpec
	lastArgs map[string]any
	content  string
}

func (f *fakeHandler) Spec() toolhandler.ToolSpec { return f.spec }

func (f *fakeHandler) Invoke(_ context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	f.lastArgs = req.Arguments
	return toolhandler.ToolResponse{Content: f.content}, nil
}

var approved = []string{"python.langchain.com", "go.dev"}

func TestSearchGuardPassesRestrictedQuery(t *testing.T) {
	inner := &fakeHandler{content: `[{"title":"Agents"}]`}
	g := NewSearchGuard(inner, approved, 3)

	rsp, err := g.Invoke(context.Background(), toolhandler.ToolRequest{
		Arguments: map[string]any{"query": "LangChain agents site:python.langchain.com", "n_results": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"Agents"}]`, rsp.Content)
	assert.Equal(t, 2, inner.lastArgs["n_results"])
}

func TestSearchGuardRequiresSiteOperator(t *testing.T) {
	g := NewSearchGuard(&fakeHandler{}, approved, 3)

	_, err := g.Invoke(context.Background(), toolhandler.ToolRequest{
		Arguments: map[string]any{"query": "LangChain agents"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site:")
}

func TestSearchGuardRejectsUnapprovedDomain(t *testing.T) {
	g := NewSearchGuard(&fakeHandler{}, approved, 3)

	_, err := g.Invoke(context.Background(), toolhandler.ToolRequest{
		Arguments: map[string]any{"query": "agents site:python.langchain.com OR site:evil.example.com"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evil.example.com")
}

func TestSearchGuardClampsResultCount(t *testing.T) {
	inner := &fakeHandler{}
	g := NewSearchGuard(inner, approved, 3)

	_, err := g.Invoke(context.Background(), toolhandler.ToolRequest{
		Arguments: map[string]any{"query": "agents site:go.dev", "n_results": 50},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, inner.lastArgs["n_results"])
}

func TestSearchGuardDefaultsResultCount(t *testing.T) {
	inner := &fakeHandler{}
	g := NewSearchGuard(inner, approved, 5)

	_, err := g.Invoke(context.Background(), toolhandler.ToolRequest{
		Arguments: map[string]any{"query": "agents site:go.dev"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, inner.lastArgs["n_results"])
}

func TestSearchGuardRequiresQuery(t *testing.T) {
	g := NewSearchGuard(&fakeHandler{}, approved, 3)

	_, err := g.Invoke(context.Background(), toolhandler.ToolRequest{Arguments: map[string]any{}})
	require.Error(t, err)
}

func TestSearchGuardOverridesDescription(t *testing.T) {
	inner := &fakeHandler{spec: toolhandler.ToolSpec{Name: "search_google", Description: "remote description"}}
	g := NewSearchGuard(inner, approved, 3)

	spec := g.Spec()
	assert.Equal(t, "search_google", spec.Name)
	assert.Contains(t, spec.Description, "site:")
	assert.NotContains(t, spec.Description, "remote description")
}

func TestScrapeGuardPassesApprovedURL(t *testing.T) {
	inner := &fakeHandler{content: "page text"}
	g := NewScrapeGuard(inner, approved)

	rsp, err := g.Invoke(context.Background(), toolhandler.ToolRequest{
		Arguments: map[string]any{"url": "https://python.langchain.com/docs/modules/agents"},
	})
	require.NoError(t, err)
	assert.Equal(t, "page text", rsp.Content)
}

func TestScrapeGuardAllowsSubdomains(t *testing.T) {
	g := NewScrapeGuard(&fakeHandler{}, []string{"langchain.com"})

	_, err := g.Invoke(context.Background(), toolhandler.ToolRequest{
		Arguments: map[string]any{"url": "https://docs.langchain.com/start"},
	})
	require.NoError(t, err)
}

func TestScrapeGuardRejectsUnapprovedHost(t *testing.T) {
	g := NewScrapeGuard(&fakeHandler{}, approved)

	_, err := g.Invoke(context.Background(), toolhandler.ToolRequest{
		Arguments: map[string]any{"url": "https://evil.example.com/page"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evil.example.com")
}

func TestScrapeGuardRequiresHTTPScheme(t *testing.T) {
	g := NewScrapeGuard(&fakeHandler{}, approved)

	_, err := g.Invoke(context.Background(), toolhandler.ToolRequest{
		Arguments: map[string]any{"url": "ftp://go.dev/file"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http(s)")
}
