package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docqa "github.com/m-v-r/docqa"
	"github.com/m-v-r/docqa/history/memory"
	"github.com/m-v-r/docqa/internal/service/qa"
	"github.com/m-v-r/docqa/sites"
)

type echoGenerator struct{}

func (g *echoGenerator) Generate(_ context.Context, _ string) (string, error) {
	return `{"action": "Final Answer", "action_input": "the answer"}`, nil
}

func testHandler(t *testing.T) http.Handler {
	t.Helper()

	encoded, err := sites.Encode([]sites.Source{
		{Site: "Go Docs", Domain: "go.dev", Description: "Go language documentation"},
	})
	require.NoError(t, err)

	qaService, err := qa.New(
		qa.Secrets{PlatformApiKey: "pk", GoogleApiKey: "gk", SitesConfig: encoded},
		nil,
		qa.WithBuilder(func(_ context.Context, sources []sites.Source, params docqa.Params) (*docqa.Agent, error) {
			return docqa.New(sources, &echoGenerator{}, nil, memory.NewHistory(), params, 8)
		}),
	)
	require.NoError(t, err)

	return NewServer(qaService).(*httpServer).srv.Handler
}

func TestChatEndpoint(t *testing.T) {
	ts := httptest.NewServer(testHandler(t))
	defer ts.Close()

	body, _ := json.Marshal(map[string]any{"input": "What is Go?", "max_search_results": 3})
	rsp, err := http.Post(ts.URL+"/v1/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer rsp.Body.Close()

	require.Equal(t, http.StatusOK, rsp.StatusCode)

	var out struct {
		Answer string `json:"answer"`
	}
	require.NoError(t, json.NewDecoder(rsp.Body).Decode(&out))
	assert.Equal(t, "the answer", out.Answer)
}

func TestChatEndpointRequiresInput(t *testing.T) {
	ts := httptest.NewServer(testHandler(t))
	defer ts.Close()

	rsp, err := http.Post(ts.URL+"/v1/chat", "application/json", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	defer rsp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, rsp.StatusCode)
}

func TestChatEndpointRejectsBadJSON(t *testing.T) {
	ts := httptest.NewServer(testHandler(t))
	defer ts.Close()

	rsp, err := http.Post(ts.URL+"/v1/chat", "application/json", bytes.NewReader([]byte(`{not json`)))
	require.NoError(t, err)
	defer rsp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, rsp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	ts := httptest.NewServer(testHandler(t))
	defer ts.Close()

	rsp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer rsp.Body.Close()

	assert.Equal(t, http.StatusOK, rsp.StatusCode)
}
