// Package guard wraps remote tool handlers with the local policy the agent
// promises in its prompt: searches stay site-restricted to approved domains,
// scrapes stay on approved hosts, and result counts stay bounded.
package guard

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	toolhandler "github.com/m-v-r/docqa/tool_handler"
	getsafe "github.com/m-v-r/docqa/util/get_safe"
)

var sitePattern = regexp.MustCompile(`(?i)site:([^\s]+)`)

type searchGuard struct {
	inner      toolhandler.ToolHandler
	domains    []string
	maxResults int
}

func (g *searchGuard) Spec() toolhandler.ToolSpec {
	spec := g.inner.Spec()
	spec.Description = searchDescription
	return spec
}

func (g *searchGuard) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	query := strings.TrimSpace(getsafe.String(req.Arguments, "query"))
	if len(query) == 0 {
		return toolhandler.ToolResponse{}, fmt.Errorf("query is required")
	}

	filters := sitePattern.FindAllStringSubmatch(query, -1)
	if len(filters) == 0 {
		return toolhandler.ToolResponse{}, fmt.Errorf("query must restrict search with a site: operator, approved domains: %s", strings.Join(g.domains, ", "))
	}

	for _, filter := range filters {
		domain := strings.TrimSpace(filter[1])
		if !approvedHost(domain, g.domains) {
			return toolhandler.ToolResponse{}, fmt.Errorf("domain %s is not an approved knowledge source", domain)
		}
	}

	if req.Arguments == nil {
		req.Arguments = map[string]any{}
	}

	n := getsafe.Int(req.Arguments, "n_results")
	if n <= 0 || n > g.maxResults {
		req.Arguments["n_results"] = g.maxResults
	}

	return g.inner.Invoke(ctx, req)
}

type scrapeGuard struct {
	inner   toolhandler.ToolHandler
	domains []string
}

func (g *scrapeGuard) Spec() toolhandler.ToolSpec {
	spec := g.inner.Spec()
	spec.Description = scrapeDescription
	return spec
}

func (g *scrapeGuard) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	raw := strings.TrimSpace(getsafe.String(req.Arguments, "url"))
	if len(raw) == 0 {
		return toolhandler.ToolResponse{}, fmt.Errorf("url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return toolhandler.ToolResponse{}, fmt.Errorf("invalid url: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return toolhandler.ToolResponse{}, fmt.Errorf("url must include http(s)://")
	}

	if !approvedHost(parsed.Hostname(), g.domains) {
		return toolhandler.ToolResponse{}, fmt.Errorf("host %s is not an approved knowledge source", parsed.Hostname())
	}

	return g.inner.Invoke(ctx, req)
}

// approvedHost accepts exact matches and subdomains of approved domains.
func approvedHost(host string, domains []string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, domain := range domains {
		domain = strings.ToLower(domain)
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func NewSearchGuard(inner toolhandler.ToolHandler, domains []string, maxResults int) toolhandler.ToolHandler {
	if inner == nil {
		panic("inner tool handler is required")
	}

	if maxResults <= 0 {
		maxResults = 3
	}

	return &searchGuard{
		inner:      inner,
		domains:    domains,
		maxResults: maxResults,
	}
}

func NewScrapeGuard(inner toolhandler.ToolHandler, domains []string) toolhandler.ToolHandler {
	if inner == nil {
		panic("inner tool handler is required")
	}

	return &scrapeGuard{
		inner:   inner,
		domains: domains,
	}
}
