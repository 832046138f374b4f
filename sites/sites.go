package sites

import (
	"bytes"
	"compress/zlib"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Source is one knowledge source the agent is allowed to search and scrape.
type Source struct {
	Site        string `json:"site"`
	Domain      string `json:"domain"`
	Description string `json:"description"`
}

// Decode turns the compressed configuration secret into the source list.
// The blob is a zlib-compressed JSON array, base64-encoded for transport.
func Decode(encoded string) ([]Source, error) {
	compressed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("sites config is not valid base64: %w", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("sites config is not valid zlib: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress sites config: %w", err)
	}

	var records []map[string]string
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("sites config is not a JSON array: %w", err)
	}

	sources := make([]Source, 0, len(records))
	for i, record := range records {
		var missing []string
		for _, field := range []string{"site", "domain", "description"} {
			if len(strings.TrimSpace(record[field])) == 0 {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("record %d is missing required fields: %s", i, strings.Join(missing, ", "))
		}
		sources = append(sources, Source{
			Site:        record["site"],
			Domain:      record["domain"],
			Description: record["description"],
		})
	}

	return sources, nil
}

// Encode is the inverse of Decode. Used by tooling that prepares the secret.
func Encode(sources []Source) (string, error) {
	raw, err := json.Marshal(sources)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Fingerprint identifies a raw config blob so callers can detect changes
// without decoding it again.
func Fingerprint(encoded string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(encoded)))
	return hex.EncodeToString(sum[:8])
}

// Domains returns the unique domain list in first-seen order.
func Domains(sources []Source) []string {
	seen := make(map[string]bool, len(sources))
	var domains []string
	for _, s := range sources {
		if seen[s.Domain] {
			continue
		}
		seen[s.Domain] = true
		domains = append(domains, s.Domain)
	}
	return domains
}

// Markdown renders the knowledge-sources section of the system prompt,
// grouping sources by domain in first-seen order.
func Markdown(sources []Source) string {
	groups := make(map[string][]Source, len(sources))
	var order []string

	for _, s := range sources {
		if _, ok := groups[s.Domain]; !ok {
			order = append(order, s.Domain)
		}
		groups[s.Domain] = append(groups[s.Domain], s)
	}

	var sb bytes.Buffer
	for _, domain := range order {
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", domain))
		for _, s := range groups[domain] {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", s.Site, s.Description))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
