package sites

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSources = []Source{
	{Site: "LangChain Python Docs", Domain: "python.langchain.com", Description: "Agent and chain guides"},
	{Site: "LangChain API Reference", Domain: "python.langchain.com", Description: "API reference"},
	{Site: "Go Docs", Domain: "go.dev", Description: "Go language documentation"},
}

func compress(t *testing.T, raw []byte) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeRoundTrip(t *testing.T) {
	encoded, err := Encode(testSources)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, testSources, decoded)
}

func TestDecodeKnownBlob(t *testing.T) {
	encoded := compress(t, []byte(`[{"site":"Go Docs","domain":"go.dev","description":"Go language documentation"}]`))

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "go.dev", decoded[0].Domain)
	assert.Equal(t, "Go Docs", decoded[0].Site)
}

func TestDecodeBadBase64(t *testing.T) {
	_, err := Decode("not base64 at all!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64")
}

func TestDecodeBadZlib(t *testing.T) {
	_, err := Decode(base64.StdEncoding.EncodeToString([]byte("plain text, not zlib")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zlib")
}

func TestDecodeBadJSON(t *testing.T) {
	_, err := Decode(compress(t, []byte(`{"site":"not an array"}`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")
}

func TestDecodeMissingFields(t *testing.T) {
	_, err := Decode(compress(t, []byte(`[{"site":"Go Docs","domain":"go.dev","description":"ok"},{"site":"Broken"}]`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
	assert.Contains(t, err.Error(), "domain")
	assert.Contains(t, err.Error(), "description")
}

func TestFingerprintStable(t *testing.T) {
	encoded, err := Encode(testSources)
	require.NoError(t, err)

	assert.Equal(t, Fingerprint(encoded), Fingerprint(encoded))
	assert.Equal(t, Fingerprint(encoded), Fingerprint(" "+encoded+"\n"))
	assert.NotEqual(t, Fingerprint(encoded), Fingerprint(encoded+"x"))
}

func TestDomains(t *testing.T) {
	assert.Equal(t, []string{"python.langchain.com", "go.dev"}, Domains(testSources))
}

func TestMarkdownGroupsByDomain(t *testing.T) {
	md := Markdown(testSources)

	assert.Contains(t, md, "## python.langchain.com")
	assert.Contains(t, md, "## go.dev")
	assert.Contains(t, md, "- LangChain Python Docs: Agent and chain guides")
	assert.Contains(t, md, "- LangChain API Reference: API reference")
	assert.Less(t, bytes.Index([]byte(md), []byte("python.langchain.com")), bytes.Index([]byte(md), []byte("go.dev")))
}
