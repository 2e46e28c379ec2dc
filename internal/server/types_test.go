package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_MarshalShape(t *testing.T) {
	s := New("calc", "uvx", []string{"mcp-server-calculator"})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "uvx", raw["command"])
	assert.Equal(t, []any{"mcp-server-calculator"}, raw["args"])
	// Name is the map key in the document, never a field of the entry
	assert.NotContains(t, raw, "name")
}

func TestServer_NilArgsMarshalAsEmptyList(t *testing.T) {
	s := &Server{Name: "x", Command: "uv"}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"uv","args":[]}`, string(data))
}

func TestServer_UnknownFieldsSurviveRoundTrip(t *testing.T) {
	input := `{"command":"npx","args":["-y","server-github"],"env":{"TOKEN":"abc"}}`

	var s Server
	require.NoError(t, json.Unmarshal([]byte(input), &s))
	assert.Equal(t, "npx", s.Command)

	out, err := json.Marshal(&s)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestNewFromParts(t *testing.T) {
	s := NewFromParts("weather", "uv", "/path/to/weather", "weather.py")

	assert.Equal(t, "weather", s.Name)
	assert.Equal(t, "uv", s.Command)
	assert.Equal(t, []string{"--directory", "/path/to/weather", "run", "weather.py"}, s.Args)
}

func TestServer_Clone(t *testing.T) {
	orig := New("a", "uv", []string{"run", "a.py"})
	clone := orig.Clone()

	clone.Args[0] = "mutated"
	assert.Equal(t, "run", orig.Args[0], "clone must not share the args slice")
}

func TestDocument_MarshalShape(t *testing.T) {
	doc := NewDocument()
	doc.Active["server1"] = New("server1", "uv", []string{"run", "s1.py"})
	doc.Inactive["server3"] = New("server3", "uv", []string{"run", "s3.py"})

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Contains(t, raw, ActiveKey)
	require.Contains(t, raw, InactiveKey)
}

func TestDocument_UnmarshalFillsNames(t *testing.T) {
	input := `{
		"mcpServers": {"server1": {"command": "uv", "args": []}},
		"unusedMcpServers": {"server3": {"command": "uv", "args": []}}
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))

	require.Contains(t, doc.Active, "server1")
	assert.Equal(t, "server1", doc.Active["server1"].Name)
	require.Contains(t, doc.Inactive, "server3")
	assert.Equal(t, "server3", doc.Inactive["server3"].Name)
}

func TestDocument_MissingBucketStaysNil(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"mcpServers": {}}`), &doc))

	assert.NotNil(t, doc.Active)
	assert.Nil(t, doc.Inactive)
}

func TestDocument_UnknownTopLevelFieldsSurvive(t *testing.T) {
	input := `{
		"mcpServers": {},
		"unusedMcpServers": {},
		"globalShortcut": "Cmd+Space"
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))

	out, err := json.Marshal(&doc)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestDocument_Contains(t *testing.T) {
	doc := NewDocument()
	doc.Active["a"] = New("a", "uv", nil)
	doc.Inactive["b"] = New("b", "uv", nil)

	assert.True(t, doc.Contains("a"))
	assert.True(t, doc.Contains("b"))
	assert.False(t, doc.Contains("c"))
}
