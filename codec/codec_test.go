package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Session string  `json:"session_id"`
	ID      int64   `json:"id"`
	Trace   *string `json:"trace_id,omitempty"`
}

func TestGoJSONRoundTrip(t *testing.T) {
	trace := "trace-123"
	in := sample{Session: "sessA", ID: 42, Trace: &trace}

	b, err := Default.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"sessA","id":42,"trace_id":"trace-123"}`, string(b))

	var out sample
	require.NoError(t, Default.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestDefaultIsGoJSON(t *testing.T) {
	assert.Equal(t, "go-json", Default.Name())
}

// compact is a Codec without indentation support.
type compact struct{}

func (compact) Marshal(v any) ([]byte, error)      { return GoJSON{}.Marshal(v) }
func (compact) Unmarshal(data []byte, v any) error { return GoJSON{}.Unmarshal(data, v) }
func (compact) Name() string                       { return "compact" }

func TestMarshalIndent(t *testing.T) {
	b, err := MarshalIndent(Default, sample{Session: "s", ID: 1}, "  ")
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  \"id\": 1")

	b, err = MarshalIndent(compact{}, sample{Session: "s", ID: 1}, "  ")
	require.NoError(t, err)
	assert.Equal(t, `{"session_id":"s","id":1}`, string(b))
}
