package searchctx

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/hupe1980/searchctx/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, c *Codec, id *ContextID, v wire.Version) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Encode(wire.NewWriter(&buf, v), id))
	return buf.Bytes()
}

func TestRoundTripModern(t *testing.T) {
	versions := []wire.Version{wire.V7_7_0, wire.MustParseVersion("7.17.0"), wire.V8_0_0, wire.Current}
	ids := []*ContextID{
		New("sessA", 42),
		NewWithTraceID("sessA", 42, "trace-123"),
		NewWithTraceID("", 0, ""),
		New("ünïcødé", -7),
	}
	for _, v := range versions {
		for _, id := range ids {
			t.Run(v.String()+id.String(), func(t *testing.T) {
				b := encode(t, DefaultCodec, id, v)

				got, err := Decode(wire.NewReader(bytes.NewReader(b), v))
				require.NoError(t, err)
				assert.True(t, id.Equal(got))
				assert.Equal(t, id.SessionID(), got.SessionID())
				assert.True(t, id.SameTrace(got))
			})
		}
	}
}

func TestRoundTripScenario(t *testing.T) {
	id := NewWithTraceID("sessA", 42, "trace-123")

	var buf bytes.Buffer
	require.NoError(t, id.EncodeTo(wire.NewWriter(&buf, wire.Current)))

	got, err := Decode(wire.NewReader(&buf, wire.Current))
	require.NoError(t, err)
	assert.Equal(t, "sessA", got.SessionID())
	assert.Equal(t, int64(42), got.ID())
	traceID, ok := got.DistributedTraceID()
	require.True(t, ok)
	assert.Equal(t, "trace-123", traceID)
	assert.Equal(t, "[sessA][42]", got.String())
	assert.Zero(t, buf.Len())
}

func TestLegacyPeerDropsSession(t *testing.T) {
	for _, v := range []wire.Version{wire.V7_0_0, wire.V7_6_0, wire.MustParseVersion("7.6.2")} {
		t.Run(v.String(), func(t *testing.T) {
			for _, id := range []*ContextID{New("sessA", 42), NewWithTraceID("sessA", 42, "trace-123")} {
				b := encode(t, DefaultCodec, id, v)

				got, err := Decode(wire.NewReader(bytes.NewReader(b), v))
				require.NoError(t, err)
				assert.Equal(t, "", got.SessionID())
				assert.Equal(t, id.ID(), got.ID())
				assert.True(t, id.SameTrace(got))
				assert.False(t, id.Equal(got))
			}
		})
	}
}

func TestWireLayout(t *testing.T) {
	id := NewWithTraceID("ab", 1, "t")

	modern := encode(t, DefaultCodec, id, wire.V7_7_0)
	assert.Equal(t, []byte{
		0, 0, 0, 0, 0, 0, 0, 1, // id
		2, 'a', 'b', // session id
		1, 1, 't', // trace id
	}, modern)

	legacy := encode(t, DefaultCodec, id, wire.V7_6_0)
	assert.Equal(t, []byte{
		0, 0, 0, 0, 0, 0, 0, 1, // id
		1, 1, 't', // trace id
	}, legacy)

	noTrace := encode(t, DefaultCodec, New("", 1), wire.V7_6_0)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1, 0}, noTrace)
}

func TestSessionIDOnWire(t *testing.T) {
	assert.True(t, SessionIDOnWire(wire.V7_7_0, wire.V7_7_0))
	assert.True(t, SessionIDOnWire(wire.V8_0_0, wire.V7_7_0))
	assert.False(t, SessionIDOnWire(wire.V7_6_0, wire.V7_7_0))
}

func TestConfigurableThreshold(t *testing.T) {
	c := NewCodec(WithSessionIDSince(wire.V8_0_0))
	assert.Equal(t, wire.V8_0_0, c.SessionIDSince())
	assert.Equal(t, wire.V7_7_0, DefaultCodec.SessionIDSince())

	id := New("sessA", 42)
	b := encode(t, c, id, wire.V7_7_0)
	got, err := c.Decode(wire.NewReader(bytes.NewReader(b), wire.V7_7_0))
	require.NoError(t, err)
	assert.Equal(t, "", got.SessionID())

	b = encode(t, c, id, wire.V8_0_0)
	got, err = c.Decode(wire.NewReader(bytes.NewReader(b), wire.V8_0_0))
	require.NoError(t, err)
	assert.True(t, id.Equal(got))

	assert.Equal(t, wire.V7_7_0, NewCodec(WithSessionIDSince(0)).SessionIDSince())
}

func TestDecodeTruncated(t *testing.T) {
	id := NewWithTraceID("sessA", 42, "trace-123")
	full := encode(t, DefaultCodec, id, wire.Current)

	for cut := 0; cut < len(full); cut++ {
		got, err := Decode(wire.NewReader(bytes.NewReader(full[:cut]), wire.Current))
		assert.Nil(t, got, "cut at %d", cut)
		assert.ErrorIs(t, err, ErrMalformedInput, "cut at %d", cut)
	}
}

func TestDecodeErrorNamesField(t *testing.T) {
	full := encode(t, DefaultCodec, NewWithTraceID("sessA", 42, "trace-123"), wire.Current)

	_, err := Decode(wire.NewReader(bytes.NewReader(full[:4]), wire.Current))
	assert.ErrorContains(t, err, "read id")

	_, err = Decode(wire.NewReader(bytes.NewReader(full[:10]), wire.Current))
	assert.ErrorContains(t, err, "read session id")

	_, err = Decode(wire.NewReader(bytes.NewReader(full[:len(full)-1]), wire.Current))
	assert.ErrorContains(t, err, "read trace id")
}

func TestEncodeNil(t *testing.T) {
	err := DefaultCodec.Encode(wire.NewWriter(io.Discard, wire.Current), nil)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestEncodeWriteError(t *testing.T) {
	err := New("s", 1).EncodeTo(wire.NewWriter(errWriter{}, wire.Current))
	assert.ErrorContains(t, err, "write id")
}

func TestCodecMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	c := NewCodec(WithMetricsCollector(metrics))

	encode(t, c, New("sessA", 1), wire.Current)
	encode(t, c, New("sessA", 2), wire.V7_6_0)
	encode(t, c, New("", 3), wire.V7_6_0)
	_ = c.Encode(wire.NewWriter(io.Discard, wire.Current), nil)

	b := encode(t, c, New("sessA", 4), wire.Current)
	_, err := c.Decode(wire.NewReader(bytes.NewReader(b), wire.Current))
	require.NoError(t, err)
	_, err = c.Decode(wire.NewReader(bytes.NewReader(b[:3]), wire.Current))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(5), stats.EncodeCount)
	assert.Equal(t, int64(1), stats.EncodeErrors)
	assert.Equal(t, int64(1), stats.SessionIDsDropped)
	assert.Equal(t, int64(2), stats.DecodeCount)
	assert.Equal(t, int64(1), stats.DecodeErrors)
}

func TestCodecLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := NewCodec(WithLogger(logger))

	encode(t, c, New("sessA", 7), wire.V7_6_0)
	_, err := c.Decode(wire.NewReader(bytes.NewReader(nil), wire.Current))
	require.Error(t, err)

	out := buf.String()
	require.Contains(t, out, "session id omitted for legacy peer")
	require.Contains(t, out, `"context_id":"[sessA][7]"`)
	require.Contains(t, out, `"protocol":"7.6.0"`)
	require.Contains(t, out, "decode context id failed")
}

func TestNilOptionsFallBack(t *testing.T) {
	c := NewCodec(nil, WithLogger(nil), WithMetricsCollector(nil))
	b := encode(t, c, New("s", 1), wire.Current)
	_, err := c.Decode(wire.NewReader(bytes.NewReader(b), wire.Current))
	require.NoError(t, err)
}

func TestEncodeRejectsUnreadableStrings(t *testing.T) {
	tests := []struct {
		name string
		id   *ContextID
	}{
		{"session not UTF-8", New("sess\xff", 42)},
		{"trace not UTF-8", NewWithTraceID("s", 1, "t\xfe")},
		{"session too long", New(strings.Repeat("x", wire.MaxStringLength+1), 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tt.id.EncodeTo(wire.NewWriter(&buf, wire.Current))
			assert.ErrorIs(t, err, ErrInvalidString)
			assert.Zero(t, buf.Len(), "failed encode must not touch the stream")

			_, err = EncodeToken(tt.id, wire.Current)
			assert.ErrorIs(t, err, ErrInvalidString)
		})
	}
}

func TestEncodeLegacyIgnoresUnsentSession(t *testing.T) {
	id := New("sess\xff", 42)
	b := encode(t, DefaultCodec, id, wire.V7_6_0)

	got, err := Decode(wire.NewReader(bytes.NewReader(b), wire.V7_6_0))
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID())
}
