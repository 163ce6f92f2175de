package searchctx

import (
	"fmt"

	"github.com/hupe1980/searchctx/wire"
)

// Codec encodes and decodes ContextIDs for peers at a negotiated protocol
// version. A Codec is immutable and safe for concurrent use.
type Codec struct {
	sessionIDSince wire.Version
	metrics        MetricsCollector
	logger         *Logger
}

// DefaultCodec gates session ids on wire.V7_7_0 and neither logs nor records
// metrics.
var DefaultCodec = NewCodec()

// NewCodec returns a Codec configured by optFns.
func NewCodec(optFns ...Option) *Codec {
	o := applyOptions(optFns)
	return &Codec{
		sessionIDSince: o.sessionIDSince,
		metrics:        o.metricsCollector,
		logger:         o.logger,
	}
}

// SessionIDSince returns the first protocol version that carries session ids.
func (c *Codec) SessionIDSince() wire.Version { return c.sessionIDSince }

// SessionIDOnWire reports whether a peer at version exchanges session ids,
// given the version since which they are supported.
func SessionIDOnWire(version, since wire.Version) bool {
	return version.OnOrAfter(since)
}

// Encode writes id for the peer behind w.
//
// Layout: id (long), session id (string, only for peers on or after the
// session threshold), trace id (optional string). For older peers the session
// id is dropped silently; it is not an error. Strings that could not be read
// back fail with wire.ErrInvalidString before anything is written.
func (c *Codec) Encode(w *wire.Writer, id *ContextID) (err error) {
	version := w.Version()
	dropped := false
	defer func() {
		c.metrics.RecordEncode(version, dropped, err)
		c.logger.LogEncode(id, version, err)
	}()

	if id == nil {
		return fmt.Errorf("%w: nil context id", ErrInvariantViolation)
	}
	withSession := SessionIDOnWire(version, c.sessionIDSince)
	if withSession {
		if err := wire.CheckString(id.key.SessionID); err != nil {
			return fmt.Errorf("session id: %w", err)
		}
	}
	if id.trace.set {
		if err := wire.CheckString(id.trace.value); err != nil {
			return fmt.Errorf("trace id: %w", err)
		}
	}

	if err := w.WriteLong(id.key.ID); err != nil {
		return fmt.Errorf("write id: %w", err)
	}
	if withSession {
		if err := w.WriteString(id.key.SessionID); err != nil {
			return fmt.Errorf("write session id: %w", err)
		}
	} else if id.key.SessionID != "" {
		dropped = true
		c.logger.LogSessionDropped(id, version, c.sessionIDSince)
	}
	if err := w.WriteOptionalString(id.trace.value, id.trace.set); err != nil {
		return fmt.Errorf("write trace id: %w", err)
	}
	return nil
}

// Decode reads a ContextID written by the peer behind r. For peers before the
// session threshold the session id is not read and decodes as "".
func (c *Codec) Decode(r *wire.Reader) (id *ContextID, err error) {
	version := r.Version()
	defer func() {
		c.metrics.RecordDecode(version, err)
		c.logger.LogDecode(id, version, err)
	}()

	n, err := r.ReadLong()
	if err != nil {
		return nil, fmt.Errorf("decode context id: read id: %w", err)
	}
	var sessionID string
	if SessionIDOnWire(version, c.sessionIDSince) {
		if sessionID, err = r.ReadString(); err != nil {
			return nil, fmt.Errorf("decode context id: read session id: %w", err)
		}
	}
	traceID, ok, err := r.ReadOptionalString()
	if err != nil {
		return nil, fmt.Errorf("decode context id: read trace id: %w", err)
	}

	id = New(sessionID, n)
	if ok {
		id.SetDistributedTraceID(traceID)
	}
	return id, nil
}

// EncodeTo encodes c with DefaultCodec.
func (c *ContextID) EncodeTo(w *wire.Writer) error {
	return DefaultCodec.Encode(w, c)
}

// Decode reads a ContextID with DefaultCodec.
func Decode(r *wire.Reader) (*ContextID, error) {
	return DefaultCodec.Decode(r)
}
