package searchctx

import (
	"fmt"

	"github.com/hupe1980/searchctx/codec"
)

type jsonContextID struct {
	SessionID *string `json:"session_id"`
	ID        *int64  `json:"id"`
	TraceID   *string `json:"trace_id,omitempty"`
}

// MarshalJSON encodes c as {"session_id": ..., "id": ..., "trace_id": ...}.
// trace_id is omitted when unset.
func (c *ContextID) MarshalJSON() ([]byte, error) {
	v := jsonContextID{
		SessionID: &c.key.SessionID,
		ID:        &c.key.ID,
	}
	if c.trace.set {
		v.TraceID = &c.trace.value
	}
	return codec.Default.Marshal(v)
}

// UnmarshalJSON decodes the form written by MarshalJSON. A missing or null
// session_id yields ErrInvariantViolation.
func (c *ContextID) UnmarshalJSON(data []byte) error {
	var v jsonContextID
	if err := codec.Default.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.ID == nil {
		return fmt.Errorf("%w: id is required", ErrInvariantViolation)
	}
	parsed, err := FromParts(v.SessionID, *v.ID, v.TraceID)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}
