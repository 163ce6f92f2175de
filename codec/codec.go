// Package codec centralizes the JSON encoding used for the human-readable
// form of context identities.
//
// The binary wire form lives in package wire; codecs here only serve
// diagnostics and CLI output.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Indenter is implemented by codecs that can pretty-print.
type Indenter interface {
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
}

// Default is the codec used for ContextID JSON and CLI output.
var Default Codec = GoJSON{}

// MarshalIndent pretty-prints v with c when it supports indentation and falls
// back to c.Marshal otherwise.
func MarshalIndent(c Codec, v any, indent string) ([]byte, error) {
	if in, ok := c.(Indenter); ok {
		return in.MarshalIndent(v, "", indent)
	}
	return c.Marshal(v)
}
