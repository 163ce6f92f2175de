package searchctx

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

type generatorOptions struct {
	sessionID    string
	hasSessionID bool
	startID      int64
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*generatorOptions)

// WithSessionID fixes the session id instead of generating a random one.
// The empty string is honored and mints legacy, session-less ids.
func WithSessionID(sessionID string) GeneratorOption {
	return func(o *generatorOptions) {
		o.sessionID = sessionID
		o.hasSessionID = true
	}
}

// WithStartID sets the id handed out by the first call to Next.
func WithStartID(id int64) GeneratorOption {
	return func(o *generatorOptions) {
		o.startID = id
	}
}

// Generator mints ContextIDs for a single search session.
// It is safe for concurrent use; ids are unique within the session.
type Generator struct {
	sessionID string
	last      atomic.Int64
}

// NewGenerator returns a Generator. Unless WithSessionID is given, the session
// id is a random UUID.
func NewGenerator(optFns ...GeneratorOption) *Generator {
	o := generatorOptions{startID: 1}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if !o.hasSessionID {
		o.sessionID = uuid.NewString()
	}
	g := &Generator{sessionID: o.sessionID}
	g.last.Store(o.startID - 1)
	return g
}

// SessionID returns the session every minted id belongs to.
func (g *Generator) SessionID() string { return g.sessionID }

// Next mints a new ContextID. The trace id of the span in ctx, if any, is
// attached.
func (g *Generator) Next(ctx context.Context) *ContextID {
	c := New(g.sessionID, g.last.Add(1))
	c.SetDistributedTraceIDFromContext(ctx)
	return c
}
