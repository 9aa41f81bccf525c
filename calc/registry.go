// Package calc exposes the symbolic engine as named string-in/string-out
// entry points.
//
// The surface mirrors a fixed export table: every entry point takes and
// returns only primitive text values and never leaks a native handle across
// the boundary. Each call constructs fresh handles from its inputs,
// transforms, stringifies and releases everything before returning, so no
// state is shared between calls and no locking is needed.
//
// Failure rendering policy: Call returns ("", err) on any failure. How that
// error is presented outward (empty string, JSON body, process exit code) is
// the embedding caller's choice; the error values themselves are the typed
// failures of the symengine package plus this package's dispatch errors.
package calc

import (
	"context"
	"sort"

	"github.com/symwasm/symwasm/symengine"
)

// Handler evaluates one entry point against an engine.
type Handler func(ctx context.Context, eng symengine.Engine, args []string) (string, error)

// Op is one entry in the declarative surface table.
type Op struct {
	Name     string
	Arity    int
	Category string
	apply    Handler
}

// Registry is an immutable collection of named entry points bound to one
// engine. Once created, ops cannot be added or removed; lookups are
// lock-free.
type Registry struct {
	eng   symengine.Engine
	ops   map[string]Op
	names []string // sorted
}

// registryBuilder accumulates configuration during construction.
type registryBuilder struct {
	ops        map[string]Op
	middleware []Middleware
	evalBits   uint32
	errs       []error
}

// RegistryOption configures a Registry under construction.
type RegistryOption func(*registryBuilder)

// WithOp adds a custom entry point. Registering a name twice is an error.
func WithOp(op Op, h Handler) RegistryOption {
	return func(b *registryBuilder) {
		op.apply = h
		if err := b.add(op); err != nil {
			b.errs = append(b.errs, err)
		}
	}
}

// WithMiddleware appends middleware. The first registered wraps outermost.
func WithMiddleware(m ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, m...)
	}
}

// WithEvalBits sets the bit precision the evalf entry point requests from
// the engine (default 53, double precision).
func WithEvalBits(bits uint32) RegistryOption {
	return func(b *registryBuilder) {
		b.evalBits = bits
	}
}

// NewRegistry builds the full default surface for eng, then applies options.
func NewRegistry(eng symengine.Engine, opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{
		ops:      make(map[string]Op),
		evalBits: defaultEvalBits,
	}
	for _, opt := range opts {
		opt(b)
	}
	for _, op := range defaultOps(b.evalBits) {
		if err := b.add(op); err != nil {
			b.errs = append(b.errs, err)
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	names := make([]string, 0, len(b.ops))
	for name := range b.ops {
		names = append(names, name)
	}
	sort.Strings(names)

	// Apply the middleware chain in reverse so the first registered wraps
	// outermost.
	for name, op := range b.ops {
		wrapped := op.apply
		for i := len(b.middleware) - 1; i >= 0; i-- {
			wrapped = b.middleware[i](name, wrapped)
		}
		op.apply = wrapped
		b.ops[name] = op
	}

	return &Registry{eng: eng, ops: b.ops, names: names}, nil
}

func (b *registryBuilder) add(op Op) error {
	if op.Name == "" {
		return &RegistrationError{Reason: "entry point name cannot be empty"}
	}
	if _, exists := b.ops[op.Name]; exists {
		return &RegistrationError{Name: op.Name, Reason: "duplicate entry point"}
	}
	b.ops[op.Name] = op
	return nil
}

// Call dispatches an entry point by name. The argument count must match the
// op's declared arity.
func (r *Registry) Call(ctx context.Context, name string, args ...string) (string, error) {
	op, ok := r.ops[name]
	if !ok {
		return "", &NotFoundError{Name: name}
	}
	if len(args) != op.Arity {
		return "", &ArityError{Name: name, Want: op.Arity, Got: len(args)}
	}
	return op.apply(ctx, r.eng, args)
}

// Has reports whether an entry point with the given name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.ops[name]
	return ok
}

// Names returns the sorted entry point names.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Lookup returns the table entry for name.
func (r *Registry) Lookup(name string) (Op, bool) {
	op, ok := r.ops[name]
	return op, ok
}
