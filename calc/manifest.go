package calc

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// OpInfo describes one entry point for tooling and embedding hosts.
type OpInfo struct {
	Name     string `json:"name"`
	Arity    int    `json:"arity"`
	Category string `json:"category"`
}

// Manifest is the machine-readable description of a registry's surface.
type Manifest struct {
	Ops []OpInfo `json:"ops"`
}

// Manifest lists every entry point in name order.
func (r *Registry) Manifest() Manifest {
	ops := make([]OpInfo, 0, len(r.names))
	for _, name := range r.names {
		op := r.ops[name]
		ops = append(ops, OpInfo{Name: op.Name, Arity: op.Arity, Category: op.Category})
	}
	return Manifest{Ops: ops}
}

// ManifestJSON renders the manifest as indented JSON.
func (r *Registry) ManifestJSON() ([]byte, error) {
	out, err := json.MarshalIndent(r.Manifest(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("calc: marshaling manifest: %w", err)
	}
	return out, nil
}

// ManifestSchema generates the JSON schema (Draft 2020-12) describing the
// manifest document.
func ManifestSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Manifest{})

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("calc: marshaling manifest schema: %w", err)
	}
	return out, nil
}
