package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("engine:\n  wasm_path: engine.wasm\n"))
	require.NoError(t, err)

	assert.Equal(t, "engine.wasm", cfg.Engine.WasmPath)
	assert.Equal(t, "symengine", cfg.Engine.ModuleName)
	assert.Equal(t, "_initialize", cfg.Engine.StartFunction)
	assert.Equal(t, uint32(53), cfg.Calc.EvalBits)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(`
engine:
  wasm_path: /opt/engine.wasm
  module_name: cas
  max_heap_bytes: 1048576
calc:
  eval_bits: 113
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, "cas", cfg.Engine.ModuleName)
	assert.Equal(t, uint32(1048576), cfg.Engine.MaxHeapBytes)
	assert.Equal(t, uint32(113), cfg.Calc.EvalBits)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestParse_RequiresWasmPath(t *testing.T) {
	_, err := Parse([]byte("logging:\n  level: debug\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestParse_RejectsBadValues(t *testing.T) {
	_, err := Parse([]byte("engine:\n  wasm_path: e.wasm\nlogging:\n  level: verbose\n"))
	require.Error(t, err)

	_, err = Parse([]byte("engine:\n  wasm_path: e.wasm\ncalc:\n  eval_bits: 4\n"))
	require.Error(t, err, "precision below a half float is rejected")

	_, err = Parse([]byte("engine: [not, a, mapping]"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  wasm_path: engine.wasm\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "engine.wasm", cfg.Engine.WasmPath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
