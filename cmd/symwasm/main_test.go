package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_List(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-list"}, &stdout, &stderr)
	require.NoError(t, err)

	names := strings.Fields(stdout.String())
	assert.Contains(t, names, "expand")
	assert.Contains(t, names, "matrix_det")
	assert.Contains(t, names, "version")
}

func TestRun_Manifest(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-manifest"}, &stdout, &stderr)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Contains(t, doc, "ops")
}

func TestRun_Schema(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-schema"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "\"properties\"")
}

func TestRun_NoOp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry point")
}

func TestRun_MissingWasm(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"expand", "(x+1)**2"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no engine binary")
}

func TestRun_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: verbose\n"), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-config", path, "-list"}, &stdout, &stderr)
	require.Error(t, err)
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-definitely-not-a-flag"}, &stdout, &stderr)
	require.Error(t, err)
}
