package main

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/c360studio/semstreams/config"
	"github.com/c360studio/semstreams/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultConfig(t *testing.T) {
	cfg, err := buildDefaultConfig("/repo", "data")
	require.NoError(t, err)

	comp, ok := cfg.Components["provenance-api"]
	require.True(t, ok, "provenance-api component missing from default config")
	assert.True(t, comp.Enabled, "provenance-api should be enabled by default")

	var compCfg map[string]any
	require.NoError(t, json.Unmarshal(comp.Config, &compCfg))
	assert.Equal(t, "data", compCfg["data_dir"])
	assert.Equal(t, "/repo", compCfg["repo_root"])

	for _, stream := range []string{"PROVENANCE", "GRAPH"} {
		assert.Contains(t, cfg.Streams, stream)
	}
	assert.Equal(t, []string{"provenance.ingest.entity"}, cfg.Streams["PROVENANCE"].Subjects)
}

func TestExtractPlatformMeta(t *testing.T) {
	cfg := &config.Config{
		Platform: config.PlatformConfig{
			Org: "provgraph",
			ID:  "provgraph-local",
		},
	}

	meta := extractPlatformMeta(cfg)
	assert.Equal(t, "provgraph", meta.Org)
	assert.Equal(t, "provgraph-local", meta.Platform)

	// InstanceID takes precedence over ID when set
	cfg.Platform.InstanceID = "provgraph-7"
	meta = extractPlatformMeta(cfg)
	assert.Equal(t, "provgraph-7", meta.Platform)
}

func TestEnsureServiceManagerConfig(t *testing.T) {
	cfg := &config.Config{}

	ensureServiceManagerConfig(cfg)

	svc, ok := cfg.Services["service-manager"]
	require.True(t, ok, "service-manager config not added")
	assert.True(t, svc.Enabled, "service-manager should be enabled")

	// An existing entry is left alone
	custom, err := json.Marshal(map[string]any{"http_port": 9090})
	require.NoError(t, err)
	cfg.Services["service-manager"] = types.ServiceConfig{Name: "service-manager", Config: custom}
	ensureServiceManagerConfig(cfg)
	assert.Equal(t, string(custom), string(cfg.Services["service-manager"].Config))
}

func TestWrapNATSError(t *testing.T) {
	err := wrapNATSError(errors.New("dial tcp: connection refused"), "nats://localhost:4222")
	assert.Contains(t, err.Error(), "NATS is not running")

	err = wrapNATSError(errors.New("authorization violation"), "nats://localhost:4222")
	assert.NotContains(t, err.Error(), "NATS is not running")
	assert.Contains(t, err.Error(), "NATS connection failed")
}
