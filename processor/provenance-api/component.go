// Package provenanceapi serves the provenance graph over HTTP and folds
// entity ingest messages into per-team graph snapshots. It exposes graph
// queries, constraint matching, change evaluation, decision traces, and RDF
// export endpoints backed by data files, NATS KV, and the ingest stream.
package provenanceapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/provgraph/conflict"
	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/datadir"
	"github.com/c360studio/provgraph/decision"
	"github.com/c360studio/provgraph/provenance"
	"github.com/c360studio/provgraph/sourcemap"
	"github.com/c360studio/provgraph/storage"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"
)

// Component implements the provenance-api processor.
type Component struct {
	name       string
	config     Config
	dataDir    string
	repoRoot   string
	logger     *slog.Logger
	natsClient *natsclient.Client
	store      *storage.Store
	metrics    *metrics
	watcher    *dataWatcher

	// Resolved from port config
	ingestSubject string
	ingestStream  string

	// Snapshot state. Queries read the current snapshot under RLock;
	// ingestion and reloads swap in freshly validated replacements.
	snapMu      sync.RWMutex
	graphs      map[string]*provenance.Graph
	constraints []constraint.Constraint
	registry    *constraint.Registry
	decisions   []decision.Decision
	resolver    *sourcemap.Resolver
	evaluator   *conflict.Evaluator

	// Lifecycle state machine
	// States: 0=stopped, 1=starting, 2=running, 3=stopping
	state     atomic.Int32
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	lastActivityMu sync.RWMutex
	lastActivity   time.Time
}

const (
	stateStopped  = 0
	stateStarting = 1
	stateRunning  = 2
	stateStopping = 3
)

// NewComponent constructs a provenance-api Component from raw JSON config
// and deps.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Resolve the ingest subject from port definitions when present
	ingestSubject := config.GetIngestSubject()
	ingestStream := config.GetIngestStream()
	if config.Ports != nil && len(config.Ports.Inputs) > 0 {
		if s := config.Ports.Inputs[0].Subject; s != "" {
			ingestSubject = s
		}
		if s := config.Ports.Inputs[0].StreamName; s != "" {
			ingestStream = s
		}
	}

	return &Component{
		name:          "provenance-api",
		config:        config,
		dataDir:       resolveDataDir(config.DataDir),
		repoRoot:      resolveRepoRoot(config.RepoRoot),
		logger:        deps.GetLogger(),
		natsClient:    deps.NATSClient,
		metrics:       newMetrics(),
		ingestSubject: ingestSubject,
		ingestStream:  ingestStream,
		graphs:        make(map[string]*provenance.Graph),
	}, nil
}

// resolveDataDir determines the effective data directory.
// Priority: explicit config value → PROVGRAPH_DATA_DIR env var → ./data.
func resolveDataDir(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv("PROVGRAPH_DATA_DIR"); env != "" {
		return env
	}
	return "data"
}

// resolveRepoRoot determines the repository root for source inspection.
// Empty disables content-based component resolution.
func resolveRepoRoot(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv("PROVGRAPH_REPO_PATH")
}

// Initialize loads the data files into the first snapshot.
func (c *Component) Initialize() error {
	if err := c.loadDataFiles(); err != nil {
		return fmt.Errorf("load data files: %w", err)
	}

	c.snapMu.RLock()
	teams := len(c.graphs)
	constraints := len(c.constraints)
	decisions := len(c.decisions)
	c.snapMu.RUnlock()

	c.logger.Debug("Initialized provenance-api",
		"data_dir", c.dataDir,
		"teams", teams,
		"constraints", constraints,
		"decisions", decisions)
	return nil
}

// Start hydrates persisted entities, begins consuming the ingest stream,
// and starts the data file watcher.
func (c *Component) Start(ctx context.Context) error {
	if !c.state.CompareAndSwap(stateStopped, stateStarting) {
		current := c.state.Load()
		if current == stateRunning || current == stateStarting {
			return fmt.Errorf("component already running or starting")
		}
		return fmt.Errorf("component in invalid state: %d", current)
	}

	defer func() {
		if c.state.Load() == stateStarting {
			c.state.Store(stateStopped)
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.cancel = cancel
	c.startTime = time.Now()
	c.mu.Unlock()

	if c.natsClient != nil {
		js, err := c.natsClient.JetStream()
		if err != nil {
			cancel()
			return fmt.Errorf("get jetstream: %w", err)
		}

		store, err := storage.NewStore(ctx, js)
		if err != nil {
			cancel()
			return fmt.Errorf("create store: %w", err)
		}
		c.store = store

		if err := c.hydrateFromStore(ctx); err != nil {
			c.logger.Warn("Store hydration incomplete", "error", err)
		}

		consumerCfg := natsclient.StreamConsumerConfig{
			StreamName:    c.ingestStream,
			ConsumerName:  "provenance-api",
			FilterSubject: c.ingestSubject,
			DeliverPolicy: "new",
			AckPolicy:     "explicit",
			MaxDeliver:    3,
			AckWait:       10 * time.Second,
		}

		if err := c.natsClient.ConsumeStreamWithConfig(runCtx, consumerCfg, c.handleEntityMessage); err != nil {
			cancel()
			return fmt.Errorf("start consumer: %w", err)
		}
	} else {
		c.logger.Info("No NATS client, serving from data files only")
	}

	if c.config.Watch {
		watcher, err := newDataWatcher(c.config.GetWatchDebounce(), c.logger, c.reloadPath)
		if err != nil {
			cancel()
			return fmt.Errorf("create watcher: %w", err)
		}
		watcher.Watch(c.dataDir)
		watcher.Watch(filepath.Join(c.dataDir, datadir.TeamsDir))
		watcher.Start(runCtx)
		c.watcher = watcher
	}

	c.state.Store(stateRunning)
	c.logger.Info("provenance-api started",
		"data_dir", c.dataDir,
		"ingest_subject", c.ingestSubject,
		"watch", c.config.Watch)
	return nil
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	if !c.state.CompareAndSwap(stateRunning, stateStopping) {
		current := c.state.Load()
		if current == stateStopped || current == stateStopping {
			return nil
		}
		return fmt.Errorf("component in unexpected state: %d", current)
	}

	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			c.logger.Warn("Watcher close failed", "error", err)
		}
		c.watcher = nil
	}

	c.state.Store(stateStopped)
	c.logger.Info("provenance-api stopped")
	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "provenance-api",
		Type:        "processor",
		Description: "Provenance graph queries, constraint conflict evaluation, and RDF export",
		Version:     "0.1.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition, using
// JetStreamPort for jetstream-type ports and NATSPort for core NATS ports.
func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{portDef.Subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: portDef.Subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return provenanceAPISchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	state := c.state.Load()
	running := state == stateRunning

	c.mu.RLock()
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	switch state {
	case stateStarting:
		status = "starting"
	case stateRunning:
		status = "running"
	case stateStopping:
		status = "stopping"
	}

	return component.HealthStatus{
		Healthy:   running,
		LastCheck: time.Now(),
		Uptime:    time.Since(startTime),
		Status:    status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		LastActivity: c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}
