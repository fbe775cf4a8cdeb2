package provenanceapi

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/c360studio/provgraph/graph"
	"github.com/c360studio/semstreams/component"
)

// provenanceAPISchema defines the configuration schema.
var provenanceAPISchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the provenance-api processor component.
type Config struct {
	Ports         *component.PortConfig `json:"ports,omitempty" schema:"type:ports,description:Port configuration,category:basic"`
	DataDir       string                `json:"data_dir" schema:"type:string,description:Directory holding team graphs and registry files,category:basic,default:"`
	RepoRoot      string                `json:"repo_root" schema:"type:string,description:Repository root for source inspection when no component rule matches,category:advanced,default:"`
	DefaultTeam   string                `json:"default_team" schema:"type:string,description:Team used when an export request names none,category:basic,default:platform"`
	IngestSubject string                `json:"ingest_subject" schema:"type:string,description:Subject entity ingest messages arrive on,category:advanced,default:provenance.ingest.entity"`
	IngestStream  string                `json:"ingest_stream" schema:"type:string,description:JetStream stream backing the ingest subject,category:advanced,default:PROVENANCE"`
	Watch         bool                  `json:"watch" schema:"type:bool,description:Reload data files when they change on disk,category:advanced,default:false"`
	WatchDebounce string                `json:"watch_debounce" schema:"type:string,description:Delay before coalesced file changes trigger a reload,category:advanced,default:500ms"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.IngestSubject != "" && strings.ContainsAny(c.IngestSubject, " \t") {
		return fmt.Errorf("invalid ingest subject: %q", c.IngestSubject)
	}
	if c.WatchDebounce != "" {
		if _, err := time.ParseDuration(c.WatchDebounce); err != nil {
			return fmt.Errorf("invalid watch debounce: %w", err)
		}
	}
	return nil
}

// GetDefaultTeam returns the configured default team with a fallback.
func (c *Config) GetDefaultTeam() string {
	if c.DefaultTeam != "" {
		return c.DefaultTeam
	}
	return "platform"
}

// GetIngestSubject returns the configured ingest subject with a fallback.
func (c *Config) GetIngestSubject() string {
	if c.IngestSubject != "" {
		return c.IngestSubject
	}
	return graph.IngestSubject
}

// GetIngestStream returns the configured ingest stream with a fallback.
func (c *Config) GetIngestStream() string {
	if c.IngestStream != "" {
		return c.IngestStream
	}
	return "PROVENANCE"
}

// GetWatchDebounce returns the parsed debounce delay with a fallback.
func (c *Config) GetWatchDebounce() time.Duration {
	if c.WatchDebounce != "" {
		if d, err := time.ParseDuration(c.WatchDebounce); err == nil {
			return d
		}
	}
	return 500 * time.Millisecond
}

// DefaultConfig returns the default configuration for provenance-api.
func DefaultConfig() Config {
	return Config{
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "entities_in",
					Type:        "jetstream",
					Subject:     graph.IngestSubject,
					StreamName:  "PROVENANCE",
					Required:    false,
					Description: "Provenance entity payloads folded into team graph snapshots",
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "graph_out",
					Type:        "jetstream",
					Subject:     graph.GraphIngestSubject,
					StreamName:  "GRAPH",
					Required:    false,
					Description: "Applied entities republished to the platform knowledge graph",
				},
			},
		},
		DefaultTeam:   "platform",
		IngestSubject: graph.IngestSubject,
		IngestStream:  "PROVENANCE",
		WatchDebounce: "500ms",
	}
}
