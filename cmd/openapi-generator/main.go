// Package main generates the combined OpenAPI 3.0 specification for the
// provgraph HTTP API from the specs components register at init time.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	// Registers the provenance-api OpenAPI spec via init().
	_ "github.com/c360studio/provgraph/processor/provenance-api"

	"github.com/c360studio/semstreams/service"
	"gopkg.in/yaml.v3"
)

func main() {
	out := flag.String("o", "./specs/openapi.v3.yaml", "Output path for OpenAPI spec")
	flag.Parse()

	specs := service.GetAllOpenAPISpecs()
	log.Printf("ProvGraph OpenAPI generator: %d registered spec(s)", len(specs))
	for _, name := range sortedKeys(specs) {
		log.Printf("  - %s", name)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Create output directory: %v", err)
	}
	if err := writeSpec(*out, buildDocument(specs)); err != nil {
		log.Fatalf("Write OpenAPI spec: %v", err)
	}
	log.Printf("Generated %s", *out)
}

// document is the root of an OpenAPI 3.0 file.
type document struct {
	OpenAPI    string              `yaml:"openapi"`
	Info       info                `yaml:"info"`
	Servers    []server            `yaml:"servers"`
	Paths      map[string]pathItem `yaml:"paths"`
	Components components          `yaml:"components"`
	Tags       []tag               `yaml:"tags"`
}

type info struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

type server struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

type components struct {
	Schemas map[string]any `yaml:"schemas"`
}

type tag struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type pathItem struct {
	Get    *operation `yaml:"get,omitempty"`
	Post   *operation `yaml:"post,omitempty"`
	Put    *operation `yaml:"put,omitempty"`
	Delete *operation `yaml:"delete,omitempty"`
}

type operation struct {
	Summary     string              `yaml:"summary"`
	Description string              `yaml:"description,omitempty"`
	Tags        []string            `yaml:"tags,omitempty"`
	Parameters  []parameter         `yaml:"parameters,omitempty"`
	Responses   map[string]response `yaml:"responses"`
}

type parameter struct {
	Name        string    `yaml:"name"`
	In          string    `yaml:"in"`
	Required    bool      `yaml:"required,omitempty"`
	Description string    `yaml:"description,omitempty"`
	Schema      schemaRef `yaml:"schema"`
}

type response struct {
	Description string               `yaml:"description"`
	Content     map[string]mediaType `yaml:"content,omitempty"`
}

type mediaType struct {
	Schema schemaRef `yaml:"schema"`
}

type schemaRef struct {
	Ref   string     `yaml:"$ref,omitempty"`
	Type  string     `yaml:"type,omitempty"`
	Items *schemaRef `yaml:"items,omitempty"`
}

func buildDocument(specs map[string]*service.OpenAPISpec) document {
	doc := document{
		OpenAPI: "3.0.3",
		Info: info{
			Title:       "ProvGraph API",
			Description: "HTTP API for the provenance graph and conflict engine - team graphs, constraints, change evaluation, decision traces, and RDF export",
			Version:     "1.0.0",
		},
		Servers: []server{
			{URL: "http://localhost:8080", Description: "Development server"},
		},
		Paths:      make(map[string]pathItem),
		Components: components{Schemas: make(map[string]any)},
	}

	seenTypes := make(map[reflect.Type]bool)
	seenTags := make(map[string]bool)

	for _, name := range sortedKeys(specs) {
		spec := specs[name]

		for path, ps := range spec.Paths {
			doc.Paths[path] = pathItem{
				Get:    operationFor(ps.GET),
				Post:   operationFor(ps.POST),
				Put:    operationFor(ps.PUT),
				Delete: operationFor(ps.DELETE),
			}
		}

		for _, t := range spec.ResponseTypes {
			if seenTypes[t] {
				continue
			}
			seenTypes[t] = true
			doc.Components.Schemas[schemaName(t)] = typeSchema(t)
		}

		for _, ts := range spec.Tags {
			if seenTags[ts.Name] {
				continue
			}
			seenTags[ts.Name] = true
			doc.Tags = append(doc.Tags, tag{Name: ts.Name, Description: ts.Description})
		}
	}

	sort.Slice(doc.Tags, func(i, j int) bool { return doc.Tags[i].Name < doc.Tags[j].Name })
	return doc
}

func operationFor(op *service.OperationSpec) *operation {
	if op == nil {
		return nil
	}

	out := &operation{
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Responses:   make(map[string]response),
	}

	for _, p := range op.Parameters {
		out.Parameters = append(out.Parameters, parameter{
			Name:        p.Name,
			In:          p.In,
			Required:    p.Required,
			Description: p.Description,
			Schema:      schemaRef{Type: p.Schema.Type},
		})
	}

	for code, rs := range op.Responses {
		resp := response{Description: rs.Description}

		switch {
		case rs.SchemaRef != "":
			contentType := rs.ContentType
			if contentType == "" {
				contentType = "application/json"
			}
			schema := schemaRef{Ref: rs.SchemaRef}
			if rs.IsArray {
				schema = schemaRef{Type: "array", Items: &schemaRef{Ref: rs.SchemaRef}}
			}
			resp.Content = map[string]mediaType{contentType: {Schema: schema}}
		case rs.ContentType != "" && rs.ContentType != "text/event-stream":
			resp.Content = map[string]mediaType{rs.ContentType: {Schema: schemaRef{Type: "object"}}}
		}

		out.Responses[code] = resp
	}

	return out
}

// typeSchema generates a JSON Schema from a Go type.
func typeSchema(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Ptr {
		schema := typeSchema(t.Elem())
		schema["nullable"] = true
		return schema
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return map[string]any{"type": "integer"}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer", "minimum": 0}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Struct:
		if t == reflect.TypeOf(time.Time{}) {
			return map[string]any{"type": "string", "format": "date-time"}
		}
		return structSchema(t)
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return map[string]any{"type": "string", "format": "byte"}
		}
		return map[string]any{"type": "array", "items": typeSchema(t.Elem())}
	case reflect.Map:
		return map[string]any{"type": "object", "additionalProperties": typeSchema(t.Elem())}
	case reflect.Interface:
		return map[string]any{}
	default:
		return map[string]any{"type": "string"}
	}
}

func structSchema(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(jsonTag, ",")
		if name == "" {
			name = field.Name
		}

		properties[name] = typeSchema(field.Type)

		if !strings.Contains(opts, "omitempty") && field.Type.Kind() != reflect.Ptr {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sort.Strings(required)
		schema["required"] = required
	}
	return schema
}

func schemaName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		return schemaName(t.Elem())
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeSpec(path string, doc document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}

	header := []byte(strings.TrimSpace(`
# OpenAPI 3.0 Specification for the ProvGraph API
# Generated by the openapi-generator tool from service registrations.
# DO NOT EDIT MANUALLY
`) + "\n\n")

	if err := os.WriteFile(path, append(header, data...), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
