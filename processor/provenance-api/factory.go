package provenanceapi

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface required for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the provenance-api component with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "provenance-api",
		Factory:     NewComponent,
		Schema:      provenanceAPISchema,
		Type:        "processor",
		Protocol:    "http",
		Domain:      "provgraph",
		Description: "Provenance graph queries, constraint conflict evaluation, and RDF export",
		Version:     "0.1.0",
	})
}
