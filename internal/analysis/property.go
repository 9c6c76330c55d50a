// Package analysis defines the timing statistics r2ta charts and the
// records the analysis pipeline stores for them.
package analysis

import (
	"fmt"
	"strings"
)

// Property is the kind of timing statistic stored per element.
type Property int

const (
	CallbackDuration Property = iota
	ActivationsDelay
	PublicationsDelay
	MessagesDelay
	MessagesLatency
)

// Shape is the identifier shape a property is keyed by.
type Shape int

const (
	// ShapeNode identifies a node and one of its interfaces.
	ShapeNode Shape = iota
	// ShapeChannel identifies a source→topic→target edge.
	ShapeChannel
)

// Properties lists every property in declaration order.
var Properties = []Property{
	CallbackDuration,
	ActivationsDelay,
	PublicationsDelay,
	MessagesDelay,
	MessagesLatency,
}

type propertyInfo struct {
	name        string
	table       string
	description string
	descriptor  string
	shape       Shape
}

var properties = map[Property]propertyInfo{
	CallbackDuration:  {"callback-duration", "callback_duration", "Callback execution time", "execution_timing", ShapeNode},
	ActivationsDelay:  {"activations-delay", "activation_delays", "Delays between activations", "activations_delay", ShapeNode},
	PublicationsDelay: {"publications-delay", "publication_delays", "Delays between publications", "publication_delay", ShapeNode},
	MessagesDelay:     {"messages-delay", "message_delays", "Delays between messages", "message_delay", ShapeNode},
	MessagesLatency:   {"messages-latency", "message_latencies", "Message latency", "latency", ShapeChannel},
}

// String returns the CLI name, e.g. "callback-duration".
func (p Property) String() string {
	if info, ok := properties[p]; ok {
		return info.name
	}
	return fmt.Sprintf("Property(%d)", int(p))
}

// TableName returns the store table holding this property's records.
func (p Property) TableName() string { return properties[p].table }

// Description is a human readable summary used in help text.
func (p Property) Description() string { return properties[p].description }

// Descriptor is the short token used in generated chart file names.
func (p Property) Descriptor() string { return properties[p].descriptor }

// Shape reports which identifier shape the property requires.
func (p Property) Shape() Shape { return properties[p].shape }

// ParseProperty parses a CLI property name. Matching ignores case and
// accepts underscores in place of hyphens.
func ParseProperty(s string) (Property, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, p := range Properties {
		if properties[p].name == normalized {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown property %q (valid: %s)", s, strings.Join(Names(), ", "))
}

// Names returns the CLI names of all properties.
func Names() []string {
	names := make([]string, len(Properties))
	for i, p := range Properties {
		names[i] = p.String()
	}
	return names
}

// Set implements pflag.Value so a Property can be bound to a flag.
func (p *Property) Set(s string) error {
	v, err := ParseProperty(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Type implements pflag.Value.
func (p *Property) Type() string { return "property" }
