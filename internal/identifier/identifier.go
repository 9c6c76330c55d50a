// Package identifier parses and renders element identifiers.
//
// Identifiers travel as flat URL query strings, for example
//
//	namespace=/talker&interface=timer(100ms)&interface_type=Timer
//	source_namespace=/talker&target_namespace=/listener&topic=/chatter
//
// Key order does not matter.
package identifier

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"r2ta/internal/analysis"

	"github.com/google/go-querystring/query"
)

// ErrMalformed is matched by every *ParseError.
var ErrMalformed = errors.New("malformed element identifier")

// ParseError reports an identifier that could not be resolved.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed element identifier %q: %s", e.Raw, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

// Identifier is either a Node or a Channel.
type Identifier interface {
	fmt.Stringer
	Shape() analysis.Shape
	isIdentifier()
}

// Node identifies a single node interface.
type Node struct {
	Namespace string `url:"namespace"`
	Interface string `url:"interface"`
	Type      string `url:"interface_type,omitempty"`
}

func (Node) Shape() analysis.Shape { return analysis.ShapeNode }
func (Node) isIdentifier()         {}
func (n Node) String() string      { return Encode(n) }

// Matches reports whether k names the same element. Every field is
// compared, so an identifier without a type only matches an untyped key.
func (n Node) Matches(k analysis.NodeKey) bool {
	return n.Namespace == k.Namespace &&
		n.Interface == k.Interface &&
		n.Type == k.InterfaceType
}

// Channel identifies a directed edge between two nodes over one topic.
type Channel struct {
	SourceNamespace string `url:"source_namespace"`
	TargetNamespace string `url:"target_namespace"`
	Topic           string `url:"topic"`
}

func (Channel) Shape() analysis.Shape { return analysis.ShapeChannel }
func (Channel) isIdentifier()         {}
func (c Channel) String() string      { return Encode(c) }

// Matches reports whether k names the same channel.
func (c Channel) Matches(k analysis.ChannelKey) bool {
	return c.SourceNamespace == k.SourceNamespace &&
		c.TargetNamespace == k.TargetNamespace &&
		c.Topic == k.Topic
}

// FromRecord returns the identifier naming a stored record.
func FromRecord(r analysis.Record) (Identifier, error) {
	switch rec := r.(type) {
	case analysis.NodeRecord:
		k := rec.Node()
		return Node{Namespace: k.Namespace, Interface: k.Interface, Type: k.InterfaceType}, nil
	case analysis.ChannelRecord:
		k := rec.Channel()
		return Channel{SourceNamespace: k.SourceNamespace, TargetNamespace: k.TargetNamespace, Topic: k.Topic}, nil
	}
	return nil, fmt.Errorf("identifier: record %T has no element key", r)
}

// Encode renders id in its canonical wire format.
func Encode(id Identifier) string {
	values, err := query.Values(id)
	if err != nil {
		// Node and Channel only hold strings.
		panic(err)
	}
	return values.Encode()
}

// aliases maps superseded key names onto their canonical replacements.
var aliases = map[string]string{
	"node":        "namespace",
	"source_node": "source_namespace",
	"target_node": "target_namespace",
	"identifier":  "topic",
	"type":        "interface_type",
}

// Resolve parses raw into the identifier shape p requires.
func Resolve(raw string, p analysis.Property) (Identifier, error) {
	fields, err := parseFields(raw)
	if err != nil {
		return nil, err
	}

	var id Identifier
	var required, optional []string
	switch p.Shape() {
	case analysis.ShapeChannel:
		required = []string{"source_namespace", "target_namespace", "topic"}
		id = Channel{
			SourceNamespace: fields["source_namespace"],
			TargetNamespace: fields["target_namespace"],
			Topic:           fields["topic"],
		}
	default:
		required = []string{"namespace", "interface"}
		optional = []string{"interface_type"}
		id = Node{
			Namespace: fields["namespace"],
			Interface: fields["interface"],
			Type:      fields["interface_type"],
		}
	}

	for _, key := range required {
		if fields[key] == "" {
			return nil, &ParseError{Raw: raw, Reason: fmt.Sprintf("missing key %q required by %s", key, p)}
		}
	}
	for key := range fields {
		if !slices.Contains(required, key) && !slices.Contains(optional, key) {
			return nil, &ParseError{Raw: raw, Reason: fmt.Sprintf("key %q is not valid for %s", key, p)}
		}
	}
	return id, nil
}

// parseFields decodes raw into canonical keys, folding aliases.
func parseFields(raw string) (map[string]string, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
	if err != nil {
		return nil, &ParseError{Raw: raw, Reason: err.Error()}
	}
	if len(values) == 0 {
		return nil, &ParseError{Raw: raw, Reason: "no keys"}
	}

	fields := make(map[string]string, len(values))
	for key, vals := range values {
		canonical := key
		if to, ok := aliases[key]; ok {
			canonical = to
		}
		for _, v := range vals {
			if prev, ok := fields[canonical]; ok && prev != v {
				return nil, &ParseError{Raw: raw, Reason: fmt.Sprintf("conflicting values for %q", canonical)}
			}
			fields[canonical] = v
		}
	}
	return fields, nil
}
