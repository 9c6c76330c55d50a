package analysis

import (
	"context"
	"fmt"

	"r2ta/internal/blobstore"

	"github.com/google/go-querystring/query"
)

// NodeKey identifies one interface of a node.
type NodeKey struct {
	Namespace     string `cbor:"namespace" json:"namespace" yaml:"namespace" url:"namespace"`
	Interface     string `cbor:"interface" json:"interface" yaml:"interface" url:"interface"`
	InterfaceType string `cbor:"interface_type,omitempty" json:"interface_type,omitempty" yaml:"interface_type,omitempty" url:"interface_type,omitempty"`
}

// Identity renders the key as an escaped query string with sorted keys,
// e.g. "interface=timer&namespace=%2Ftalker". Field values can never run
// into each other, so distinct keys always have distinct identities.
func (k NodeKey) Identity() string { return encodeKey(k) }

// ChannelKey identifies a directed edge between two nodes over one topic.
type ChannelKey struct {
	SourceNamespace string `cbor:"source_namespace" json:"source_namespace" yaml:"source_namespace" url:"source_namespace"`
	TargetNamespace string `cbor:"target_namespace" json:"target_namespace" yaml:"target_namespace" url:"target_namespace"`
	Topic           string `cbor:"topic" json:"topic" yaml:"topic" url:"topic"`
}

// Identity renders the key as an escaped query string with sorted keys.
func (k ChannelKey) Identity() string { return encodeKey(k) }

func encodeKey(key any) string {
	values, err := query.Values(key)
	if err != nil {
		// Keys only hold strings.
		panic(err)
	}
	return values.Encode()
}

// Record is one stored element with its samples.
type Record interface {
	blobstore.Entity
	// Samples returns the record's numeric series.
	Samples() []int64
}

// NodeRecord is a record keyed by a node interface.
type NodeRecord interface {
	Record
	Node() NodeKey
}

// ChannelRecord is a record keyed by a channel.
type ChannelRecord interface {
	Record
	Channel() ChannelKey
}

// CallbackDurationRecord holds callback execution durations in nanoseconds.
type CallbackDurationRecord struct {
	NodeKey   `yaml:",inline"`
	Durations []int64 `cbor:"durations" json:"durations" yaml:"durations"`
}

func (r CallbackDurationRecord) Payload() any     { return r }
func (r CallbackDurationRecord) Samples() []int64 { return r.Durations }
func (r CallbackDurationRecord) Node() NodeKey    { return r.NodeKey }

// ActivationDelayRecord holds delays between consecutive activations.
type ActivationDelayRecord struct {
	NodeKey          `yaml:",inline"`
	ActivationDelays []int64 `cbor:"activation_delays" json:"activation_delays" yaml:"activation_delays"`
}

func (r ActivationDelayRecord) Payload() any     { return r }
func (r ActivationDelayRecord) Samples() []int64 { return r.ActivationDelays }
func (r ActivationDelayRecord) Node() NodeKey    { return r.NodeKey }

// PublicationDelayRecord holds delays between consecutive publications.
type PublicationDelayRecord struct {
	NodeKey           `yaml:",inline"`
	PublicationDelays []int64 `cbor:"publication_delays" json:"publication_delays" yaml:"publication_delays"`
}

func (r PublicationDelayRecord) Payload() any     { return r }
func (r PublicationDelayRecord) Samples() []int64 { return r.PublicationDelays }
func (r PublicationDelayRecord) Node() NodeKey    { return r.NodeKey }

// MessageDelayRecord holds delays between consecutive received messages.
type MessageDelayRecord struct {
	NodeKey       `yaml:",inline"`
	MessageDelays []int64 `cbor:"message_delays" json:"message_delays" yaml:"message_delays"`
}

func (r MessageDelayRecord) Payload() any     { return r }
func (r MessageDelayRecord) Samples() []int64 { return r.MessageDelays }
func (r MessageDelayRecord) Node() NodeKey    { return r.NodeKey }

// MessageLatencyRecord holds end-to-end latencies of one channel.
type MessageLatencyRecord struct {
	ChannelKey `yaml:",inline"`
	Latencies  []int64 `cbor:"latencies" json:"latencies" yaml:"latencies"`
}

func (r MessageLatencyRecord) Payload() any        { return r }
func (r MessageLatencyRecord) Samples() []int64    { return r.Latencies }
func (r MessageLatencyRecord) Channel() ChannelKey { return r.ChannelKey }

// Load reads every record stored for p.
func Load(ctx context.Context, s *blobstore.Store, p Property) ([]Record, error) {
	table := p.TableName()
	switch p {
	case CallbackDuration:
		return load[CallbackDurationRecord](ctx, s, table)
	case ActivationsDelay:
		return load[ActivationDelayRecord](ctx, s, table)
	case PublicationsDelay:
		return load[PublicationDelayRecord](ctx, s, table)
	case MessagesDelay:
		return load[MessageDelayRecord](ctx, s, table)
	case MessagesLatency:
		return load[MessageLatencyRecord](ctx, s, table)
	}
	return nil, fmt.Errorf("analysis: unsupported property %v", p)
}

// Save writes records for p in one batch.
func Save(ctx context.Context, s *blobstore.Store, p Property, records []Record) error {
	entities := make([]blobstore.Entity, len(records))
	for i, r := range records {
		entities[i] = r
	}
	return s.Write(ctx, p.TableName(), entities)
}

func load[T Record](ctx context.Context, s *blobstore.Store, table string) ([]Record, error) {
	rows, err := blobstore.ReadAll[T](ctx, s, table)
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}
