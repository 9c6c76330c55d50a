// Package extract resolves one element's sample sequence from a bundle.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"r2ta/internal/analysis"
	"r2ta/internal/blobstore"
	"r2ta/internal/identifier"

	"go.uber.org/zap"
)

// ErrNoSuchElement is matched by every *NoSuchElementError.
var ErrNoSuchElement = errors.New("no such element")

// NoSuchElementError reports an identifier absent from the property's table.
type NoSuchElementError struct {
	Property   analysis.Property
	Identifier identifier.Identifier
}

func (e *NoSuchElementError) Error() string {
	return fmt.Sprintf("no %s data for element %s", e.Property, e.Identifier)
}

func (e *NoSuchElementError) Is(target error) bool { return target == ErrNoSuchElement }

// Kind tags the numeric type carried by ChartableData.
type Kind int

const (
	// KindI64 is a sequence of signed 64-bit samples.
	KindI64 Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindI64:
		return "i64"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ChartableData is a tagged numeric payload. Consumers switch on Kind and
// reject kinds they do not handle.
type ChartableData struct {
	Kind Kind
	I64  []int64
}

// I64 wraps samples as chartable data.
func I64(samples []int64) ChartableData {
	return ChartableData{Kind: KindI64, I64: samples}
}

// Len returns the number of samples.
func (d ChartableData) Len() int {
	switch d.Kind {
	case KindI64:
		return len(d.I64)
	}
	return 0
}

// Extract opens the bundle at path and returns the table name and samples
// stored for the element raw names under property.
func Extract(ctx context.Context, path, raw string, property analysis.Property) (string, ChartableData, error) {
	store, err := blobstore.Open(path)
	if err != nil {
		return "", ChartableData{}, err
	}
	defer store.Close()

	return FromStore(ctx, store, raw, property)
}

// FromStore is Extract on an already open store.
func FromStore(ctx context.Context, store *blobstore.Store, raw string, property analysis.Property) (string, ChartableData, error) {
	id, err := identifier.Resolve(raw, property)
	if err != nil {
		return "", ChartableData{}, err
	}

	table := property.TableName()
	records, err := analysis.Load(ctx, store, property)
	if err != nil {
		return "", ChartableData{}, err
	}

	for _, r := range records {
		if matches(id, r) {
			zap.L().Debug("extracted samples",
				zap.String("table", table),
				zap.String("element", r.Identity()),
				zap.Int("samples", len(r.Samples())),
			)
			return table, I64(r.Samples()), nil
		}
	}
	return "", ChartableData{}, &NoSuchElementError{Property: property, Identifier: id}
}

func matches(id identifier.Identifier, r analysis.Record) bool {
	switch want := id.(type) {
	case identifier.Node:
		rec, ok := r.(analysis.NodeRecord)
		return ok && want.Matches(rec.Node())
	case identifier.Channel:
		rec, ok := r.(analysis.ChannelRecord)
		return ok && want.Matches(rec.Channel())
	}
	return false
}

// Export writes the samples to path as a JSON array.
func (d ChartableData) Export(path string) error {
	var payload any
	switch d.Kind {
	case KindI64:
		samples := d.I64
		if samples == nil {
			samples = []int64{}
		}
		payload = samples
	default:
		return fmt.Errorf("extract: cannot export %v data", d.Kind)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("extract: failed to encode samples: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("extract: failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("extract: failed to write %s: %w", path, err)
	}
	return nil
}
