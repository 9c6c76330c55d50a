package analysis

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeRecords parses a YAML (or JSON) list of records for p.
func DecodeRecords(p Property, r io.Reader) ([]Record, error) {
	switch p {
	case CallbackDuration:
		return decodeList[CallbackDurationRecord](r)
	case ActivationsDelay:
		return decodeList[ActivationDelayRecord](r)
	case PublicationsDelay:
		return decodeList[PublicationDelayRecord](r)
	case MessagesDelay:
		return decodeList[MessageDelayRecord](r)
	case MessagesLatency:
		return decodeList[MessageLatencyRecord](r)
	}
	return nil, fmt.Errorf("analysis: unsupported property %v", p)
}

func decodeList[T Record](r io.Reader) ([]Record, error) {
	var rows []T
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("analysis: failed to parse records: %w", err)
	}

	out := make([]Record, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		id := row.Identity()
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("analysis: duplicate record %q", id)
		}
		seen[id] = struct{}{}
		out[i] = row
	}
	return out, nil
}
