package identifier

import (
	"errors"
	"strings"
	"testing"

	"r2ta/internal/analysis"

	"github.com/google/go-cmp/cmp"
)

func TestResolve_Node(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Identifier
	}{
		{
			name: "canonical",
			raw:  "namespace=/talker&interface=timer(100ms)",
			want: Node{Namespace: "/talker", Interface: "timer(100ms)"},
		},
		{
			name: "order insensitive with type",
			raw:  "interface_type=Timer&interface=timer&namespace=/talker",
			want: Node{Namespace: "/talker", Interface: "timer", Type: "Timer"},
		},
		{
			// The form the graph viewer passes as --element-id.
			name: "viewer subscriber",
			raw:  "namespace=/listener&interface=Callback(Subscriber(%22/chatter%22))&interface_type=Subscriber",
			want: Node{Namespace: "/listener", Interface: `Callback(Subscriber("/chatter"))`, Type: "Subscriber"},
		},
		{
			name: "short type key",
			raw:  "namespace=/talker&interface=timer&type=Timer",
			want: Node{Namespace: "/talker", Interface: "timer", Type: "Timer"},
		},
		{
			name: "escaped legacy key",
			raw:  "interface=Callback(Subscriber(%22/clock%22))&node=/abc",
			want: Node{Namespace: "/abc", Interface: `Callback(Subscriber("/clock"))`},
		},
		{
			name: "leading question mark",
			raw:  "?namespace=/a&interface=b",
			want: Node{Namespace: "/a", Interface: "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.raw, analysis.CallbackDuration)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("identifier mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_Channel(t *testing.T) {
	raw := "source_node=/a&target_namespace=/b&identifier=/some/topic"

	got, err := Resolve(raw, analysis.MessagesLatency)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	want := Channel{SourceNamespace: "/a", TargetNamespace: "/b", Topic: "/some/topic"}
	if diff := cmp.Diff(Identifier(want), got); diff != "" {
		t.Errorf("identifier mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		property analysis.Property
		reason   string
	}{
		{"empty", "", analysis.CallbackDuration, "no keys"},
		{"missing interface", "namespace=/a", analysis.ActivationsDelay, `missing key "interface"`},
		{"channel keys for node property", "source_namespace=/a&target_namespace=/b&topic=/t", analysis.MessagesDelay, "missing key"},
		{"node keys for channel property", "namespace=/a&interface=b", analysis.MessagesLatency, "missing key"},
		{"unknown key", "namespace=/a&interface=b&colour=red", analysis.CallbackDuration, `key "colour" is not valid`},
		{"alias conflict", "namespace=/a&node=/b&interface=c", analysis.CallbackDuration, "conflicting values"},
		{"type alias conflict", "namespace=/a&interface=c&type=Timer&interface_type=Subscriber", analysis.CallbackDuration, "conflicting values"},
		{"type on channel", "source_namespace=/a&target_namespace=/b&topic=/t&interface_type=Timer", analysis.MessagesLatency, `key "interface_type" is not valid`},
		{"bad escape", "namespace=%zz&interface=b", analysis.CallbackDuration, "invalid URL escape"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.raw, tt.property)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Raw != tt.raw {
				t.Errorf("ParseError.Raw = %q, want %q", pe.Raw, tt.raw)
			}
			if !strings.Contains(pe.Reason, tt.reason) {
				t.Errorf("ParseError.Reason = %q, want it to contain %q", pe.Reason, tt.reason)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	ids := []struct {
		id       Identifier
		property analysis.Property
	}{
		{Node{Namespace: "/talker", Interface: "pub(/chatter)&x=y"}, analysis.PublicationsDelay},
		{Node{Namespace: "/talker", Interface: "timer", Type: "Timer"}, analysis.CallbackDuration},
		{Channel{SourceNamespace: "/a", TargetNamespace: "/b", Topic: "/t"}, analysis.MessagesLatency},
	}
	for _, tt := range ids {
		encoded := Encode(tt.id)
		got, err := Resolve(encoded, tt.property)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", encoded, err)
		}
		if Encode(got) != encoded {
			t.Errorf("Encode(Resolve(%q)) = %q", encoded, Encode(got))
		}
	}
}

func TestEncode_Canonical(t *testing.T) {
	got := Encode(Node{Namespace: "/a", Interface: "b"})
	if want := "interface=b&namespace=%2Fa"; got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
	got = Encode(Node{Namespace: "/a", Interface: "b", Type: "Timer"})
	if want := "interface=b&interface_type=Timer&namespace=%2Fa"; got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestMatches(t *testing.T) {
	key := analysis.NodeKey{Namespace: "/a", Interface: "b", InterfaceType: "Timer"}

	if (Node{Namespace: "/a", Interface: "b"}).Matches(key) {
		t.Error("expected untyped identifier not to match a typed key")
	}
	if !(Node{Namespace: "/a", Interface: "b"}).Matches(analysis.NodeKey{Namespace: "/a", Interface: "b"}) {
		t.Error("expected untyped identifier to match an untyped key")
	}
	if !(Node{Namespace: "/a", Interface: "b", Type: "Timer"}).Matches(key) {
		t.Error("expected typed identifier to match")
	}
	if (Node{Namespace: "/a", Interface: "b", Type: "Service"}).Matches(key) {
		t.Error("expected type mismatch to fail")
	}
	if (Node{Namespace: "/a", Interface: "bb"}).Matches(key) {
		t.Error("expected partial interface not to match")
	}

	ch := analysis.ChannelKey{SourceNamespace: "/a", TargetNamespace: "/b", Topic: "/t"}
	if (Channel{SourceNamespace: "/b", TargetNamespace: "/a", Topic: "/t"}).Matches(ch) {
		t.Error("expected reversed channel not to match")
	}
}

func TestFromRecord(t *testing.T) {
	rec := analysis.MessageDelayRecord{NodeKey: analysis.NodeKey{Namespace: "/a", Interface: "sub"}}

	got, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("FromRecord error: %v", err)
	}
	if diff := cmp.Diff(Identifier(Node{Namespace: "/a", Interface: "sub"}), got); diff != "" {
		t.Errorf("identifier mismatch (-want +got):\n%s", diff)
	}
}
