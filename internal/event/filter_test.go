package event

import (
	"context"
	"testing"

	"github.com/dshills/buttongroup/internal/event/topic"
)

type testPayload struct {
	Value string
}

func TestFilterPayload(t *testing.T) {
	filter := FilterPayload(func(p testPayload) bool { return p.Value == "a" })

	tests := []struct {
		name    string
		payload any
		want    bool
	}{
		{"matching value", testPayload{Value: "a"}, true},
		{"matching pointer", &testPayload{Value: "a"}, true},
		{"other value", testPayload{Value: "b"}, false},
		{"nil pointer", (*testPayload)(nil), false},
		{"other type", "a", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter(tt.payload); got != tt.want {
				t.Errorf("filter(%v) = %v, want %v", tt.payload, got, tt.want)
			}
		})
	}
}

func TestFilterCombinators(t *testing.T) {
	isA := FilterPayload(func(p testPayload) bool { return p.Value == "a" })
	isB := FilterPayload(func(p testPayload) bool { return p.Value == "b" })
	a := testPayload{Value: "a"}

	tests := []struct {
		name   string
		filter FilterFunc
		want   bool
	}{
		{"and all pass", FilterAnd(isA, isA), true},
		{"and one fails", FilterAnd(isA, isB), false},
		{"and empty", FilterAnd(), true},
		{"or one passes", FilterOr(isB, isA), true},
		{"or none pass", FilterOr(isB), false},
		{"or empty", FilterOr(), false},
		{"not", FilterNot(isB), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter(a); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBus_SubscribeWithFilter(t *testing.T) {
	bus := NewBus()
	tp := topic.Button("nav")

	var got []string
	_, err := bus.Subscribe(tp, "owner", HandlerFunc(func(_ context.Context, payload any) error {
		got = append(got, payload.(testPayload).Value)
		return nil
	}), WithFilter(FilterPayload(func(p testPayload) bool { return p.Value != "skip" })))
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	for _, v := range []string{"a", "skip", "b"} {
		if err := bus.Publish(context.Background(), tp, testPayload{Value: v}); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("delivered %v, want [a b]", got)
	}
}
