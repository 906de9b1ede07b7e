package event

import "testing"

func TestSubscriptionState_String(t *testing.T) {
	tests := []struct {
		state SubscriptionState
		want  string
	}{
		{SubscriptionStateActive, "active"},
		{SubscriptionStatePaused, "paused"},
		{SubscriptionStateCancelled, "cancelled"},
		{SubscriptionState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestSubscription_Transitions(t *testing.T) {
	s := newTestSub("1", "a")

	s.Resume() // no-op when active
	if !s.IsActive() {
		t.Fatal("expected active")
	}

	s.Pause()
	if s.State() != SubscriptionStatePaused {
		t.Fatalf("state = %v, want paused", s.State())
	}

	if !s.cancel() {
		t.Error("first cancel should report true")
	}
	if s.cancel() {
		t.Error("second cancel should report false")
	}

	s.Resume() // cannot resume a cancelled subscription
	if s.State() != SubscriptionStateCancelled {
		t.Errorf("state = %v, want cancelled", s.State())
	}
}

func TestSubscription_ClaimOnce(t *testing.T) {
	s := newSubscription("1", "t", "a", nil, WithOnce())

	if !s.claim(nil) {
		t.Fatal("first claim should succeed")
	}
	if s.claim(nil) {
		t.Error("second claim should fail")
	}
}
