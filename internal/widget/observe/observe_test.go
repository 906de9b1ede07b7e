package observe

import "testing"

func TestNotifier_ObserveAnyOf(t *testing.T) {
	n := New()
	var calls int
	var last []Change

	n.Observe(func(changes []Change) {
		calls++
		last = changes
	}, "name", "value", "disabled")

	n.Set("value", "a", "b")
	n.Set("label", "x", "y")
	n.Set("disabled", false, true)

	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if len(last) != 1 || last[0].Field != "disabled" || last[0].New != true {
		t.Errorf("last = %+v", last)
	}
}

func TestNotifier_ObserveAll(t *testing.T) {
	n := New()
	var fields []string

	n.ObserveAll(func(changes []Change) {
		for _, c := range changes {
			fields = append(fields, c.Field)
		}
	})

	n.Set("a", nil, 1)
	n.Set("b", nil, 2)

	if len(fields) != 2 || fields[0] != "a" || fields[1] != "b" {
		t.Errorf("fields = %v", fields)
	}
}

func TestNotifier_RegistrationOrder(t *testing.T) {
	n := New()
	var order []int

	for i := 1; i <= 3; i++ {
		i := i
		n.Observe(func([]Change) { order = append(order, i) })
	}
	n.Set("f", nil, nil)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v", order)
	}
}

func TestSubscription_Unsubscribe(t *testing.T) {
	n := New()
	calls := 0

	sub := n.Observe(func([]Change) { calls++ }, "value")
	sub.Unsubscribe()
	sub.Unsubscribe()

	var nilSub *Subscription
	nilSub.Unsubscribe()

	n.Set("value", 1, 2)
	if calls != 0 {
		t.Errorf("calls = %d after unsubscribe", calls)
	}
	if n.Len() != 0 {
		t.Errorf("Len = %d, want 0", n.Len())
	}
}

func TestNotifier_UnsubscribeDuringDelivery(t *testing.T) {
	n := New()
	var second *Subscription
	secondCalled := false

	n.Observe(func([]Change) { second.Unsubscribe() })
	second = n.Observe(func([]Change) { secondCalled = true })

	n.Set("f", nil, nil)
	if secondCalled {
		t.Error("observer removed mid-delivery was still called")
	}
}

func TestBatch_CoalescesPerObserver(t *testing.T) {
	n := New()
	var groupCalls, labelCalls int
	var got []Change

	n.Observe(func(changes []Change) {
		groupCalls++
		got = changes
	}, "value", "disabled")
	n.Observe(func([]Change) { labelCalls++ }, "label")

	b := n.NewBatch()
	b.Set("value", "a", "b")
	b.Set("disabled", false, true)
	if b.Len() != 2 {
		t.Fatalf("Len = %d", b.Len())
	}
	b.Commit()

	if groupCalls != 1 {
		t.Errorf("groupCalls = %d, want 1", groupCalls)
	}
	if labelCalls != 0 {
		t.Errorf("labelCalls = %d, want 0", labelCalls)
	}
	if len(got) != 2 || got[0].Field != "value" || got[1].Field != "disabled" {
		t.Errorf("got = %+v", got)
	}
	if b.Len() != 0 {
		t.Error("batch not emptied by Commit")
	}

	b.Commit() // empty commit delivers nothing
	if groupCalls != 1 {
		t.Errorf("empty commit delivered: groupCalls = %d", groupCalls)
	}
}

func TestBatch_Discard(t *testing.T) {
	n := New()
	calls := 0
	n.Observe(func([]Change) { calls++ })

	b := n.NewBatch()
	b.Set("value", 1, 2)
	b.Discard()
	b.Commit()

	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}
