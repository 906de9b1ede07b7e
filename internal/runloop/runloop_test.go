package runloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLoop_ScheduleNeverRunsInline(t *testing.T) {
	l := New()
	ran := false

	l.Schedule(func() { ran = true })

	if ran {
		t.Fatal("Schedule ran the task inline")
	}
	if l.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", l.Pending())
	}
	if n := l.Flush(); n != 1 {
		t.Errorf("Flush = %d, want 1", n)
	}
	if !ran {
		t.Error("task did not run on Flush")
	}
}

func TestLoop_FlushIsFIFOAndIncludesNestedTasks(t *testing.T) {
	l := New()
	var got []string

	l.Schedule(func() {
		got = append(got, "a")
		l.Schedule(func() { got = append(got, "c") })
	})
	l.Schedule(func() { got = append(got, "b") })

	if n := l.Flush(); n != 3 {
		t.Errorf("Flush = %d, want 3", n)
	}

	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestLoop_PanicIsRecovered(t *testing.T) {
	l := New()
	after := false

	l.Schedule(func() { panic("boom") })
	l.Schedule(func() { after = true })
	l.Flush()

	if !after {
		t.Error("task after panic did not run")
	}
	ran, panicked := l.Stats()
	if ran != 1 || panicked != 1 {
		t.Errorf("Stats = (%d, %d), want (1, 1)", ran, panicked)
	}
}

func TestLoop_PostAfterClose(t *testing.T) {
	l := New()
	l.Close()
	l.Close()

	if err := l.Post(func() {}); !errors.Is(err, ErrLoopClosed) {
		t.Errorf("Post after Close = %v, want ErrLoopClosed", err)
	}
	l.Schedule(func() { t.Error("dropped task ran") })
	l.Flush()
}

func TestLoop_PostNil(t *testing.T) {
	l := New()
	if err := l.Post(nil); err != nil {
		t.Errorf("Post(nil) = %v", err)
	}
	if l.Pending() != 0 {
		t.Error("nil task was queued")
	}
}

func TestLoop_RunExecutesPostedTasks(t *testing.T) {
	l := New(WithQueueSize(4))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		if err := l.Post(func() {
			mu.Lock()
			count++
			mu.Unlock()
			wg.Done()
		}); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
	}
	wg.Wait()

	l.Close()
	if err := <-errCh; err != nil {
		t.Errorf("Run returned %v", err)
	}
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
}

func TestLoop_RunStopsOnContext(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestLoop_RunTwice(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	l.Schedule(func() { close(started) })
	go l.Run(ctx)
	<-started

	if err := l.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run = %v, want ErrAlreadyRunning", err)
	}
	l.Close()
}
