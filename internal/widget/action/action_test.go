package action

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/buttongroup/internal/logging"
)

func TestFunc_Invoke(t *testing.T) {
	var got string
	a := Func(func(_ context.Context, v string) error {
		got = v
		return nil
	})

	if err := a.Invoke(context.Background(), "two"); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got != "two" {
		t.Errorf("got %q, want two", got)
	}
}

func TestRegistry_Builtins(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry(logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf}))

	for _, name := range []string{NameLog, NameNone} {
		a, err := r.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		if err := a.Invoke(context.Background(), "b"); err != nil {
			t.Errorf("%s.Invoke() error = %v", name, err)
		}
	}

	if !strings.Contains(buf.String(), `value changed to "b"`) {
		t.Errorf("log action did not log: %q", buf.String())
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(nil)

	if err := r.Register("audit", Nop); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register("audit", Nop); !errors.Is(err, ErrDuplicateAction) {
		t.Errorf("duplicate Register() error = %v, want ErrDuplicateAction", err)
	}
	if err := r.Register("", Nop); err == nil {
		t.Error("Register with empty name should fail")
	}
	if err := r.Register("nil", nil); err == nil {
		t.Error("Register with nil action should fail")
	}

	if _, err := r.Lookup("missing"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Lookup(missing) error = %v, want ErrUnknownAction", err)
	}

	names := r.Names()
	want := []string{"audit", NameLog, NameNone}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}
