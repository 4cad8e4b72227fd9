package lang

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/qiangli/pye/api"
)

func TestYaegiEval(t *testing.T) {
	ctx := context.Background()
	e, err := NewYaegi(&api.Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	v, err := e.Eval(ctx, "1 + 1")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v.None() {
		t.Error("Eval(1 + 1).None() = true, want false")
	}
	if got := v.String(); got != "2" {
		t.Errorf("Eval(1 + 1) = %q, want %q", got, "2")
	}
}

func TestYaegiState(t *testing.T) {
	ctx := context.Background()
	e, err := NewYaegi(&api.Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if err := e.Exec(ctx, "x := 5"); err != nil {
		t.Fatal(err)
	}
	v, err := e.Eval(ctx, "x + 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := v.String(); got != "6" {
		t.Errorf("x + 1 = %q, want %q", got, "6")
	}
}

func TestYaegiRedirect(t *testing.T) {
	ctx := context.Background()
	e, err := NewYaegi(&api.Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	var buf bytes.Buffer
	restore := e.Redirect(&buf, &buf)
	if err := e.Exec(ctx, `import "fmt"`); err != nil {
		t.Fatal(err)
	}
	if err := e.Exec(ctx, `fmt.Println("hello")`); err != nil {
		t.Fatal(err)
	}
	restore()

	if got := buf.String(); got != "hello\n" {
		t.Errorf("captured = %q, want %q", got, "hello\n")
	}
}

func TestYaegiFault(t *testing.T) {
	ctx := context.Background()
	e, err := NewYaegi(&api.Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	err = e.Exec(ctx, "nosuchfn()")
	if err == nil {
		t.Fatal("Exec() expected fault")
	}
	if !strings.Contains(err.Error(), "nosuchfn") {
		t.Errorf("Exec() error = %q, missing %q", err.Error(), "nosuchfn")
	}
}
