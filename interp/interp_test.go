package interp

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/qiangli/pye/api"
)

func TestExecute(t *testing.T) {
	it, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"expression value", "1 + 1", "2\n"},
		{"string repr", `"a" + "b"`, "\"ab\"\n"},
		{"list repr", "[1, 2] + [3]", "[1, 2, 3]\n"},
		{"void expression", `print("hello")`, "hello\n"},
		{"assignment no value", "x = 5", ""},
		{"persisted binding", "x + 1", "6\n"},
		{"reassignment", "x = x + 1", ""},
		{"persisted again", "x", "7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := it.Execute(tt.src); got != tt.want {
				t.Errorf("Execute(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestExecuteFault(t *testing.T) {
	it, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"undefined name", "nosuchname", []string{"undefined", "nosuchname"}},
		{"syntax error", "def f(", []string{"<input>"}},
		{"runtime fault", "fail(\"boom\")\n", []string{"Traceback", "boom"}},
		{"output before fault", "print(\"before\")\nfail(\"after\")\n", []string{"before\n", "Traceback", "after"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := it.Execute(tt.src)
			if got == "" {
				t.Fatalf("Execute(%q) = %q, want diagnostic text", tt.src, got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Execute(%q) = %q, missing %q", tt.src, got, w)
				}
			}
		})
	}
}

func TestExecuteEngines(t *testing.T) {
	tests := []struct {
		lang string
		src  string
		want string
	}{
		{api.LangLua, "1 + 1", "2\n"},
		{api.LangJS, "1 + 1", "2\n"},
		{api.LangGo, "1 + 1", "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			it, err := New(&api.Config{Lang: tt.lang})
			if err != nil {
				t.Fatal(err)
			}
			defer it.Close()
			if got := it.Execute(tt.src); got != tt.want {
				t.Errorf("Execute(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestExecuteSerialized(t *testing.T) {
	it, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	if got := it.Execute("n = 0"); got != "" {
		t.Fatalf("Execute(n = 0) = %q, want %q", got, "")
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = it.Execute("n = n + 1")
		}(i)
	}
	wg.Wait()

	// no lost updates
	want := fmt.Sprintf("%d\n", workers)
	if got := it.Execute("n"); got != want {
		t.Errorf("Execute(n) = %q, want %q", got, want)
	}
	// no interleaved output within any call's buffer
	for i, got := range results {
		if got != "" {
			t.Errorf("worker %d: Execute(n = n + 1) = %q, want %q", i, got, "")
		}
	}
}

func TestBind(t *testing.T) {
	it, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	if err := it.Bind("who", "world"); err != nil {
		t.Fatal(err)
	}
	want := "\"hello world\"\n"
	if got := it.Execute(`"hello " + who`); got != want {
		t.Errorf("Execute() = %q, want %q", got, want)
	}
}

func TestNewUnknownLang(t *testing.T) {
	if _, err := New(&api.Config{Lang: "cobol"}); err == nil {
		t.Error("New() expected error for unknown lang")
	}
}

func TestExecuteAfterClose(t *testing.T) {
	it, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
	if err := it.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if got := it.Execute("1 + 1"); got != diagNoEngine {
		t.Errorf("Execute() = %q, want %q", got, diagNoEngine)
	}
}

func TestLifecycle(t *testing.T) {
	// not initialized: no crash, fixed diagnostic
	if got := Execute("1 + 1"); got != diagNoEngine {
		t.Errorf("Execute() = %q, want %q", got, diagNoEngine)
	}
	if got := Execute(""); got != "" {
		t.Errorf("Execute(\"\") = %q, want %q", got, "")
	}

	Initialize()
	Initialize() // no-op

	if got := Execute("1 + 1"); got != "2\n" {
		t.Errorf("Execute() = %q, want %q", got, "2\n")
	}
	if got := Execute("y = 1"); got != "" {
		t.Errorf("Execute() = %q, want %q", got, "")
	}
	if got := Execute("y"); got != "1\n" {
		t.Errorf("Execute() = %q, want %q", got, "1\n")
	}

	Finalize()
	Finalize() // no-op

	if got := Execute("y"); got != diagNoEngine {
		t.Errorf("Execute() after Finalize = %q, want %q", got, diagNoEngine)
	}
}
