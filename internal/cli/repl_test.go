package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	ready    bool
	open     bool
	touched  int
	calls    []string
	lastArgs []string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.lastArgs = args
	return nil
}

func (f *fakeExec) initialized(ctx context.Context) bool { return f.ready }
func (f *fakeExec) unlocked() bool                       { return f.open }
func (f *fakeExec) touch()                               { f.touched++ }

func (f *fakeExec) Initialize(ctx context.Context) error {
	f.ready, f.open = true, true
	return f.record("init", nil)
}
func (f *fakeExec) Unlock(ctx context.Context) error {
	f.open = true
	return f.record("unlock", nil)
}
func (f *fakeExec) Lock(ctx context.Context) error {
	f.open = false
	return f.record("lock", nil)
}
func (f *fakeExec) Rekey(ctx context.Context) error { return f.record("rekey", nil) }

func (f *fakeExec) AddEntry(ctx context.Context) error { return f.record("add", nil) }
func (f *fakeExec) List(ctx context.Context, args []string) error {
	return f.record("list", args)
}
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) Edit(ctx context.Context, args []string) error {
	return f.record("edit", args)
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("delete", args)
}
func (f *fakeExec) Search(ctx context.Context, args []string) error {
	return f.record("search", args)
}
func (f *fakeExec) Favorites(ctx context.Context) error { return f.record("favorites", nil) }
func (f *fakeExec) ToggleFavorite(ctx context.Context, args []string) error {
	return f.record("fav", args)
}

func (f *fakeExec) Categories(ctx context.Context) error  { return f.record("cats", nil) }
func (f *fakeExec) AddCategory(ctx context.Context) error { return f.record("addcat", nil) }
func (f *fakeExec) EditCategory(ctx context.Context, args []string) error {
	return f.record("editcat", args)
}
func (f *fakeExec) DeleteCategory(ctx context.Context, args []string) error {
	return f.record("delcat", args)
}

func (f *fakeExec) Generate(ctx context.Context, args []string) error {
	return f.record("gen", args)
}
func (f *fakeExec) Export(ctx context.Context, args []string) error {
	return f.record("export", args)
}
func (f *fakeExec) Import(ctx context.Context, args []string) error {
	return f.record("import", args)
}
func (f *fakeExec) Backup(ctx context.Context, args []string) error {
	return f.record("backup", args)
}
func (f *fakeExec) Settings(ctx context.Context, args []string) error {
	return f.record("settings", args)
}

func TestRunREPL_UnlockFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"add",
		"list",
		"show 3",
		"search bank",
		"gen pw 16",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{ready: true, open: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"unlock", "add", "list", "show", "search", "gen"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgsArePassedThrough(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("backup restore 2\nexit\n")
	exec := &fakeExec{ready: true, open: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "backup" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if len(exec.lastArgs) != 2 || exec.lastArgs[0] != "restore" || exec.lastArgs[1] != "2" {
		t.Fatalf("unexpected args: %v", exec.lastArgs)
	}
}

func TestRunREPL_Aliases(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("l\nfavs\ndel 7\nunlock\nquit\n")
	exec := &fakeExec{ready: true, open: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	want := []string{"list", "favorites", "delete", "unlock"}
	if len(exec.calls) != len(want) {
		t.Fatalf("got calls %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("got calls %v, want %v", exec.calls, want)
		}
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	origPrint := printlnFn
	var printed []string
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("frobnicate\nquit\n")
	exec := &fakeExec{ready: true, open: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	joined := strings.Join(printed, "|")
	if !strings.Contains(joined, "Unknown command:") {
		t.Fatalf("missing unknown command message, printed: %v", printed)
	}
	if !strings.Contains(joined, "Bye!") {
		t.Fatalf("missing goodbye, printed: %v", printed)
	}
}

func TestRunREPL_BlankLinesAndEOF(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("\n   \nlist\n")
	exec := &fakeExec{ready: true, open: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if exec.touched != 1 {
		t.Fatalf("blank lines must not count as activity, touched=%d", exec.touched)
	}
}
