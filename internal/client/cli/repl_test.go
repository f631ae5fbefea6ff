package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	opened bool

	calls []string
	args  []string
}

func (f *fakeExec) hasConversation() bool { return f.opened }
func (f *fakeExec) Open(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "open")
	f.args = args
	f.opened = true
	return nil
}
func (f *fakeExec) SendText(ctx context.Context) error {
	f.calls = append(f.calls, "send")
	return nil
}
func (f *fakeExec) Knock(ctx context.Context) error {
	f.calls = append(f.calls, "knock")
	return nil
}
func (f *fakeExec) SendLocation(ctx context.Context) error {
	f.calls = append(f.calls, "location")
	return nil
}
func (f *fakeExec) Attach(ctx context.Context) error {
	f.calls = append(f.calls, "attach")
	return nil
}
func (f *fakeExec) CancelUpload(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "cancel")
	return nil
}
func (f *fakeExec) List(ctx context.Context) error {
	f.calls = append(f.calls, "list")
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "delete")
	return nil
}
func (f *fakeExec) SaveAsset(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "save")
	f.args = args
	return nil
}

func TestRunREPL_DispatchOrder(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"open conv-1",
		"help",
		"send",
		"knock",
		"location",
		"l",
		"delete m-1",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"open", "send", "knock", "location", "list", "delete"}
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

func TestRunREPL_SaveArgsAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("save asset-1 /tmp/out.bin\nquit\nsend\n")
	exec := &fakeExec{opened: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "save" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if len(exec.args) != 2 || exec.args[0] != "asset-1" || exec.args[1] != "/tmp/out.bin" {
		t.Fatalf("unexpected args: %v", exec.args)
	}
}

func TestRunREPL_EOFStopsLoop(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader(""))
	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
