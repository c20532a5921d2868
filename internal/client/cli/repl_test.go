package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failOn   string

	calls []string
}

func (f *fakeExec) record(name string, args []string) error {
	call := name
	if len(args) > 0 {
		call += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, call)
	if name == f.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Profile(ctx context.Context, args []string) error {
	return f.record("profile", args)
}
func (f *fakeExec) EditProfile(ctx context.Context) error  { return f.record("edit-profile", nil) }
func (f *fakeExec) Items(ctx context.Context) error        { return f.record("items", nil) }
func (f *fakeExec) Refresh(ctx context.Context) error      { return f.record("refresh", nil) }
func (f *fakeExec) ClearFilters(ctx context.Context) error { return f.record("clear", nil) }
func (f *fakeExec) Filter(ctx context.Context, args []string) error {
	return f.record("filter", args)
}
func (f *fakeExec) Unfilter(ctx context.Context, args []string) error {
	return f.record("unfilter", args)
}
func (f *fakeExec) Open(ctx context.Context, args []string) error { return f.record("open", args) }
func (f *fakeExec) Back(ctx context.Context) error                { return f.record("back", nil) }
func (f *fakeExec) Forward(ctx context.Context) error             { return f.record("forward", nil) }
func (f *fakeExec) Recent(ctx context.Context) error              { return f.record("recent", nil) }
func (f *fakeExec) Show(ctx context.Context, args []string) error { return f.record("show", args) }
func (f *fakeExec) Featured(ctx context.Context, args []string) error {
	return f.record("featured", args)
}
func (f *fakeExec) Categories(ctx context.Context) error    { return f.record("categories", nil) }
func (f *fakeExec) Sell(ctx context.Context) error          { return f.record("sell", nil) }
func (f *fakeExec) MyItems(ctx context.Context) error       { return f.record("my-items", nil) }
func (f *fakeExec) Conversations(ctx context.Context) error { return f.record("conversations", nil) }
func (f *fakeExec) Messages(ctx context.Context, args []string) error {
	return f.record("messages", args)
}
func (f *fakeExec) Send(ctx context.Context, args []string) error { return f.record("send", args) }
func (f *fakeExec) Orders(ctx context.Context, args []string) error {
	return f.record("orders", args)
}
func (f *fakeExec) Order(ctx context.Context, args []string) error { return f.record("order", args) }
func (f *fakeExec) Theme(ctx context.Context) error                { return f.record("theme", nil) }
func (f *fakeExec) Language(ctx context.Context) error             { return f.record("language", nil) }
func (f *fakeExec) Stats(ctx context.Context) error                { return f.record("stats", nil) }

// capturePrint swaps printlnFn for a recorder.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommandsWithArgs(t *testing.T) {
	capturePrint(t)

	input := strings.Join([]string{
		"login",
		"l",
		"filter category dresses",
		"unfilter category",
		"open q=coat&sort_by=price_asc",
		"back",
		"forward",
		"show 12",
		"send 3 hello there",
		"order selling 5 ship",
		"",
		"theme",
		"exit",
		"whoami",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(guest)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login",
		"items",
		"filter category dresses",
		"unfilter category",
		"open q=coat&sort_by=price_asc",
		"back",
		"forward",
		"show 12",
		"send 3 hello there",
		"order selling 5 ship",
		"theme",
	}, exec.calls)
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp\n")))

	assert.Contains(t, *lines, guestHelp)
	assert.Contains(t, *lines, memberHelp)
}

func TestRunREPL_PrintsErrorsAndUnknownCommands(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{failOn: "items"}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("items\nfoobar\nquit\n")))

	assert.Contains(t, *lines, "Error: items failed")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("recent")))

	assert.Equal(t, []string{"recent"}, exec.calls)
}
