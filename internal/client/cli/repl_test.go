package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	admin    bool
	expired  bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name, arg string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
}

func (f *fakeExec) isLoggedIn() bool         { return f.loggedIn }
func (f *fakeExec) isAdmin() bool            { return f.admin }
func (f *fakeExec) loginPromptPending() bool { return f.expired }
func (f *fakeExec) Register(ctx context.Context) error {
	f.record("register", "")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login", "")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", "")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error { f.record("whoami", ""); return nil }
func (f *fakeExec) UpdateEmail(ctx context.Context) error {
	f.record("email", "")
	return nil
}
func (f *fakeExec) ChangePassword(ctx context.Context) error {
	f.record("passwd", "")
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.record("list", ""); return nil }
func (f *fakeExec) Take(ctx context.Context, id string) error {
	f.record("take", id)
	return nil
}
func (f *fakeExec) Results(ctx context.Context) error { f.record("results", ""); return nil }
func (f *fakeExec) Result(ctx context.Context, id string) error {
	f.record("result", id)
	return nil
}
func (f *fakeExec) Users(ctx context.Context) error { f.record("users", ""); return nil }
func (f *fakeExec) RemoveUser(ctx context.Context, id string) error {
	f.record("rmuser", id)
	return nil
}
func (f *fakeExec) AddQuestionnaire(ctx context.Context) error {
	f.record("addq", "")
	return nil
}
func (f *fakeExec) RemoveQuestionnaire(ctx context.Context, id string) error {
	f.record("rmq", id)
	return nil
}
func (f *fakeExec) SetPublished(ctx context.Context, id string, active bool) error {
	if active {
		f.record("publish", id)
	} else {
		f.record("unpublish", id)
	}
	return nil
}
func (f *fakeExec) EditQuestionnaire(ctx context.Context, id string) error {
	f.record("editq", id)
	return nil
}
func (f *fakeExec) Questions(ctx context.Context, id string) error {
	f.record("questions", id)
	return nil
}
func (f *fakeExec) EditQuestion(ctx context.Context, questionnaireID, questionID string) error {
	f.record("editquestion", questionnaireID+":"+questionID)
	return nil
}
func (f *fakeExec) RemoveQuestion(ctx context.Context, id string) error {
	f.record("rmquestion", id)
	return nil
}

func silencePrint(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"list",
		"take 3",
		"results",
		"result 7",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "list", "take", "results", "result"}
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

func TestRunREPL_ArgumentsForwarded(t *testing.T) {
	silencePrint(t)

	input := strings.NewReader(
		"take 12\nresult 5\nrmuser 9\npublish 2\nunpublish 2\neditq 4\nquestions 4\neditquestion 4 31\nrmquestion 31\nquit\n")
	exec := &fakeExec{loggedIn: true, admin: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	wantCalls := []string{"take", "result", "rmuser", "publish", "unpublish", "editq", "questions", "editquestion", "rmquestion"}
	wantArgs := []string{"12", "5", "9", "2", "2", "4", "4", "4:31", "31"}
	if len(exec.calls) != len(wantCalls) {
		t.Fatalf("calls mismatch: %v", exec.calls)
	}
	for i := range wantCalls {
		if exec.calls[i] != wantCalls[i] || exec.args[i] != wantArgs[i] {
			t.Fatalf("call %d: got %s(%s), want %s(%s)",
				i, exec.calls[i], exec.args[i], wantCalls[i], wantArgs[i])
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	silencePrint(t)

	// Commands that need an argument are not dispatched without one.
	input := strings.NewReader("take\nresult\nrmuser\nrmq\npublish\nunpublish\neditq\nquestions\neditquestion 4\nrmquestion\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_ExpiredSessionNotice(t *testing.T) {
	origPrint := printlnFn
	var printed []string
	printlnFn = func(args ...any) (int, error) {
		for _, a := range args {
			if s, ok := a.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("exit\n")
	exec := &fakeExec{expired: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	found := false
	for _, s := range printed {
		if strings.Contains(s, "session has expired") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected expiry notice, printed: %v", printed)
	}
}
