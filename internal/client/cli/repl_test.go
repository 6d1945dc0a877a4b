package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// execStub records which commands the loop dispatched.
type execStub struct {
	loggedIn bool
	calls    []string
}

func (e *execStub) isLoggedIn() bool                          { return e.loggedIn }
func (e *execStub) Home(ctx context.Context)                  { e.calls = append(e.calls, "home") }
func (e *execStub) Login(ctx context.Context)                 { e.calls = append(e.calls, "login") }
func (e *execStub) Register(ctx context.Context)              { e.calls = append(e.calls, "register") }
func (e *execStub) Profile(ctx context.Context)               { e.calls = append(e.calls, "profile") }
func (e *execStub) Book(ctx context.Context)                  { e.calls = append(e.calls, "book") }
func (e *execStub) Cancel(ctx context.Context, arg string)    { e.calls = append(e.calls, "cancel "+arg) }
func (e *execStub) Logout(ctx context.Context)                { e.calls = append(e.calls, "logout") }

func TestRunREPLDispatch(t *testing.T) {
	stub := &execStub{}
	var out bytes.Buffer

	input := "home\nlogin\nregister\nbook\nprofile\ncancel 5\nlogout\nexit\n"
	runREPL(context.Background(), stub, func() string { return "" }, reader(input), &out)

	assert.Equal(t, []string{"home", "login", "register", "book", "profile", "cancel 5", "logout"}, stub.calls)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPLCancelWithoutArg(t *testing.T) {
	stub := &execStub{}
	var out bytes.Buffer

	runREPL(context.Background(), stub, func() string { return "" }, reader("cancel\nexit\n"), &out)

	assert.Empty(t, stub.calls)
	assert.Contains(t, out.String(), "Usage: cancel <id>")
}

func TestRunREPLUnknownCommand(t *testing.T) {
	stub := &execStub{}
	var out bytes.Buffer

	runREPL(context.Background(), stub, func() string { return "" }, reader("frobnicate\nexit\n"), &out)

	assert.Empty(t, stub.calls)
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestRunREPLHelpDependsOnAuth(t *testing.T) {
	var out bytes.Buffer
	runREPL(context.Background(), &execStub{loggedIn: false}, func() string { return "" }, reader("help\nexit\n"), &out)
	assert.Contains(t, out.String(), "login, register")
	assert.NotContains(t, out.String(), "logout")

	out.Reset()
	runREPL(context.Background(), &execStub{loggedIn: true}, func() string { return "" }, reader("help\nexit\n"), &out)
	assert.Contains(t, out.String(), "cancel <id>, logout")
}

func TestRunREPLBlankLinesIgnored(t *testing.T) {
	stub := &execStub{}
	var out bytes.Buffer

	runREPL(context.Background(), stub, func() string { return "" }, reader("\n   \nhome\nexit\n"), &out)

	assert.Equal(t, []string{"home"}, stub.calls)
}

func TestRunREPLStopsOnEOF(t *testing.T) {
	stub := &execStub{}
	var out bytes.Buffer

	runREPL(context.Background(), stub, func() string { return "" }, reader("home\n"), &out)

	assert.Equal(t, []string{"home"}, stub.calls)
}

func TestRunREPLStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &execStub{}
	var out bytes.Buffer
	runREPL(ctx, stub, func() string { return "" }, reader("home\nexit\n"), &out)

	assert.Empty(t, stub.calls)
}

func TestRunREPLPromptShowsStatus(t *testing.T) {
	var out bytes.Buffer
	runREPL(context.Background(), &execStub{}, func() string { return "(anna)" }, reader("exit\n"), &out)
	assert.Contains(t, out.String(), "salonbook (anna)> ")
}
