package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests provide a lightweight
// stub.
type execIface interface {
	isLoggedIn() bool
	Home(ctx context.Context)
	Login(ctx context.Context)
	Register(ctx context.Context)
	Profile(ctx context.Context)
	Book(ctx context.Context)
	Cancel(ctx context.Context, arg string)
	Logout(ctx context.Context)
}

// runREPL is the command loop. It reads a line, parses the first token as
// the command, and dispatches to methods on a. Unknown commands are
// reported back to the user. The loop exits on read error (EOF), context
// cancellation, or when the user types "exit" or "quit".
//
// Command handlers print their own errors; the loop stays resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "salonbook %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: home, book, profile, cancel <id>, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: home, login, register, book, exit")
			}

		case "home":
			a.Home(ctx)

		case "login":
			a.Login(ctx)

		case "register":
			a.Register(ctx)

		case "book":
			a.Book(ctx)

		case "profile":
			a.Profile(ctx)

		case "cancel":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: cancel <id>")
				continue
			}
			a.Cancel(ctx, args[0])

		case "logout":
			a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
