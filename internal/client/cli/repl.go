package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Kundali(ctx context.Context) error
	Match(ctx context.Context) error
	Horoscope(ctx context.Context, args []string) error
	Panchang(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error
	Predict(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Names(ctx context.Context) error
	Status(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: signup, login, status, exit"
	helpSignedIn  = "Available commands: kundali, match, horoscope <sign> [timeframe], panchang [date] [location], " +
		"chat <message>, predict <remedies|numerology|festival|babyNames> <input>, history, names, status, " +
		"logout, delete, exit"
)

// runREPL starts a simple read–eval–print loop for the Divya Drishti CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Content commands require a
// signed-in user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. Prompts issued by handlers read from the same reader, so
// a single buffered stdin serves both.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("dd%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "signup", "register":
			_ = a.Signup(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "status":
			_ = a.Status(ctx)
			continue
		}

		if !a.isLoggedIn() {
			if isKnownCommand(cmd) {
				printlnFn("Please login or signup first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "delete":
			_ = a.DeleteAccount(ctx)
		case "kundali":
			_ = a.Kundali(ctx)
		case "match":
			_ = a.Match(ctx)
		case "horoscope":
			_ = a.Horoscope(ctx, args)
		case "panchang":
			_ = a.Panchang(ctx, args)
		case "chat":
			_ = a.Chat(ctx, args)
		case "predict":
			_ = a.Predict(ctx, args)
		case "history":
			_ = a.History(ctx)
		case "names":
			_ = a.Names(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isKnownCommand(cmd string) bool {
	switch cmd {
	case "logout", "delete", "kundali", "match", "horoscope", "panchang", "chat", "predict", "history", "names":
		return true
	}
	return false
}
