package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context, args []string) error
	EditProfile(ctx context.Context) error

	Items(ctx context.Context) error
	Refresh(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	Unfilter(ctx context.Context, args []string) error
	ClearFilters(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	Recent(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Featured(ctx context.Context, args []string) error
	Categories(ctx context.Context) error

	Sell(ctx context.Context) error
	MyItems(ctx context.Context) error
	Conversations(ctx context.Context) error
	Messages(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
	Orders(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error

	Theme(ctx context.Context) error
	Language(ctx context.Context) error
	Stats(ctx context.Context) error
}

const (
	guestHelp = "Available commands: register, login, items, refresh, filter, unfilter, clear, open, back, forward, recent, " +
		"show, featured, categories, profile, theme, language, stats, exit"
	memberHelp = "Available commands: whoami, profile, edit-profile, items, refresh, filter, unfilter, clear, open, back, forward, " +
		"recent, show, featured, categories, sell, my-items, conversations, messages, send, orders, order, " +
		"theme, language, stats, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
// The first token of a line is the command, the rest are its arguments.
// A handler error is printed and the loop carries on. Commands that prompt
// for more input read from the same reader, so it is consumed line by line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sw %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(memberHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "profile":
			err = a.Profile(ctx, args)
		case "edit-profile":
			err = a.EditProfile(ctx)

		case "l", "items":
			err = a.Items(ctx)
		case "refresh":
			err = a.Refresh(ctx)
		case "filter":
			err = a.Filter(ctx, args)
		case "unfilter":
			err = a.Unfilter(ctx, args)
		case "clear":
			err = a.ClearFilters(ctx)
		case "open":
			err = a.Open(ctx, args)
		case "back":
			err = a.Back(ctx)
		case "forward":
			err = a.Forward(ctx)
		case "recent":
			err = a.Recent(ctx)
		case "show":
			err = a.Show(ctx, args)
		case "featured":
			err = a.Featured(ctx, args)
		case "categories":
			err = a.Categories(ctx)

		case "sell":
			err = a.Sell(ctx)
		case "my-items":
			err = a.MyItems(ctx)
		case "conversations":
			err = a.Conversations(ctx)
		case "messages":
			err = a.Messages(ctx, args)
		case "send":
			err = a.Send(ctx, args)
		case "orders":
			err = a.Orders(ctx, args)
		case "order":
			err = a.Order(ctx, args)

		case "theme":
			err = a.Theme(ctx)
		case "language":
			err = a.Language(ctx)
		case "stats":
			err = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
