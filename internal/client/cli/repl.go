package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const helpText = `Available commands:
  tab users|addresses       switch view (reloads it)
  (l)ist                    reload and show the list
  show <id>                 show one record
  new                       fill in a new record
  edit <id>                 edit a record
  form                      resume the current form
  cancel                    discard the current form
  delete <id>               delete a record (asks first)
  filter <STATUS|userId|->  filter users by status or addresses by user, - clears
  exit | quit               leave the program`

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	SwitchTab(ctx context.Context, name string) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Resume(ctx context.Context) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Filter(ctx context.Context, arg string) error
	Report()
}

// runREPL reads commands from reader until EOF, exit/quit or ctx is done,
// and dispatches them to a. Prompts and REPL notices go to w. Handler errors
// are not fatal: the handlers have already reported them, and Report prints
// the view's messages after every command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "um (%s) > ", statusFn())
		line, err := readLineContext(ctx, reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		arg := func() (string, bool) {
			if len(args) == 0 {
				fmt.Fprintf(w, "Usage: %s <arg>\n", cmd)
				return "", false
			}
			return args[0], true
		}

		switch cmd {
		case "help", "?":
			fmt.Fprintln(w, helpText)
			continue

		case "tab":
			v, ok := arg()
			if !ok {
				continue
			}
			_ = a.SwitchTab(ctx, v)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			v, ok := arg()
			if !ok {
				continue
			}
			_ = a.Show(ctx, v)

		case "new":
			_ = a.New(ctx)

		case "edit":
			v, ok := arg()
			if !ok {
				continue
			}
			_ = a.Edit(ctx, v)

		case "form":
			_ = a.Resume(ctx)

		case "cancel":
			_ = a.Cancel(ctx)

		case "delete", "rm":
			v, ok := arg()
			if !ok {
				continue
			}
			_ = a.Delete(ctx, v)

		case "filter":
			v, ok := arg()
			if !ok {
				continue
			}
			_ = a.Filter(ctx, v)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
			continue
		}

		a.Report()
	}
}

type lineResult struct {
	line string
	err  error
}

// readLineContext reads one line from reader, returning ctx.Err() as soon
// as ctx is done. An abandoned read keeps the reader; callers must not read
// from it again after a cancellation.
func readLineContext(ctx context.Context, reader *bufio.Reader) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := readLine(reader)
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}
