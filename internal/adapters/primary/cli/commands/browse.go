package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/denchenko/dash/internal/core/app"
)

const browseHelp = `Commands:
  n, next          next page
  p, prev          previous page
  page N           jump to page N
  search TEXT      search (empty TEXT clears it)
  category NAME    filter by category (products only)
  show ID          show one item
  h, help          this help
  q, quit          leave
`

type browseAction int

const (
	actionNone browseAction = iota
	actionNext
	actionPrev
	actionPage
	actionSearch
	actionCategory
	actionShow
	actionHelp
	actionQuit
)

type browseCommand struct {
	action browseAction
	arg    string
	n      int
}

var errUnknownCommand = errors.New("unknown command, type help")

func parseBrowseCommand(line string) (browseCommand, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return browseCommand{action: actionNone}, nil
	}

	word, rest, _ := strings.Cut(line, " ")
	word = strings.ToLower(word)
	rest = strings.TrimSpace(rest)

	switch word {
	case "n", "next":
		return browseCommand{action: actionNext}, nil
	case "p", "prev":
		return browseCommand{action: actionPrev}, nil
	case "h", "help", "?":
		return browseCommand{action: actionHelp}, nil
	case "q", "quit", "exit":
		return browseCommand{action: actionQuit}, nil
	case "search":
		return browseCommand{action: actionSearch, arg: rest}, nil
	case "category":
		return browseCommand{action: actionCategory, arg: rest}, nil
	case "page", "show":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return browseCommand{}, fmt.Errorf("%s needs a positive number", word)
		}
		if word == "page" {
			return browseCommand{action: actionPage, n: n}, nil
		}

		return browseCommand{action: actionShow, n: n}, nil
	default:
		return browseCommand{}, errUnknownCommand
	}
}

// browser is an interactive pager over one list store. Page bounds are checked here;
// the store accepts any page.
type browser[T any] struct {
	what        string
	store       *app.ListStore[T]
	render      func(app.ListState[T]) (string, error)
	show        func(ctx context.Context, id int) (string, error)
	setCategory func(string)
}

func (b *browser[T]) run(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := b.refresh(ctx, out); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			fmt.Fprintln(out)

			return scanner.Err()
		}

		cmd, err := parseBrowseCommand(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, err)

			continue
		}

		if cmd.action == actionQuit {
			return nil
		}

		refetch, err := b.apply(ctx, out, cmd)
		if err != nil {
			return err
		}

		if refetch {
			if err := b.refresh(ctx, out); err != nil {
				return err
			}
		}
	}
}

// apply executes cmd and reports whether the page must be fetched again.
func (b *browser[T]) apply(ctx context.Context, out io.Writer, cmd browseCommand) (bool, error) {
	state := b.store.State()

	switch cmd.action {
	case actionNone:
		return true, nil
	case actionNext:
		if state.Page+1 >= state.Pages() {
			fmt.Fprintln(out, "Already on the last page.")

			return false, nil
		}
		b.store.SetPage(state.Page + 1)
	case actionPrev:
		if state.Page == 0 {
			fmt.Fprintln(out, "Already on the first page.")

			return false, nil
		}
		b.store.SetPage(state.Page - 1)
	case actionPage:
		if pages := state.Pages(); cmd.n > pages {
			fmt.Fprintf(out, "There are %d pages.\n", pages)

			return false, nil
		}
		b.store.SetPage(cmd.n - 1)
	case actionSearch:
		b.store.SetSearch(cmd.arg)
	case actionCategory:
		if b.setCategory == nil {
			fmt.Fprintf(out, "%s have no categories.\n", b.what)

			return false, nil
		}
		b.setCategory(cmd.arg)
	case actionShow:
		formatted, err := b.show(ctx, cmd.n)
		if err != nil {
			fmt.Fprintln(out, app.Message(err, "Failed to load"))

			return false, nil
		}
		fmt.Fprint(out, formatted)

		return false, nil
	case actionHelp:
		fmt.Fprint(out, browseHelp)

		return false, nil
	}

	return true, nil
}

func (b *browser[T]) refresh(ctx context.Context, out io.Writer) error {
	fetchList(ctx, b.what, b.store)

	formatted, err := b.render(b.store.State())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Fprint(out, formatted)

	return nil
}
