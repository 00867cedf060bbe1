package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-recall-keeper/internal/app"
	"github.com/MKhiriev/go-recall-keeper/internal/service"
	"github.com/MKhiriev/go-recall-keeper/models"
	"golang.org/x/term"
)

var errQuit = errors.New("quit")

// shell is the line-oriented front end: one command per line.
type shell struct {
	auth service.AuthService
	in   *bufio.Scanner
	out  io.Writer

	// password reads a password without echo; nil reads a plain line.
	password func(prompt string) (string, error)

	session *service.Session
}

func (sh *shell) run(ctx context.Context) error {
	defer func() {
		if sh.session != nil {
			// the final save must run even after an interrupt
			if err := sh.auth.Logout(context.WithoutCancel(ctx), sh.session); err != nil {
				sh.fail(err)
			}
			sh.session = nil
		}
	}()

	sh.help()
	for ctx.Err() == nil {
		line, ok := sh.prompt("> ")
		if !ok {
			return sh.in.Err()
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		err := sh.dispatch(ctx, fields[0], fields[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			sh.fail(err)
		}
	}
	return ctx.Err()
}

func (sh *shell) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		sh.help()
		return nil
	case "signup":
		return sh.signup(ctx)
	case "login":
		return sh.login(ctx)
	}

	if sh.session == nil {
		return service.ErrSessionClosed
	}
	switch cmd {
	case "logout":
		err := sh.auth.Logout(ctx, sh.session)
		sh.session = nil
		return err
	case "add":
		return sh.add(ctx)
	case "list":
		sh.list()
		return nil
	case "due":
		return sh.due()
	case "review":
		return sh.review(ctx)
	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: remove <id>", service.ErrInvalidItem)
		}
		return sh.session.RemoveItem(ctx, args[0])
	case "tags":
		for tag, w := range sh.session.Tags() {
			fmt.Fprintf(sh.out, "%s: %d\n", tag, w)
		}
		return nil
	case "tag":
		if len(args) != 2 {
			return fmt.Errorf("%w: usage: tag <name> <weight>", service.ErrInvalidItem)
		}
		w, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: weight %q", service.ErrInvalidItem, args[1])
		}
		return sh.session.SetTagWeight(args[0], w)
	case "untag":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: untag <name>", service.ErrInvalidItem)
		}
		return sh.session.RemoveTagWeight(args[0])
	case "save":
		return sh.session.Save(ctx)
	default:
		fmt.Fprintf(sh.out, "unknown command %q, type help\n", cmd)
		return nil
	}
}

func (sh *shell) signup(ctx context.Context) error {
	username, password, err := sh.credentials()
	if err != nil {
		return err
	}
	if err = sh.auth.Signup(ctx, username, password); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "signed up, you can log in now")
	return nil
}

func (sh *shell) login(ctx context.Context) error {
	if sh.session != nil {
		if err := sh.auth.Logout(ctx, sh.session); err != nil {
			return err
		}
		sh.session = nil
	}

	username, password, err := sh.credentials()
	if err != nil {
		return err
	}
	session, err := sh.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	sh.session = session

	due, _ := session.DueItems()
	fmt.Fprintf(sh.out, "welcome %s: %d items, %d due\n", username, len(session.Items()), len(due))
	return nil
}

func (sh *shell) credentials() (string, string, error) {
	username, _ := sh.prompt("username: ")
	if sh.password == nil {
		password, _ := sh.prompt("password: ")
		return strings.TrimSpace(username), password, nil
	}
	password, err := sh.password("password: ")
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(username), password, nil
}

func (sh *shell) add(ctx context.Context) error {
	title, _ := sh.prompt("title: ")
	content, _ := sh.prompt("content: ")
	tagLine, _ := sh.prompt("tags (comma separated): ")

	item, err := sh.session.AddItem(ctx, title, content, []string{tagLine})
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "added %s, due %s\n", item.ID, item.NextReview.Format("2006-01-02"))
	return nil
}

func (sh *shell) list() {
	for _, item := range sh.session.Items() {
		leech := ""
		if item.IsLeech {
			leech = " [leech]"
		}
		fmt.Fprintf(sh.out, "%s  %s  next %s  interval %dd%s\n",
			item.ID, item.Title, item.NextReview.Format("2006-01-02"), item.Interval, leech)
	}
}

func (sh *shell) due() error {
	ids, err := sh.session.DueItems()
	if err != nil {
		return err
	}
	for _, id := range ids {
		item, _ := sh.session.Item(id)
		fmt.Fprintf(sh.out, "%s  %s\n", id, item.Title)
	}
	fmt.Fprintf(sh.out, "%d due\n", len(ids))
	return nil
}

// review walks a snapshot of the due list taken before the first rating.
func (sh *shell) review(ctx context.Context) error {
	ids, err := sh.session.DueItems()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(sh.out, "nothing due")
		return nil
	}

	for n, id := range ids {
		item, ok := sh.session.Item(id)
		if !ok {
			continue
		}
		fmt.Fprintf(sh.out, "[%d/%d] %s\n", n+1, len(ids), item.Title)
		if _, ok = sh.prompt("press enter to show the answer"); !ok {
			return nil
		}
		fmt.Fprintln(sh.out, item.Content)

		for {
			answer, ok := sh.prompt("again/hard/good/easy (or stop): ")
			if !ok || answer == "stop" {
				return nil
			}
			q, err := models.ParseQuality(strings.ToLower(strings.TrimSpace(answer)))
			if err != nil {
				sh.fail(err)
				continue
			}
			reviewed, err := sh.session.Review(ctx, id, q)
			if err != nil {
				return err
			}
			fmt.Fprintf(sh.out, "next review in %d days\n", reviewed.Interval)
			break
		}
	}
	return nil
}

func (sh *shell) prompt(text string) (string, bool) {
	fmt.Fprint(sh.out, text)
	if !sh.in.Scan() {
		return "", false
	}
	return sh.in.Text(), true
}

func (sh *shell) fail(err error) {
	fmt.Fprintln(sh.out, "error:", app.MessageFor(err))
}

func (sh *shell) help() {
	fmt.Fprintln(sh.out, "commands: signup login logout add list due review remove tag untag tags save help quit")
}

// terminalPassword reads without echo. It is used only when stdin is a
// terminal; otherwise the password is read as a plain line.
func terminalPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
