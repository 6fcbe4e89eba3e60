package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erazemk/lostfound/internal/client"
	"github.com/erazemk/lostfound/internal/session"
	"github.com/erazemk/lostfound/internal/views"
)

const usage = `Usage: lostfoundctl [-server <url>] [-session <path>] <command> [flags]

Commands:
  login       sign in and save the session
  register    create an account
  logout      revoke the session token and forget it
  whoami      show the signed-in profile
  report      report a lost or found item
  list        browse items
  show        show one item
  claim       file an ownership claim on an item
  take        mark an approved item claimed without review
  image       download an item's image
  admin       moderation console (admins only)

Global flags:
  -server <url>      server address (default: $LOSTFOUND_SERVER or http://localhost:8080)
  -session <path>    session file (default: ~/.lostfound/session.json)
`

// app bundles what every command needs.
type app struct {
	client  *client.Client
	session *session.Holder
}

func main() {
	fs := flag.NewFlagSet("lostfoundctl", flag.ContinueOnError)

	defaultServer := os.Getenv("LOSTFOUND_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	var server string
	fs.StringVar(&server, "server", defaultServer, "")
	fs.StringVar(&server, "s", defaultServer, "")

	var sessionPath string
	fs.StringVar(&sessionPath, "session", "", "")

	fs.Usage = func() { fmt.Fprint(os.Stdout, usage) }

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	if sessionPath == "" {
		p, err := session.DefaultPath()
		if err != nil {
			fatal(err)
		}
		sessionPath = p
	}
	holder, err := session.NewHolder(session.FileStore{Path: sessionPath})
	if err != nil {
		fatal(err)
	}

	a := &app{client: client.New(server, holder), session: holder}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, args := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		err = a.cmdLogin(ctx, args)
	case "register":
		err = a.cmdRegister(ctx, args)
	case "logout":
		err = a.cmdLogout(ctx)
	case "whoami":
		err = a.cmdWhoami(ctx)
	case "report":
		err = a.cmdReport(ctx, args)
	case "list":
		err = a.cmdList(ctx, args)
	case "show":
		err = a.cmdShow(ctx, args)
	case "claim":
		err = a.cmdClaim(ctx, args)
	case "take":
		err = a.cmdTake(ctx, args)
	case "image":
		err = a.cmdImage(ctx, args)
	case "admin":
		err = a.cmdAdmin(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", cmd, usage)
		os.Exit(1)
	}

	if err != nil {
		fatal(err)
	}
}

// fatal prints err with a hint matching its kind and exits.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var ce *client.Error
	if errors.As(err, &ce) {
		for field, msg := range ce.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
	}

	switch views.RedirectFor(err) {
	case views.RedirectLogin:
		fmt.Fprintln(os.Stderr, "Sign in with: lostfoundctl login -email <address>")
	case views.RedirectBrowse:
		fmt.Fprintln(os.Stderr, "This needs an admin account. Browse items with: lostfoundctl list")
	}
	if client.IsKind(err, client.KindTransient) {
		fmt.Fprintln(os.Stderr, "The server may be unavailable. Try again later.")
	}
	os.Exit(1)
}

// parseArgs parses flags that may follow positional arguments, so both
// "show -x <id>" and "show <id> -x" work.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}
