package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/views"
)

const adminUsage = `Usage: lostfoundctl admin <subcommand>

Subcommands:
  overview                          pending item and claim counts
  pending|approved|all [filters]    list items by moderation tab
  approve <id>                      publish a pending item
  reject <id>                       reject a pending item
  delete <id>                       delete an item that is not claimed
  users [-search text]              list accounts
  claims                            list claim requests
  decide <item-id> <claim-id> approve|reject
`

var listTabs = map[string]views.Tab{
	"pending":  views.TabPending,
	"approved": views.TabApproved,
	"all":      views.TabAll,
}

func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Print(adminUsage)
		return errors.New("missing admin subcommand")
	}

	console := views.NewConsole(a.client, a.session)
	sub, args := args[0], args[1:]

	if tab, ok := listTabs[sub]; ok {
		return a.adminList(ctx, console, tab, args)
	}

	switch sub {
	case "overview":
		o, err := console.Overview(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Items awaiting moderation: %d\n", o.PendingItems)
		fmt.Printf("Claims awaiting decision:  %d\n", o.PendingClaims)
		return nil

	case "approve", "reject", "delete":
		fs := flag.NewFlagSet(sub, flag.ExitOnError)
		ids, err := parseArgs(fs, args)
		if err != nil {
			return err
		}
		if len(ids) != 1 {
			return fmt.Errorf("usage: lostfoundctl admin %s <item-id>", sub)
		}
		// Actions run against the "all" tab so the refreshed page is shown.
		if _, err := console.Open(ctx, views.TabAll); err != nil {
			return err
		}
		action := map[string]func(context.Context, string) error{
			"approve": console.Approve,
			"reject":  console.Reject,
			"delete":  console.Delete,
		}[sub]
		if err := action(ctx, ids[0]); err != nil {
			return err
		}
		fmt.Printf("Item %s: %s done.\n", ids[0], sub)
		printPage(console.Registry(views.TabAll))
		return nil

	case "users":
		fs := flag.NewFlagSet("users", flag.ExitOnError)
		search := fs.String("search", "", "match name or email")
		if _, err := parseArgs(fs, args); err != nil {
			return err
		}
		if _, err := console.Open(ctx, views.TabUsers); err != nil {
			return err
		}
		if *search != "" {
			if err := console.Users().Search(ctx, *search); err != nil {
				return err
			}
		}
		printUsers(console.Users().State().Users)
		return nil

	case "claims":
		if _, err := console.Open(ctx, views.TabClaims); err != nil {
			return err
		}
		printBoard(console.Board().State())
		return nil

	case "decide":
		if len(args) != 3 {
			return errors.New("usage: lostfoundctl admin decide <item-id> <claim-id> approve|reject")
		}
		outcome := model.Outcome(args[2])
		if !outcome.Valid() {
			return fmt.Errorf("decision must be approve or reject, got %q", args[2])
		}
		if _, err := console.Open(ctx, views.TabClaims); err != nil {
			return err
		}
		if err := console.Board().Decide(ctx, args[0], args[1], outcome); err != nil {
			return err
		}
		fmt.Printf("Claim %s %s.\n", args[1], outcome.ClaimStatus())
		printBoard(console.Board().State())
		return nil

	default:
		fmt.Print(adminUsage)
		return fmt.Errorf("unknown admin subcommand %q", sub)
	}
}

func (a *app) adminList(ctx context.Context, console *views.Console, tab views.Tab, args []string) error {
	fs := flag.NewFlagSet(string(tab), flag.ExitOnError)
	query := queryFlags(fs)
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	// Open selects the tab; loadPage then applies the filters to it.
	if _, err := console.Open(ctx, tab); err != nil {
		return err
	}
	if err := loadPage(ctx, console.Registry(tab), query()); err != nil {
		return err
	}
	printPage(console.Registry(tab))
	return nil
}
