package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/erazemk/lostfound/internal/client"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/views"
)

// readPassword takes the password from LOSTFOUND_PASSWORD or the first line
// of stdin.
func readPassword() (string, error) {
	if p := os.Getenv("LOSTFOUND_PASSWORD"); p != "" {
		return p, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	s, err := a.client.Login(ctx, *email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", s.User.Name, s.User.Role)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "institutional email")
	phone := fs.String("phone", "", "phone number")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	u, err := a.client.Register(ctx, client.Registration{Name: *name, Email: *email, Phone: *phone, Password: password})
	if err != nil {
		return err
	}
	fmt.Printf("Account created for %s. Sign in with: lostfoundctl login -email %s\n", u.Name, u.Email)
	return nil
}

func (a *app) cmdLogout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	fmt.Printf("  Role:    %s\n", u.Role)
	if u.Phone != "" {
		fmt.Printf("  Phone:   %s\n", u.Phone)
	}
	fmt.Printf("  Joined:  %s\n", humanize.Time(u.CreatedAt))
	return nil
}

func (a *app) cmdReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	title := fs.String("title", "", "short title")
	description := fs.String("description", "", "description")
	category := fs.String("category", model.CategoryOther, "one of "+strings.Join(model.Categories, ", "))
	location := fs.String("location", "", "where it was lost or found")
	date := fs.String("date", "", "when, as YYYY-MM-DD (default: today)")
	tags := fs.String("tags", "", "comma-separated tags")
	typ := fs.String("type", model.ItemTypeFound, "lost or found")
	imagePath := fs.String("image", "", "path to a JPEG or PNG photo")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	r := client.Report{
		Title:       *title,
		Description: *description,
		Category:    *category,
		Location:    *location,
		Type:        *typ,
	}
	if *tags != "" {
		r.Tags = strings.Split(*tags, ",")
	}
	if *date != "" {
		d, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("invalid -date %q, want YYYY-MM-DD", *date)
		}
		r.Date = d
	}
	if *imagePath != "" {
		f, err := os.Open(*imagePath)
		if err != nil {
			return fmt.Errorf("opening image: %w", err)
		}
		defer f.Close()
		r.Image, r.ImageName = f, *imagePath
	}

	item, err := a.client.CreateItem(ctx, r)
	if err != nil {
		return err
	}
	fmt.Printf("Reported %q (%s). It will be listed once an admin approves it.\n", item.Title, item.ID)
	return nil
}

// queryFlags registers the listing filters on fs.
func queryFlags(fs *flag.FlagSet) func() client.Query {
	category := fs.String("category", "", "category filter")
	status := fs.String("status", "", "status filter; lost or found filter by type")
	typ := fs.String("type", "", "lost or found")
	search := fs.String("search", "", "free-text search")
	location := fs.String("location", "", "location filter")
	tag := fs.String("tag", "", "tag filter")
	page := fs.Int("page", 1, "page number")
	return func() client.Query {
		return client.Query{
			Category: *category, Status: *status, Type: *typ, Search: *search,
			Location: *location, Tag: *tag, Page: *page,
		}
	}
}

// loadPage sets the registry filters and moves to the requested page.
func loadPage(ctx context.Context, reg *views.Registry, q client.Query) error {
	if err := reg.SetFilter(ctx, q); err != nil {
		return err
	}
	if q.Page > 1 {
		if err := reg.Goto(ctx, q.Page); errors.Is(err, views.ErrOutOfRange) {
			return fmt.Errorf("page %d is out of range (1-%d)", q.Page, reg.State().Pages)
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (a *app) cmdList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	mine := fs.Bool("mine", false, "only items you reported")
	query := queryFlags(fs)
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	audience := views.AudiencePublic
	switch {
	case *mine:
		audience = views.AudienceMine
	case a.session.Snapshot().Authenticated():
		audience = views.AudienceAll
	}

	reg := views.NewRegistry(a.client, audience)
	if err := loadPage(ctx, reg, query()); err != nil {
		return err
	}
	printPage(reg)
	return nil
}

func (a *app) cmdShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	ids, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return errors.New("usage: lostfoundctl show <item-id>")
	}

	item, err := a.client.GetItem(ctx, ids[0])
	if err != nil {
		return err
	}
	printItem(item)
	return nil
}

func (a *app) cmdClaim(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("claim", flag.ExitOnError)
	var d model.ClaimDetails
	fs.StringVar(&d.StudentID, "student-id", "", "student ID")
	fs.StringVar(&d.AdmissionNumber, "admission", "", "admission number")
	fs.StringVar(&d.NationalID, "national-id", "", "national ID")
	fs.StringVar(&d.ContactNumber, "contact", "", "contact number")
	fs.StringVar(&d.Reason, "reason", "", "how is this your item")
	fs.StringVar(&d.ProofOfOwnership, "proof", "", "proof of ownership (optional)")
	ids, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return errors.New("usage: lostfoundctl claim <item-id> -student-id ... -reason ...")
	}

	form := views.NewClaimForm(a.client, ids[0])
	form.SetDetails(d)
	claim, err := form.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Claim %s submitted and awaiting review.\n", claim.ID)
	if st := form.State(); st.Item != nil {
		fmt.Printf("Item %q is %s.\n", st.Item.Title, st.Item.Status)
	}
	return nil
}

func (a *app) cmdTake(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("take", flag.ExitOnError)
	ids, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return errors.New("usage: lostfoundctl take <item-id>")
	}

	item, err := a.client.ClaimItem(ctx, ids[0])
	if err != nil {
		return err
	}
	fmt.Printf("Item %q is now %s.\n", item.Title, item.Status)
	return nil
}

func (a *app) cmdImage(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	out := fs.String("o", "", "output file (default: <item-id>.jpg)")
	ids, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return errors.New("usage: lostfoundctl image <item-id> [-o file]")
	}
	if *out == "" {
		*out = ids[0] + ".jpg"
	}

	data, err := a.client.ItemImage(ctx, ids[0])
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	fmt.Printf("Saved %s (%s)\n", *out, humanize.Bytes(uint64(len(data))))
	return nil
}
