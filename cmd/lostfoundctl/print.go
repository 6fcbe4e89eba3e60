package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/views"
)

func printPage(reg *views.Registry) {
	st := reg.State()
	if len(st.Items) == 0 {
		fmt.Println("No items found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tCATEGORY\tSTATUS\tLOCATION\tREPORTED")
	for _, it := range st.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Title, it.Type, it.Category, it.Status, it.Location, humanize.Time(it.CreatedAt))
	}
	w.Flush()

	fmt.Printf("\nPage %d of %d (%s items)", st.Query.Page, st.Pages, humanize.Comma(int64(st.Total)))
	if reg.CanNext() {
		fmt.Printf(", next: -page %d", st.Query.Page+1)
	}
	fmt.Println()
}

func printItem(it *model.Item) {
	fmt.Printf("%s\n", it.Title)
	fmt.Printf("  ID:        %s\n", it.ID)
	fmt.Printf("  Type:      %s\n", it.Type)
	fmt.Printf("  Category:  %s\n", it.Category)
	fmt.Printf("  Status:    %s\n", it.Status)
	fmt.Printf("  Location:  %s\n", it.Location)
	fmt.Printf("  Date:      %s\n", it.Date.Format("2006-01-02"))
	if len(it.Tags) > 0 {
		fmt.Printf("  Tags:      %s\n", strings.Join(it.Tags, ", "))
	}
	if it.Description != "" {
		fmt.Printf("  About:     %s\n", it.Description)
	}
	fmt.Printf("  Reporter:  %s <%s>", it.Reporter.Name, it.Reporter.Email)
	if it.Reporter.Phone != "" {
		fmt.Printf(" %s", it.Reporter.Phone)
	}
	fmt.Println()
	if it.Image != "" {
		fmt.Printf("  Image:     lostfoundctl image %s\n", it.ID)
	}
	fmt.Printf("  Reported:  %s\n", humanize.Time(it.CreatedAt))

	if len(it.ClaimRequests) > 0 {
		fmt.Println()
		fmt.Println("Claims:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, c := range it.ClaimRequests {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", c.ID, c.Claimant.Name, c.Status, humanize.Time(c.CreatedAt))
		}
		w.Flush()
	}
}

func printUsers(users []model.User) {
	if len(users) == 0 {
		fmt.Println("No users found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tROLE\tJOINED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Phone, u.Role, humanize.Time(u.CreatedAt))
	}
	w.Flush()
}

func printBoard(st views.BoardState) {
	section := func(title string, rows []views.ClaimRow) {
		fmt.Printf("%s (%d)\n", title, len(rows))
		if len(rows) == 0 {
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ITEM\tTITLE\tCLAIM\tCLAIMANT\tSTUDENT ID\tSTATUS\tFILED")
		for _, r := range rows {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Item.ID, r.Item.Title, r.Claim.ID, r.Claim.Claimant.Name, r.Claim.StudentID,
				r.Claim.Status, humanize.Time(r.Claim.CreatedAt))
		}
		w.Flush()
	}

	section("Pending claims", st.Pending())
	fmt.Println()
	section("Processed claims", st.Processed())
}
