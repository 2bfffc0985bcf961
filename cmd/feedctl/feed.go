package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"go-candidate-feed/internal/domain"
	"go-candidate-feed/internal/feed"

	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "List candidates, newest first",
	Long:  "List candidates newest first, or those whose role starts with --q, or those tagged with --category. Favorites of the signed-in user are starred.",
	Args:  cobra.NoArgs,
	RunE:  runFeed,
}

var (
	feedSearch   string
	feedCategory string
	feedPageSize int
	feedPages    int
)

func init() {
	feedCmd.Flags().StringVarP(&feedSearch, "q", "q", "", "Role prefix (case-sensitive)")
	feedCmd.Flags().StringVarP(&feedCategory, "category", "c", "", "Category tag")
	feedCmd.Flags().IntVarP(&feedPageSize, "page-size", "n", feed.DefaultPageSize, "Candidates per page")
	feedCmd.Flags().IntVarP(&feedPages, "pages", "p", 1, "Pages to load; 0 loads until the feed ends")
	feedCmd.MarkFlagsMutuallyExclusive("q", "category")

	rootCmd.AddCommand(feedCmd)
}

func runFeed(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	filter := domain.RecentFilter()
	switch {
	case feedSearch != "":
		filter = domain.SearchFilter(feedSearch)
	case feedCategory != "":
		filter = domain.CategoryFilter(feedCategory)
	}

	session := feed.NewSession(client, client, currentUser(), feed.SessionOptions{
		PageSize:             feedPageSize,
		Filter:               filter,
		Timeout:              timeout,
		RequireSignInForMore: true,
		OnNotice:             printNotice,
	})
	defer session.Close()

	ctx := commandContext(cmd)
	if err := session.Start(ctx); err != nil {
		return err
	}
	for loaded := 1; session.Feed().HasMore() && (feedPages == 0 || loaded < feedPages); loaded++ {
		if err := session.LoadMore(ctx); err != nil {
			if errors.Is(err, domain.ErrNotSignedIn) {
				break
			}
			return err
		}
	}

	items := session.Candidates()
	if jsonOutput {
		return printJSON(items)
	}
	printCandidates(items)
	if session.Feed().HasMore() {
		fmt.Fprintln(os.Stderr, "More candidates available; raise --pages to see them.")
	}
	return nil
}

func printCandidates(items []domain.CandidateProfile) {
	if len(items) == 0 {
		fmt.Println("No candidates found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tNAME\tROLE\tLOCATION\tEXPERIENCE")
	for _, c := range items {
		star := ""
		if c.IsFavorited {
			star = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", star, c.ID, c.Name, c.Role, c.Location, c.Experience)
	}
	_ = w.Flush()
}
