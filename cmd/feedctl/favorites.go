package main

import (
	"context"
	"fmt"

	"go-candidate-feed/internal/feed"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List the signed-in user's favorites",
	Args:  cobra.NoArgs,
	RunE:  runFavorites,
}

var favoritesProfiles bool

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Change one favorite",
}

func init() {
	favoritesCmd.Flags().BoolVar(&favoritesProfiles, "profiles", false, "Show full profiles instead of ids")
	rootCmd.AddCommand(favoritesCmd)

	for _, sub := range []struct {
		use, short string
		want       *bool
	}{
		{"add <candidate-id>", "Mark a candidate as favorite", boolPtr(true)},
		{"remove <candidate-id>", "Unmark a favorite candidate", boolPtr(false)},
		{"toggle <candidate-id>", "Flip a candidate's favorite mark", nil},
	} {
		want := sub.want
		favoriteCmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFavorite(cmd, args[0], want)
			},
		})
	}
	rootCmd.AddCommand(favoriteCmd)
}

func boolPtr(b bool) *bool { return &b }

func runFavorites(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if favoritesProfiles {
		profiles, err := client.GetFavoriteProfiles(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(profiles)
		}
		printCandidates(profiles)
		return nil
	}

	list, err := client.GetFavorites(ctx, currentUser())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(list)
	}
	if len(list.Favorites) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}
	for _, id := range list.IDs() {
		fmt.Println(id)
	}
	return nil
}

// runFavorite sets the favorite mark to *want, or flips it when want is nil.
func runFavorite(cmd *cobra.Command, candidateID string, want *bool) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	favs := feed.NewFavorites(client, currentUser(), feed.FavoritesOptions{
		Timeout:  timeout,
		OnNotice: printNotice,
	})
	if err := favs.Load(ctx); err != nil {
		return err
	}

	var outcome feed.Outcome
	if want == nil {
		outcome, err = favs.Toggle(ctx, candidateID)
	} else {
		outcome, err = favs.Set(ctx, candidateID, *want)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", outcome, err)
	}

	if jsonOutput {
		return printJSON(map[string]interface{}{
			"uid":          candidateID,
			"is_favorited": favs.IsFavorited(candidateID),
			"outcome":      outcome.String(),
		})
	}
	fmt.Printf("%s favorited=%t (%d favorites)\n", candidateID, favs.IsFavorited(candidateID), len(favs.IDs()))
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
