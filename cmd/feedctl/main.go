// Command feedctl browses the candidate feed and manages favorites from the terminal.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go-candidate-feed/internal/feed"
	"go-candidate-feed/pkg/feedclient"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	apiToken   string
	userID     string
	timeout    time.Duration
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:           "feedctl",
	Short:         "Candidate feed client",
	Long:          "feedctl pages through the candidate feed, searches it by role or category, and manages the signed-in user's favorites.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", envOr("FEEDCTL_API_URL", "http://localhost:8080/v1"), "API root (FEEDCTL_API_URL)")
	flags.StringVar(&apiToken, "token", os.Getenv("FEEDCTL_TOKEN"), "Bearer token (FEEDCTL_TOKEN)")
	flags.StringVar(&userID, "user", os.Getenv("FEEDCTL_USER_ID"), "User id; read from the token subject when empty (FEEDCTL_USER_ID)")
	flags.DurationVar(&timeout, "timeout", envDuration("FEEDCTL_TIMEOUT", feed.DefaultFetchTimeout), "Per-request timeout (FEEDCTL_TIMEOUT)")
	flags.BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newClient() (*feedclient.Client, error) {
	return feedclient.New(feedclient.Config{BaseURL: apiURL, Token: apiToken})
}

// currentUser is the --user flag, or else the unverified subject of the token. The server
// verifies the token; the id here only tells the session whether someone is signed in.
func currentUser() string {
	if userID != "" {
		return userID
	}
	if apiToken == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(apiToken, claims); err != nil {
		return ""
	}
	sub, _ := claims.GetSubject()
	return sub
}

func printNotice(n feed.Notice) {
	fmt.Fprintln(os.Stderr, n.Message)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}
