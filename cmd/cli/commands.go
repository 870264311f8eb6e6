package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var fetchURL string

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "Roster URL to load instead of the server default (needs ALLOW_SOURCE_OVERRIDE on the server)")
	for _, cmd := range []*cobra.Command{addCmd, removeCmd, toggleCmd} {
		cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the outcome without changing favourites")
	}
	playersCmd.Flags().Bool("all", false, "List the whole roster instead of the active list")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(favouritesCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/health", nil)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Reload the roster from its source",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if fetchURL != "" {
			query.Set("url", fetchURL)
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/fetch", query)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players currently shown",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if all, _ := cmd.Flags().GetBool("all"); all {
			query.Set("all", "true")
		}
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/players", query)
	},
}

var favouritesCmd = &cobra.Command{
	Use:     "favourites",
	Aliases: []string{"favorites"},
	Short:   "List favourite players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/favourites", nil)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search players by name (at least 3 characters, empty clears)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if len(args) == 1 {
			query.Set("q", args[0])
		}
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/search", query)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <player-id>",
	Short: "Mark a player as favourite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return favouriteRequest(cmd, http.MethodPost, args[0], "")
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <player-id>",
	Short: "Unmark a favourite player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return favouriteRequest(cmd, http.MethodDelete, args[0], "")
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <player-id>",
	Short: "Flip the favourite flag of a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return favouriteRequest(cmd, http.MethodPost, args[0], "/toggle")
	},
}

var modeCmd = &cobra.Command{
	Use:       "mode <players|favourites>",
	Short:     "Switch between the roster and the favourites list",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"players", "favourites"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/mode", url.Values{"value": {args[0]}})
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter <true|false>",
	Short: "Show or hide the search results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := strconv.ParseBool(args[0]); err != nil {
			return fmt.Errorf("invalid filter value %q", args[0])
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/filter", url.Values{"value": {args[0]}})
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the full view state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/state", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/metrics", nil)
	},
}

func favouriteRequest(cmd *cobra.Command, method, rawID, suffix string) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid player id %q", rawID)
	}
	query := url.Values{}
	if dryRun {
		query.Set("dry_run", "true")
	}
	return performRequest(cmd.OutOrStdout(), method, fmt.Sprintf("/favourites/%d%s", id, suffix), query)
}

func performRequest(out io.Writer, method, endpoint string, query url.Values) error {
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Fprintf(out, "Making %s request to %s\n", method, target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(body))

	return nil
}
