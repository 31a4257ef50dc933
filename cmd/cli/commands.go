package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	date       string
	matchDayID string
	dryRun     bool
)

func init() {
	generateCmd.Flags().StringVar(&date, "date", "", "The match day date (YYYY-MM-DD), defaults to today")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log notifications instead of sending them")
	scheduleCmd.Flags().StringVar(&date, "date", "", "The match day date (YYYY-MM-DD)")
	finalizeCmd.Flags().StringVar(&date, "date", "", "The match day date (YYYY-MM-DD)")
	finalizeCmd.Flags().StringVar(&matchDayID, "match-day", "", "The match day id")
	finalizeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log notifications instead of sending them")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(countersCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "List the generated matches for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/schedule?" + url.Values{"date": {date}}.Encode())
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the match day schedule for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if date != "" {
			params.Set("date", date)
		}
		if dryRun {
			params.Set("dry_run", "true")
		}
		return performGetRequest("/schedule/generate?" + params.Encode())
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Apply the rating settlement for a match day",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if date != "" {
			params.Set("date", date)
		}
		if matchDayID != "" {
			params.Set("matchDayID", matchDayID)
		}
		if dryRun {
			params.Set("dry_run", "true")
		}
		return performGetRequest("/finalize?" + params.Encode())
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the rating standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Get durable operation counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/counters")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
