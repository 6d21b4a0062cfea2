package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

var (
	signupAvailability []string
	signupGender       string
	signupOrganisation string
	signupCompetitive  bool

	activityName      string
	activityKind      string
	activityStart     string
	activityLocation  string
	activityPositions []string

	rescheduleStart    string
	rescheduleLocation string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(linkSlackCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(participantsCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(kickCmd)
	rootCmd.AddCommand(rescheduleCmd)

	createCmd.Flags().StringVar(&activityName, "name", "", "Name of the activity")
	createCmd.Flags().StringVar(&activityKind, "kind", "TRAINING", "TRAINING or COMPETITION")
	createCmd.Flags().StringVar(&activityStart, "start", "", "Start time in RFC3339")
	createCmd.Flags().StringVar(&activityLocation, "location", "", "Where the activity takes place")
	createCmd.Flags().StringSliceVar(&activityPositions, "position", nil, "Open position, repeatable (COX, PORT, STARBOARD, SCULLING, COACH)")

	signupCmd.Flags().StringSliceVar(&signupAvailability, "available", nil, "Availability as DAY/HH:MM/HH:MM, repeatable")
	signupCmd.Flags().StringVar(&signupGender, "gender", "", "MALE or FEMALE")
	signupCmd.Flags().StringVar(&signupOrganisation, "organisation", "", "Organisation of the member")
	signupCmd.Flags().BoolVar(&signupCompetitive, "competitive", false, "Whether the member competes")

	rescheduleCmd.Flags().StringVar(&rescheduleStart, "start", "", "New start time in RFC3339")
	rescheduleCmd.Flags().StringVar(&rescheduleLocation, "location", "", "New location")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the members in the club directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/members", nil)
	},
}

var linkSlackCmd = &cobra.Command{
	Use:   "link-slack",
	Short: "Link club members to their Slack users by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/members/link-slack", nil)
	},
}

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List all activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/activities", nil)
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity [activity-id]",
	Short: "Show a single activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/activities/"+args[0], nil)
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an activity owned by --as",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"name":      activityName,
			"kind":      strings.ToUpper(activityKind),
			"start":     activityStart,
			"location":  activityLocation,
			"positions": activityPositions,
		}
		return performRequest(http.MethodPost, "/activities", body)
	},
}

var participantsCmd = &cobra.Command{
	Use:   "participants [activity-id]",
	Short: "List the accepted participants of an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/activities/"+args[0]+"/participants", nil)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup [activity-id]",
	Short: "Sign up --as for an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		intervals := make([]map[string]string, 0, len(signupAvailability))
		for _, raw := range signupAvailability {
			parts := strings.Split(raw, "/")
			if len(parts) != 3 {
				return fmt.Errorf("invalid availability %q, expected DAY/HH:MM/HH:MM", raw)
			}
			intervals = append(intervals, map[string]string{"day": parts[0], "start": parts[1], "end": parts[2]})
		}
		body := map[string]any{
			"availability": intervals,
			"gender":       strings.ToUpper(signupGender),
			"organisation": signupOrganisation,
			"competitive":  signupCompetitive,
		}
		return performRequest(http.MethodPost, "/activities/"+args[0]+"/signups", body)
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept [activity-id] [user-id] [position]",
	Short: "Accept an applicant into a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{"position": strings.ToUpper(args[2])}
		return performRequest(http.MethodPost, "/activities/"+args[0]+"/applicants/"+args[1]+"/accept", body)
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject [activity-id] [user-id]",
	Short: "Reject an applicant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/activities/"+args[0]+"/applicants/"+args[1]+"/reject", nil)
	},
}

var kickCmd = &cobra.Command{
	Use:   "kick [activity-id] [user-id]",
	Short: "Remove a participant or applicant from an activity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/activities/"+args[0]+"/participants/"+args[1], nil)
	},
}

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule [activity-id]",
	Short: "Move an activity to a new start time or location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{}
		if rescheduleStart != "" {
			body["start"] = rescheduleStart
		}
		if rescheduleLocation != "" {
			body["location"] = rescheduleLocation
		}
		if len(body) == 0 {
			return fmt.Errorf("--start or --location is required")
		}
		return performRequest(http.MethodPatch, "/activities/"+args[0], body)
	},
}

func performRequest(method, endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != "" {
		req.Header.Set("X-User-ID", as)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
