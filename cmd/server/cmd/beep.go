package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Togather-Foundation/beeps/internal/api/problem"
	"github.com/Togather-Foundation/beeps/internal/validation"
	"github.com/spf13/cobra"
)

// ErrRejected is returned when the server answers a beep with 404, which is
// what it does for a wrong or missing token.
var ErrRejected = errors.New("beep rejected (check the token)")

var (
	beepURL     string
	beepToken   string
	beepTimeout int
)

var beepCmd = &cobra.Command{
	Use:   "beep <text>",
	Short: "Send a beep to a running server",
	Long: `Send a beep to a running server.

The token defaults to BEEPS_SECRET so the same environment that starts the
server can also post to it.

Examples:
  server beep "deploy finished"
  server beep --url https://beeps.example.org --token s3cret "hello"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := beepToken
		if token == "" {
			token = os.Getenv("BEEPS_SECRET")
		}
		if token == "" {
			return errors.New("no token: pass --token or set BEEPS_SECRET")
		}

		baseURL := beepBaseURL()
		if err := validation.ValidateBaseURL(baseURL, "url", false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(beepTimeout)*time.Second)
		defer cancel()

		if err := sendBeep(ctx, http.DefaultClient, baseURL, token, strings.Join(args, " ")); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "beep accepted")
		return nil
	},
}

func init() {
	beepCmd.Flags().StringVar(&beepURL, "url", "", "server base URL (default: SERVER_BASE_URL or http://localhost:7331)")
	beepCmd.Flags().StringVar(&beepToken, "token", "", "bearer token (default: BEEPS_SECRET)")
	beepCmd.Flags().IntVar(&beepTimeout, "timeout", 10, "timeout in seconds")
}

func beepBaseURL() string {
	if beepURL != "" {
		return beepURL
	}
	if base := os.Getenv("SERVER_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:" + defaultPort
}

func sendBeep(ctx context.Context, client *http.Client, baseURL, token, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("encode beep: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/beeps", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send beep: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return ErrRejected
	}

	var p problem.ProblemDetails
	if err := json.NewDecoder(resp.Body).Decode(&p); err == nil && p.Title != "" {
		if p.Detail != "" {
			return fmt.Errorf("server returned %d: %s: %s", resp.StatusCode, p.Title, p.Detail)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, p.Title)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
