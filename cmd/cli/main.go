package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Ledger CLI tool",
		Long:  `A command line interface for interacting with the ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(depositCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(ledgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var userID, accountType, currency string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return post("/api/v1/accounts", map[string]string{
				"user_id":  userID,
				"type":     accountType,
				"currency": currency,
			})
		},
	}
	create.Flags().StringVar(&userID, "user", "", "Owner user ID")
	create.Flags().StringVar(&accountType, "type", "checking", "Account type (checking or savings)")
	create.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")

	show := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show an account with its derived balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetch("/api/v1/accounts/" + args[0])
		},
	}

	balance := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account's derived balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetch("/api/v1/accounts/" + args[0] + "/balance")
		},
	}

	var status string
	setStatus := &cobra.Command{
		Use:   "set-status <account-id>",
		Short: "Change an account's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return patch("/api/v1/accounts/"+args[0]+"/status", map[string]string{"status": status})
		},
	}
	setStatus.Flags().StringVar(&status, "status", "", "New status (active, frozen or closed)")

	history := &cobra.Command{
		Use:   "ledger <account-id>",
		Short: "Show an account's entry history, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetch("/api/v1/accounts/" + args[0] + "/ledger")
		},
	}

	cmd.AddCommand(create, show, balance, setStatus, history)
	return cmd
}

func depositCmd() *cobra.Command {
	var account, amount, currency, description string
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit funds into an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return post("/api/v1/deposits", map[string]string{
				"account_id":  account,
				"amount":      amount,
				"currency":    currency,
				"description": description,
			})
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to deposit")
	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	return cmd
}

func withdrawCmd() *cobra.Command {
	var account, amount, currency, description string
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw funds from an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return post("/api/v1/withdrawals", map[string]string{
				"account_id":  account,
				"amount":      amount,
				"currency":    currency,
				"description": description,
			})
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to withdraw")
	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	return cmd
}

func transferCmd() *cobra.Command {
	var source, destination, amount, currency, description string
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds between two accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return post("/api/v1/transfers", map[string]string{
				"source_account_id":      source,
				"destination_account_id": destination,
				"amount":                 amount,
				"currency":               currency,
				"description":            description,
			})
		},
	}
	cmd.Flags().StringVar(&source, "from", "", "Source account ID")
	cmd.Flags().StringVar(&destination, "to", "", "Destination account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetch("/api/v1/ledger/consistency")
		},
	})
	return cmd
}

func fetch(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return err
	}
	return render(resp)
}

func post(path string, body map[string]string) error {
	return send(http.MethodPost, path, body)
}

func patch(path string, body map[string]string) error {
	return send(http.MethodPatch, path, body)
}

func send(method, path string, body map[string]string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	return render(resp)
}

// render pretty-prints the response body and fails the command on any
// non-2xx status so scripts can branch on the exit code.
func render(resp *http.Response) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}
