package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
		Use:   "gofactura-cli",
		Short: "GoFactura CLI tool",
		Long:  `A command line interface for interacting with the GoFactura API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoFactura API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Invoice commands
	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Invoice operations",
	}
	invoiceCmd.AddCommand(invoiceGetCmd(), invoiceByNumberCmd(), invoiceListCmd())
	rootCmd.AddCommand(invoiceCmd)

	// Import command
	rootCmd.AddCommand(importCmd())

	// Report commands
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Reporting operations",
	}
	reportCmd.AddCommand(
		reportGetCmd("overdue", "List invoices overdue by more than 30 days"),
		reportGetCmd("payment-summary", "Totals and percentages per payment status"),
		reportGetCmd("inconsistent", "List invoices whose totals do not match their items"),
	)
	rootCmd.AddCommand(reportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Run a batch import from a JSON source file",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			target := baseURL + "/api/v1/invoices/import"
			if len(args) == 1 {
				target += "?file=" + url.QueryEscape(args[0])
			}

			client := &http.Client{Timeout: timeout}
			resp, err := client.Post(target, "application/json", nil)
			if err != nil {
				fmt.Printf("Error making request: %v\n", err)
				os.Exit(1)
			}
			defer resp.Body.Close()

			printResponse(resp)
		},
	}
}

func invoiceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get an invoice by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/invoices/" + url.PathEscape(args[0]))
		},
	}
}

func invoiceByNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-number <number>",
		Short: "Get an invoice by invoice number",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/invoices/by-number/" + url.PathEscape(args[0]))
		},
	}
}

func invoiceListCmd() *cobra.Command {
	var (
		search   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			if search != "" {
				q.Set("search", search)
			}
			q.Set("page", fmt.Sprintf("%d", page))
			q.Set("page_size", fmt.Sprintf("%d", pageSize))

			getJSON("/api/v1/invoices/?" + q.Encode())
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by customer name or RUN")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Page size")

	return cmd
}

func reportGetCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/reports/" + name)
		},
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(body), 500))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
