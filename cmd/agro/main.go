package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agro",
	Short: "Agribusiness management API",
	Long: `agro serves the multi-tenant farm management API: farms, fields,
harvests, silos, producers, transfers and invoices, with derived balances,
silo stock, rainfall summaries and PDF/XLSX reports.

Configuration is read from AGRO_* environment variables (and a .env file).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, cstCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
