// Package main is the entry point for the web3-invoicing-cli application.
// It registers the wallet, auth and invoice sub-commands used while developing
// against the invoicing API.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/web3-invoicing/cmd/web3-invoicing-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "web3-invoicing-cli",
		Short: "Developer tool for the web3 invoicing API",
		Long: `web3-invoicing-cli creates throwaway secp256k1 wallets, signs sign-in challenges
and computes Poseidon invoice commitments offline.

The auth login command talks to a running API. Its base URL is read from the
--api-url flag or the WEB3_INVOICING_API_URL environment variable.`,
		SilenceUsage: true,
	}

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitWalletCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize wallet commands: %w", err)
	}

	if err := commands.InitAuthCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize auth commands: %w", err)
	}

	if err := commands.InitInvoiceCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize invoice commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
