package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// WalletCommandHandler encapsulates the wallet operations of the CLI.
type WalletCommandHandler struct {
	walletProcessor cryptography.WalletProcessor
	logger          logger.Logger
}

// NewWalletCommandHandler initializes a new WalletCommandHandler
// with configured logger and a wallet processor.
func NewWalletCommandHandler() (*WalletCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	walletProcessor, err := cryptography.NewWalletProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet processor: %w", err)
	}

	return &WalletCommandHandler{
		walletProcessor: walletProcessor,
		logger:          loggerInstance,
	}, nil
}

// NewWalletCmd generates a private key, stores it as hex and prints the checksummed address
func (commandHandler *WalletCommandHandler) NewWalletCmd(cmd *cobra.Command, _ []string) {
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag", "error", err)
		return
	}

	privateKey, err := commandHandler.walletProcessor.GenerateKey()
	if err != nil {
		commandHandler.logger.Error("failed to generate wallet key", "error", err)
		return
	}

	if err := commandHandler.walletProcessor.SavePrivateKeyToFile(privateKey, keyFile); err != nil {
		commandHandler.logger.Error("failed to save wallet key", "error", err)
		return
	}

	address, err := cryptography.ChecksumAddress(cryptography.PublicKeyToAddress(privateKey.PubKey()))
	if err != nil {
		commandHandler.logger.Error("failed to derive address", "error", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), address)
}

// AddressCmd prints the checksummed address of a stored private key
func (commandHandler *WalletCommandHandler) AddressCmd(cmd *cobra.Command, _ []string) {
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag", "error", err)
		return
	}

	privateKey, err := commandHandler.walletProcessor.ReadPrivateKey(keyFile)
	if err != nil {
		commandHandler.logger.Error("failed to read wallet key", "error", err)
		return
	}

	address, err := cryptography.ChecksumAddress(cryptography.PublicKeyToAddress(privateKey.PubKey()))
	if err != nil {
		commandHandler.logger.Error("failed to derive address", "error", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), address)
}

// SignCmd personal_signs a message given inline or read from a file
func (commandHandler *WalletCommandHandler) SignCmd(cmd *cobra.Command, _ []string) {
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag", "error", err)
		return
	}
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		commandHandler.logger.Error("invalid message flag", "error", err)
		return
	}
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag", "error", err)
		return
	}

	payload := []byte(message)
	if inputFile != "" {
		payload, err = os.ReadFile(filepath.Clean(inputFile))
		if err != nil {
			commandHandler.logger.Error("failed to read input file", "error", err)
			return
		}
	}
	if len(payload) == 0 {
		commandHandler.logger.Error("either --message or --input-file is required")
		return
	}

	privateKey, err := commandHandler.walletProcessor.ReadPrivateKey(keyFile)
	if err != nil {
		commandHandler.logger.Error("failed to read wallet key", "error", err)
		return
	}

	signature, err := commandHandler.walletProcessor.Sign(payload, privateKey)
	if err != nil {
		commandHandler.logger.Error("failed to sign message", "error", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), signature)
}

// InitWalletCommands registers the wallet command group
func InitWalletCommands(rootCmd *cobra.Command) error {
	handler, err := NewWalletCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create wallet command handler %w", err)
	}

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage local secp256k1 wallets",
	}

	var newWalletCmd = &cobra.Command{
		Use:   "new",
		Short: "Generate a wallet key and print its address",
		Run:   handler.NewWalletCmd,
	}
	newWalletCmd.Flags().StringP("key-file", "", "wallet.key", "Path the hex private key is written to")
	walletCmd.AddCommand(newWalletCmd)

	var addressCmd = &cobra.Command{
		Use:   "address",
		Short: "Print the address of a wallet key",
		Run:   handler.AddressCmd,
	}
	addressCmd.Flags().StringP("key-file", "", "wallet.key", "Path to the hex private key")
	walletCmd.AddCommand(addressCmd)

	var signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with personal_sign",
		Run:   handler.SignCmd,
	}
	signCmd.Flags().StringP("key-file", "", "wallet.key", "Path to the hex private key")
	signCmd.Flags().StringP("message", "", "", "Message to sign")
	signCmd.Flags().StringP("input-file", "", "", "File whose content is signed instead of --message")
	walletCmd.AddCommand(signCmd)

	rootCmd.AddCommand(walletCmd)
	return nil
}
