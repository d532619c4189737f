package commands

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/MGTheTrain/web3-invoicing/internal/api/rest/v1"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/spf13/cobra"
)

// AuthCommandHandler signs in against a running API with a local wallet key.
type AuthCommandHandler struct {
	walletProcessor cryptography.WalletProcessor
	logger          logger.Logger
}

// NewAuthCommandHandler initializes a new AuthCommandHandler
func NewAuthCommandHandler() (*AuthCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	walletProcessor, err := cryptography.NewWalletProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet processor: %w", err)
	}

	return &AuthCommandHandler{
		walletProcessor: walletProcessor,
		logger:          loggerInstance,
	}, nil
}

// LoginCmd requests a nonce, signs the challenge and prints the bearer token
func (commandHandler *AuthCommandHandler) LoginCmd(cmd *cobra.Command, _ []string) {
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag", "error", err)
		return
	}
	apiURL, err := cmd.Flags().GetString("api-url")
	if err != nil {
		commandHandler.logger.Error("invalid api-url flag", "error", err)
		return
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		commandHandler.logger.Error("invalid timeout flag", "error", err)
		return
	}

	privateKey, err := commandHandler.walletProcessor.ReadPrivateKey(keyFile)
	if err != nil {
		commandHandler.logger.Error("failed to read wallet key", "error", err)
		return
	}

	client := newAPIClient(resolveAPIURL(apiURL), timeout)
	session, err := commandHandler.login(cmd.Context(), client, privateKey)
	if err != nil {
		commandHandler.logger.Error("sign-in failed", "error", err)
		return
	}

	commandHandler.logger.Info("Signed in", "address", session.User.WalletAddress, "expiresAt", session.ExpiresAt)
	fmt.Fprintln(cmd.OutOrStdout(), session.Token)
}

func (commandHandler *AuthCommandHandler) login(ctx context.Context, client *apiClient, privateKey *secp256k1.PrivateKey) (*v1.SessionResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	address, err := cryptography.ChecksumAddress(cryptography.PublicKeyToAddress(privateKey.PubKey()))
	if err != nil {
		return nil, err
	}

	challenge, err := client.Nonce(ctx, address)
	if err != nil {
		return nil, err
	}

	signature, err := commandHandler.walletProcessor.Sign([]byte(challenge.Message), privateKey)
	if err != nil {
		return nil, err
	}

	return client.SignIn(ctx, v1.SignInRequest{
		Address:   address,
		Message:   challenge.Message,
		Signature: signature,
	})
}

// InitAuthCommands registers the auth command group
func InitAuthCommands(rootCmd *cobra.Command) error {
	handler, err := NewAuthCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create auth command handler %w", err)
	}

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in against a running API",
	}

	var loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign the sign-in challenge with a wallet key and print the bearer token",
		Run:   handler.LoginCmd,
	}
	loginCmd.Flags().StringP("key-file", "", "wallet.key", "Path to the hex private key")
	loginCmd.Flags().StringP("api-url", "", "", "Base URL of the API (defaults to "+apiURLEnv+" or "+defaultAPIURL+")")
	loginCmd.Flags().Duration("timeout", 10*time.Second, "HTTP timeout per request")
	authCmd.AddCommand(loginCmd)

	rootCmd.AddCommand(authCmd)
	return nil
}
