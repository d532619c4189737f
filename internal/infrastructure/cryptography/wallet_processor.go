package cryptography

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"
)

const (
	signatureLength     = 65
	recoveryIDOffset    = 27
	personalSignPrefix  = "\x19Ethereum Signed Message:\n"
	addressLength       = 20
	privateKeyHexLength = 64
)

// WalletProcessor handles Ethereum style secp256k1 wallets: key generation,
// EIP-191 personal message signing and signer recovery.
type WalletProcessor interface {
	auth.SignatureVerifier

	GenerateKey() (*secp256k1.PrivateKey, error)
	Sign(message []byte, privateKey *secp256k1.PrivateKey) (string, error)
	SavePrivateKeyToFile(privateKey *secp256k1.PrivateKey, filename string) error
	ReadPrivateKey(privateKeyPath string) (*secp256k1.PrivateKey, error)
}

// walletProcessor struct that implements the WalletProcessor interface
type walletProcessor struct {
	logger logger.Logger
}

// NewWalletProcessor creates and returns a new instance of walletProcessor
func NewWalletProcessor(logger logger.Logger) (WalletProcessor, error) {
	return &walletProcessor{
		logger: logger,
	}, nil
}

// Keccak256 hashes the concatenation of data with legacy Keccak-256.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// PersonalMessageHash is the EIP-191 digest signed by personal_sign.
func PersonalMessageHash(message []byte) []byte {
	prefix := personalSignPrefix + strconv.Itoa(len(message))
	return Keccak256([]byte(prefix), message)
}

// PublicKeyToAddress derives the lower-case 0x address of a public key.
func PublicKeyToAddress(publicKey *secp256k1.PublicKey) string {
	uncompressed := publicKey.SerializeUncompressed()
	hash := Keccak256(uncompressed[1:])
	return "0x" + hex.EncodeToString(hash[len(hash)-addressLength:])
}

// ChecksumAddress renders an address in EIP-55 mixed case.
func ChecksumAddress(address string) (string, error) {
	raw := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X"))
	if len(raw) != addressLength*2 {
		return "", fmt.Errorf("invalid address length: %d", len(raw))
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return "", fmt.Errorf("invalid address: %w", err)
	}

	hash := hex.EncodeToString(Keccak256([]byte(raw)))
	out := []byte(raw)
	for i, c := range out {
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out), nil
}

// GenerateKey creates a random secp256k1 private key.
func (w *walletProcessor) GenerateKey() (*secp256k1.PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate wallet key: %w", err)
	}
	w.logger.Info("Generated wallet key")
	return key, nil
}

// Sign produces a 0x prefixed 65 byte r || s || v personal_sign signature with v in {27, 28}.
func (w *walletProcessor) Sign(message []byte, privateKey *secp256k1.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", fmt.Errorf("private key cannot be nil")
	}

	compact := ecdsa.SignCompact(privateKey, PersonalMessageHash(message), false)
	signature := make([]byte, 0, signatureLength)
	signature = append(signature, compact[1:]...)
	signature = append(signature, compact[0])

	return "0x" + hex.EncodeToString(signature), nil
}

// RecoverAddress returns the lower-case address that produced signature over message.
func (w *walletProcessor) RecoverAddress(message []byte, signature string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		return "", fmt.Errorf("signature is not hex: %w", err)
	}
	if len(raw) != signatureLength {
		return "", fmt.Errorf("signature must be %d bytes, got %d", signatureLength, len(raw))
	}

	v := raw[signatureLength-1]
	if v >= recoveryIDOffset {
		v -= recoveryIDOffset
	}
	if v > 1 {
		return "", fmt.Errorf("invalid recovery id %d", raw[signatureLength-1])
	}

	// decred expects the recovery byte first
	compact := make([]byte, 0, signatureLength)
	compact = append(compact, v+recoveryIDOffset)
	compact = append(compact, raw[:signatureLength-1]...)

	publicKey, _, err := ecdsa.RecoverCompact(compact, PersonalMessageHash(message))
	if err != nil {
		return "", fmt.Errorf("failed to recover signer: %w", err)
	}
	return PublicKeyToAddress(publicKey), nil
}

// SavePrivateKeyToFile writes the private key as hex to a file readable by the owner only.
func (w *walletProcessor) SavePrivateKeyToFile(privateKey *secp256k1.PrivateKey, filename string) error {
	data := []byte(hex.EncodeToString(privateKey.Serialize()))
	if err := os.WriteFile(filepath.Clean(filename), data, 0600); err != nil {
		return fmt.Errorf("failed to write private key file: %w", err)
	}
	w.logger.Info("Saved wallet private key", "path", filename)
	return nil
}

// ReadPrivateKey reads a hex encoded private key, optionally 0x prefixed.
func (w *walletProcessor) ReadPrivateKey(privateKeyPath string) (*secp256k1.PrivateKey, error) {
	data, err := os.ReadFile(filepath.Clean(privateKeyPath))
	if err != nil {
		return nil, fmt.Errorf("unable to read private key file: %w", err)
	}
	return ParsePrivateKey(string(data))
}

// ParsePrivateKey decodes a 32 byte hex private key.
func ParsePrivateKey(encoded string) (*secp256k1.PrivateKey, error) {
	encoded = strings.TrimPrefix(strings.TrimSpace(encoded), "0x")
	if len(encoded) != privateKeyHexLength {
		return nil, fmt.Errorf("private key must be %d hex characters", privateKeyHexLength)
	}
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("private key is not hex: %w", err)
	}
	return secp256k1.PrivKeyFromBytes(raw), nil
}
