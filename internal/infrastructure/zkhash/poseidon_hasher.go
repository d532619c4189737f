// Package zkhash computes SNARK friendly invoice commitments with the Poseidon hash over the BN254 scalar field.
package zkhash

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"

	"github.com/iden3/go-iden3-crypto/constants"
	"github.com/iden3/go-iden3-crypto/poseidon"
)

// maxPackedStringBytes keeps packed strings below the field modulus
const maxPackedStringBytes = 31

type poseidonHasher struct{}

// NewPoseidonHasher returns an invoices.Hasher backed by iden3 Poseidon.
func NewPoseidonHasher() invoices.Hasher {
	return &poseidonHasher{}
}

// Commit hashes (issuer, recipient, total, currency, due date, number) into a 0x prefixed 32 byte hex string.
// Addresses are read as 160 bit integers, strings are packed big endian, the due date is unix seconds.
func (p *poseidonHasher) Commit(fields invoices.CommitmentFields) (string, error) {
	issuer, err := addressElement(fields.IssuerAddress)
	if err != nil {
		return "", fmt.Errorf("issuer address: %w", err)
	}
	recipient, err := addressElement(fields.RecipientAddress)
	if err != nil {
		return "", fmt.Errorf("recipient address: %w", err)
	}
	if fields.Total < 0 {
		return "", fmt.Errorf("total must not be negative")
	}
	currency, err := stringElement(fields.Currency)
	if err != nil {
		return "", fmt.Errorf("currency: %w", err)
	}
	number, err := stringElement(fields.Number)
	if err != nil {
		return "", fmt.Errorf("number: %w", err)
	}

	inputs := []*big.Int{
		issuer,
		recipient,
		big.NewInt(fields.Total),
		currency,
		big.NewInt(fields.DueDate.UTC().Unix()),
		number,
	}
	hash, err := poseidon.Hash(inputs)
	if err != nil {
		return "", fmt.Errorf("poseidon hash failed: %w", err)
	}
	return fmt.Sprintf("0x%064x", hash), nil
}

// addressElement maps an empty address to zero.
func addressElement(address string) (*big.Int, error) {
	raw := strings.TrimPrefix(strings.ToLower(address), "0x")
	if raw == "" {
		return big.NewInt(0), nil
	}
	if len(raw) != 40 {
		return nil, fmt.Errorf("expected 20 byte hex, got %q", address)
	}
	value, ok := new(big.Int).SetString(raw, 16)
	if !ok {
		return nil, fmt.Errorf("not hex: %q", address)
	}
	return value, nil
}

func stringElement(s string) (*big.Int, error) {
	if len(s) > maxPackedStringBytes {
		return nil, fmt.Errorf("longer than %d bytes", maxPackedStringBytes)
	}
	value := new(big.Int).SetBytes([]byte(s))
	if value.Cmp(constants.Q) >= 0 {
		return nil, fmt.Errorf("outside the field")
	}
	return value, nil
}
