package auth

import (
	"bufio"
	"fmt"
	"strings"
	"time"
)

const (
	messageHeaderSuffix = " wants you to sign in with your Ethereum account:"
	messageStatement    = "Sign in to the invoicing dashboard."
	nonceField          = "Nonce: "
	issuedAtField       = "Issued At: "
	expirationField     = "Expiration Time: "
)

// Message is the human readable challenge a wallet signs, modelled on EIP-4361.
type Message struct {
	Domain    string
	Address   string
	Nonce     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// String renders the message exactly as it must be signed.
func (m Message) String() string {
	var b strings.Builder
	b.WriteString(m.Domain + messageHeaderSuffix + "\n")
	b.WriteString(m.Address + "\n\n")
	b.WriteString(messageStatement + "\n\n")
	b.WriteString("URI: https://" + m.Domain + "\n")
	b.WriteString("Version: 1\n")
	b.WriteString(nonceField + m.Nonce + "\n")
	b.WriteString(issuedAtField + m.IssuedAt.UTC().Format(time.RFC3339) + "\n")
	b.WriteString(expirationField + m.ExpiresAt.UTC().Format(time.RFC3339))
	return b.String()
}

// ParseMessage extracts the fields of a rendered challenge message.
func ParseMessage(raw string) (*Message, error) {
	scanner := bufio.NewScanner(strings.NewReader(raw))
	var m Message
	line := 0
	for scanner.Scan() {
		text := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case line == 0:
			if !strings.HasSuffix(text, messageHeaderSuffix) {
				return nil, fmt.Errorf("unexpected message header")
			}
			m.Domain = strings.TrimSuffix(text, messageHeaderSuffix)
		case line == 1:
			m.Address = strings.TrimSpace(text)
		case strings.HasPrefix(text, nonceField):
			m.Nonce = strings.TrimPrefix(text, nonceField)
		case strings.HasPrefix(text, issuedAtField):
			t, err := time.Parse(time.RFC3339, strings.TrimPrefix(text, issuedAtField))
			if err != nil {
				return nil, fmt.Errorf("invalid issued at: %w", err)
			}
			m.IssuedAt = t
		case strings.HasPrefix(text, expirationField):
			t, err := time.Parse(time.RFC3339, strings.TrimPrefix(text, expirationField))
			if err != nil {
				return nil, fmt.Errorf("invalid expiration time: %w", err)
			}
			m.ExpiresAt = t
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	if m.Domain == "" || m.Address == "" || m.Nonce == "" {
		return nil, fmt.Errorf("message is missing domain, address or nonce")
	}
	return &m, nil
}
