// Package idgen centralizes identifier and share-token generation so that
// services never reach for ambient randomness directly and tests can inject
// deterministic generators.
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

type Generator interface {
	NewID() uuid.UUID
	// NewShareToken returns an unguessable opaque token of 2*numBytes hex
	// characters.
	NewShareToken(numBytes int) (string, error)
}

type generator struct{}

func New() Generator {
	return generator{}
}

func (generator) NewID() uuid.UUID {
	return uuid.New()
}

func (generator) NewShareToken(numBytes int) (string, error) {
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
