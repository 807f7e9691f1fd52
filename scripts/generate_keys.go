//go:build ignore

// generate_keys prints a session signing secret and an admin API key with its bcrypt hash.
// Run with: go run scripts/generate_keys.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func randomKey(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
	os.Exit(1)
}

func main() {
	secret, err := randomKey(32)
	if err != nil {
		fail("session secret", err)
	}

	adminKey, err := randomKey(24)
	if err != nil {
		fail("admin key", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.DefaultCost)
	if err != nil {
		fail("admin key hash", err)
	}

	fmt.Println("# .env")
	fmt.Printf("SESSION_SECRET_KEY=%s\n", secret)
	fmt.Printf("ADMIN_API_KEY_HASHES=%s\n", hash)
	fmt.Println()
	fmt.Println("# Send this key as X-API-Key to /api/settings. Only the hash is stored.")
	fmt.Printf("ADMIN_API_KEY=%s\n", adminKey)
}
