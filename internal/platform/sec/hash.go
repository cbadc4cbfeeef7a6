// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// GenerateConfirmationCode returns a fresh random code in UUIDv4 text form.
// The generator reads from crypto/rand.
func GenerateConfirmationCode() (string, error) {
	code, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return code.String(), nil
}

// HashToken returns the hex BLAKE2b-256 digest of a one-time secret.
//
// Confirmation codes are only ever persisted in this form so a database
// dump does not leak usable codes.
func HashToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// TokenMatches compares a plain secret against a stored digest in constant time.
func TokenMatches(token, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(digest)) == 1
}
