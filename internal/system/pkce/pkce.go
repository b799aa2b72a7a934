/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package pkce provides PKCE (Proof Key for Code Exchange) utilities for the
// interaction handshake.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// CodeChallengeMethodS256 is the only challenge method used by the client.
const CodeChallengeMethodS256 = "S256"

const verifierLength = 64

// ErrInvalidCodeVerifier is returned when a code verifier fails RFC 7636 validation.
var ErrInvalidCodeVerifier = errors.New("invalid code verifier")

// unreservedAlphabet is the RFC 7636 unreserved character set.
const unreservedAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// GenerateCodeVerifier creates a new random code verifier from the RFC 7636
// unreserved alphabet.
func GenerateCodeVerifier() (string, error) {
	random := make([]byte, verifierLength)
	if _, err := rand.Read(random); err != nil {
		return "", fmt.Errorf("failed to generate code verifier: %w", err)
	}

	verifier := make([]byte, verifierLength)
	for i, b := range random {
		verifier[i] = unreservedAlphabet[int(b)%len(unreservedAlphabet)]
	}
	return string(verifier), nil
}

// ComputeS256Challenge derives the S256 code challenge for a verifier.
func ComputeS256Challenge(codeVerifier string) string {
	hash := sha256.Sum256([]byte(codeVerifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// ValidateCodeVerifier validates the format of a code verifier according to RFC 7636.
func ValidateCodeVerifier(codeVerifier string) error {
	if codeVerifier == "" {
		return ErrInvalidCodeVerifier
	}
	if len(codeVerifier) < 43 || len(codeVerifier) > 128 {
		return ErrInvalidCodeVerifier
	}
	for _, c := range codeVerifier {
		if !isValidASCIIUnreserved(c) {
			return ErrInvalidCodeVerifier
		}
	}
	return nil
}

// isValidASCIIUnreserved validates that a character is in the unreserved set.
func isValidASCIIUnreserved(c rune) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}
