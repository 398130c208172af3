/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package hash provides digest implementations used when signing messages sent
// to a Fabric network.
package hash

import (
	"crypto/sha256"
	"crypto/sha512"
)

// Hash function generates a digest for the supplied message.
type Hash = func(message []byte) []byte

// NONE returns the input message unchanged. Intended for use with signing
// implementations that hash internally, such as Ed25519.
func NONE(message []byte) []byte {
	return message
}

// SHA256 hash.
func SHA256(message []byte) []byte {
	digest := sha256.Sum256(message)
	return digest[:]
}

// SHA384 hash.
func SHA384(message []byte) []byte {
	digest := sha512.Sum384(message)
	return digest[:]
}

// SHA512 hash.
func SHA512(message []byte) []byte {
	digest := sha512.Sum512(message)
	return digest[:]
}
