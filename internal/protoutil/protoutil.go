/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package protoutil contains helpers for assembling and disassembling the
// protobuf structures that make up Fabric transactions.
package protoutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
)

// NonceLength of the random value included in every signature header.
const NonceLength = 24

// Marshal serializes a protobuf message.
func Marshal(pb proto.Message) ([]byte, error) {
	data, err := proto.Marshal(pb)
	return data, errors.Wrap(err, "error marshaling")
}

// MarshalOrPanic serializes a protobuf message or panics when this operation
// fails.
func MarshalOrPanic(pb proto.Message) []byte {
	data, err := proto.Marshal(pb)
	if err != nil {
		panic(err)
	}
	return data
}

// CreateNonce generates a random nonce to be used in a signature header.
func CreateNonce() ([]byte, error) {
	nonce := make([]byte, NonceLength)
	_, err := rand.Read(nonce)
	return nonce, errors.Wrap(err, "error generating random nonce")
}

// ComputeTxID derives a transaction ID from the signature header nonce and
// creator using the supplied hash implementation.
func ComputeTxID(hash func([]byte) []byte, nonce, creator []byte) string {
	message := make([]byte, 0, len(nonce)+len(creator))
	message = append(message, nonce...)
	message = append(message, creator...)
	return hex.EncodeToString(hash(message))
}
