/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/asn1"
	"math/big"

	"github.com/pkg/errors"
)

// Sign function generates a digital signature of the supplied digest.
type Sign = func(digest []byte) ([]byte, error)

// NewPrivateKeySign returns a Sign function that uses the supplied private
// key. ECDSA and Ed25519 keys are supported. Note that an Ed25519 Sign signs
// the full message, so should be combined with the hash.NONE digest.
func NewPrivateKeySign(privateKey crypto.PrivateKey) (Sign, error) {
	switch key := privateKey.(type) {
	case *ecdsa.PrivateKey:
		return ecdsaPrivateKeySign(key), nil
	case ed25519.PrivateKey:
		return ed25519PrivateKeySign(key), nil
	default:
		return nil, errors.Errorf("unsupported key type: %T", privateKey)
	}
}

type ecdsaSignature struct {
	R, S *big.Int
}

func ecdsaPrivateKeySign(privateKey *ecdsa.PrivateKey) Sign {
	n := privateKey.Curve.Params().N
	halfOrder := new(big.Int).Rsh(n, 1)

	return func(digest []byte) ([]byte, error) {
		r, s, err := ecdsa.Sign(rand.Reader, privateKey, digest)
		if err != nil {
			return nil, errors.Wrap(err, "error signing digest")
		}

		// Fabric only accepts low-S signatures to prevent malleability
		if s.Cmp(halfOrder) > 0 {
			s.Sub(n, s)
		}

		signature, err := asn1.Marshal(ecdsaSignature{R: r, S: s})
		return signature, errors.Wrap(err, "error marshaling signature")
	}
}

func ed25519PrivateKeySign(privateKey ed25519.PrivateKey) Sign {
	return func(message []byte) ([]byte, error) {
		return ed25519.Sign(privateKey, message), nil
	}
}
