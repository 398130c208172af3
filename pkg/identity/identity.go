/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package identity provides client identities and signing implementations used
// to interact with a Fabric network on behalf of an organization member.
package identity

import (
	"crypto/x509"

	"github.com/pkg/errors"
)

// Identity represents a client identity used to interact with a Fabric network.
type Identity interface {
	// MspID of the membership service provider that issued this identity's
	// credentials.
	MspID() string
	// Credentials that establish the identity, typically a PEM encoded X.509
	// certificate.
	Credentials() []byte
}

// X509Identity is an Identity backed by an X.509 certificate.
type X509Identity struct {
	mspID       string
	credentials []byte
}

// MspID of the membership service provider that issued the certificate.
func (id *X509Identity) MspID() string {
	return id.mspID
}

// Credentials as PEM encoded certificate bytes.
func (id *X509Identity) Credentials() []byte {
	return id.credentials
}

// NewX509Identity creates an identity for the given MSP ID and certificate.
func NewX509Identity(mspID string, certificate *x509.Certificate) (*X509Identity, error) {
	if mspID == "" {
		return nil, errors.New("MSP ID must not be empty")
	}

	credentials, err := CertificateToPEM(certificate)
	if err != nil {
		return nil, err
	}

	return &X509Identity{
		mspID:       mspID,
		credentials: credentials,
	}, nil
}
