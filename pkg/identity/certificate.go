/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"

	"github.com/pkg/errors"
)

// CertificateFromPEM decodes a certificate from PEM encoded bytes.
func CertificateFromPEM(certificatePEM []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(certificatePEM)
	if block == nil {
		return nil, errors.New("failed to parse certificate PEM")
	}

	certificate, err := x509.ParseCertificate(block.Bytes)
	return certificate, errors.Wrap(err, "error parsing certificate")
}

// CertificateToPEM encodes a certificate as PEM encoded bytes.
func CertificateToPEM(certificate *x509.Certificate) ([]byte, error) {
	if certificate == nil {
		return nil, errors.New("a certificate is required")
	}

	block := &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certificate.Raw,
	}
	return pem.EncodeToMemory(block), nil
}

// PrivateKeyFromPEM decodes a PKCS #8 or SEC 1 private key from PEM encoded
// bytes.
func PrivateKeyFromPEM(privateKeyPEM []byte) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(privateKeyPEM)
	if block == nil {
		return nil, errors.New("failed to parse private key PEM")
	}

	if privateKey, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return privateKey, nil
	}

	privateKey, err := x509.ParseECPrivateKey(block.Bytes)
	return privateKey, errors.Wrap(err, "error parsing private key")
}

// PrivateKeyToPEM encodes a private key as PKCS #8 PEM encoded bytes.
func PrivateKeyToPEM(privateKey crypto.PrivateKey) ([]byte, error) {
	keyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "error marshaling private key")
	}

	block := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}
	return pem.EncodeToMemory(block), nil
}
