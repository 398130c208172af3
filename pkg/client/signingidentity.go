/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/cyanlink/fabric-gateway/pkg/hash"
	"github.com/cyanlink/fabric-gateway/pkg/identity"
	"github.com/hyperledger/fabric-protos-go/msp"
	"github.com/pkg/errors"
)

// signingIdentity binds a client identity to signing and hashing
// implementations. The creator bytes are fixed at construction and reused in
// every request header produced by this identity.
type signingIdentity struct {
	id      identity.Identity
	creator []byte
	sign    identity.Sign
	hash    hash.Hash
}

func newSigningIdentity(id identity.Identity) (*signingIdentity, error) {
	if id == nil {
		return nil, errors.WithMessage(ErrInvalidArgument, "an identity is required")
	}
	if id.MspID() == "" {
		return nil, errors.WithMessage(ErrInvalidArgument, "an MSP ID is required")
	}

	serialized := &msp.SerializedIdentity{
		Mspid:   id.MspID(),
		IdBytes: id.Credentials(),
	}
	creator, err := protoutil.Marshal(serialized)
	if err != nil {
		return nil, err
	}

	return &signingIdentity{
		id:      id,
		creator: creator,
		hash:    hash.SHA256,
	}, nil
}

// Creator returns the serialized identity included in request headers.
func (s *signingIdentity) Creator() []byte {
	return s.creator
}

func (s *signingIdentity) Sign(digest []byte) ([]byte, error) {
	if s.sign == nil {
		return nil, errors.WithMessage(ErrUnsupported, "no sign implementation supplied")
	}
	return s.sign(digest)
}

func (s *signingIdentity) Hash(message []byte) []byte {
	return s.hash(message)
}
