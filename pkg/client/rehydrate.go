/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/pkg/errors"
)

// NewProposal recreates a proposal from serialized bytes produced by
// Proposal.Bytes. The transaction ID, digest and endorsing organizations of
// the original proposal are preserved.
func (gw *Gateway) NewProposal(bytes []byte) (*Proposal, error) {
	proposedTransaction := &gateway.ProposedTransaction{}
	if err := proto.Unmarshal(bytes, proposedTransaction); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling ProposedTransaction")
	}
	if proposedTransaction.GetProposal() == nil {
		return nil, errors.WithMessage(ErrInvalidArgument, "a signed proposal is required")
	}

	proposal, err := protoutil.UnmarshalProposal(proposedTransaction.Proposal.ProposalBytes)
	if err != nil {
		return nil, err
	}
	header, err := protoutil.UnmarshalHeader(proposal.Header)
	if err != nil {
		return nil, err
	}
	channelHeader, err := protoutil.UnmarshalChannelHeader(header.ChannelHeader)
	if err != nil {
		return nil, err
	}

	return &Proposal{
		client:              gw.client,
		signingID:           gw.signingID,
		channelID:           channelHeader.ChannelId,
		proposedTransaction: proposedTransaction,
	}, nil
}

// NewSignedProposal recreates a proposal from serialized bytes and a
// signature generated outside the client process.
func (gw *Gateway) NewSignedProposal(bytes []byte, signature []byte) (*Proposal, error) {
	proposal, err := gw.NewProposal(bytes)
	if err != nil {
		return nil, err
	}
	proposal.setSignature(signature)
	return proposal, nil
}

// NewTransaction recreates an endorsed transaction from serialized bytes
// produced by Transaction.Bytes.
func (gw *Gateway) NewTransaction(bytes []byte) (*Transaction, error) {
	preparedTransaction := &gateway.PreparedTransaction{}
	if err := proto.Unmarshal(bytes, preparedTransaction); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling PreparedTransaction")
	}
	return newTransaction(gw.client, gw.signingID, preparedTransaction)
}

// NewSignedTransaction recreates an endorsed transaction from serialized
// bytes and a signature generated outside the client process.
func (gw *Gateway) NewSignedTransaction(bytes []byte, signature []byte) (*Transaction, error) {
	transaction, err := gw.NewTransaction(bytes)
	if err != nil {
		return nil, err
	}
	transaction.setSignature(signature)
	return transaction, nil
}

// NewCommit recreates a commit from serialized bytes produced by Commit.Bytes.
// The transaction ID is read from the embedded commit status request.
func (gw *Gateway) NewCommit(bytes []byte) (*Commit, error) {
	signedRequest := &gateway.SignedCommitStatusRequest{}
	if err := proto.Unmarshal(bytes, signedRequest); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling SignedCommitStatusRequest")
	}

	request, err := protoutil.UnmarshalCommitStatusRequest(signedRequest.Request)
	if err != nil {
		return nil, err
	}

	return &Commit{
		client:        gw.client,
		signingID:     gw.signingID,
		channelID:     request.ChannelId,
		transactionID: request.TransactionId,
		signedRequest: signedRequest,
	}, nil
}

// NewSignedCommit recreates a commit from serialized bytes and a signature
// generated outside the client process.
func (gw *Gateway) NewSignedCommit(bytes []byte, signature []byte) (*Commit, error) {
	commit, err := gw.NewCommit(bytes)
	if err != nil {
		return nil, err
	}
	commit.setSignature(signature)
	return commit, nil
}

// NewChaincodeEventsRequest recreates a chaincode events request from
// serialized bytes produced by ChaincodeEventsRequest.Bytes.
func (gw *Gateway) NewChaincodeEventsRequest(bytes []byte) (*ChaincodeEventsRequest, error) {
	signedRequest := &gateway.SignedChaincodeEventsRequest{}
	if err := proto.Unmarshal(bytes, signedRequest); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling SignedChaincodeEventsRequest")
	}

	request, err := protoutil.UnmarshalChaincodeEventsRequest(signedRequest.Request)
	if err != nil {
		return nil, err
	}

	return &ChaincodeEventsRequest{
		client:        gw.client,
		signingID:     gw.signingID,
		signedRequest: signedRequest,
		request:       request,
	}, nil
}

// NewSignedChaincodeEventsRequest recreates a chaincode events request from
// serialized bytes and a signature generated outside the client process.
func (gw *Gateway) NewSignedChaincodeEventsRequest(bytes []byte, signature []byte) (*ChaincodeEventsRequest, error) {
	request, err := gw.NewChaincodeEventsRequest(bytes)
	if err != nil {
		return nil, err
	}
	request.setSignature(signature)
	return request, nil
}

// NewBlockEventsRequest recreates a block events request from serialized
// bytes produced by BlockEventsRequest.Bytes.
func (gw *Gateway) NewBlockEventsRequest(bytes []byte) (*BlockEventsRequest, error) {
	request, err := gw.newBlockEventsRequest(bytes)
	if err != nil {
		return nil, err
	}
	return &BlockEventsRequest{blockEventsRequest: request}, nil
}

// NewSignedBlockEventsRequest recreates a block events request from
// serialized bytes and a signature generated outside the client process.
func (gw *Gateway) NewSignedBlockEventsRequest(bytes []byte, signature []byte) (*BlockEventsRequest, error) {
	request, err := gw.NewBlockEventsRequest(bytes)
	if err != nil {
		return nil, err
	}
	request.setSignature(signature)
	return request, nil
}

// NewFilteredBlockEventsRequest recreates a filtered block events request
// from serialized bytes produced by FilteredBlockEventsRequest.Bytes.
func (gw *Gateway) NewFilteredBlockEventsRequest(bytes []byte) (*FilteredBlockEventsRequest, error) {
	request, err := gw.newBlockEventsRequest(bytes)
	if err != nil {
		return nil, err
	}
	return &FilteredBlockEventsRequest{blockEventsRequest: request}, nil
}

// NewSignedFilteredBlockEventsRequest recreates a filtered block events
// request from serialized bytes and a signature generated outside the client
// process.
func (gw *Gateway) NewSignedFilteredBlockEventsRequest(bytes []byte, signature []byte) (*FilteredBlockEventsRequest, error) {
	request, err := gw.NewFilteredBlockEventsRequest(bytes)
	if err != nil {
		return nil, err
	}
	request.setSignature(signature)
	return request, nil
}

// NewBlockAndPrivateDataEventsRequest recreates a block and private data
// events request from serialized bytes produced by
// BlockAndPrivateDataEventsRequest.Bytes.
func (gw *Gateway) NewBlockAndPrivateDataEventsRequest(bytes []byte) (*BlockAndPrivateDataEventsRequest, error) {
	request, err := gw.newBlockEventsRequest(bytes)
	if err != nil {
		return nil, err
	}
	return &BlockAndPrivateDataEventsRequest{blockEventsRequest: request}, nil
}

// NewSignedBlockAndPrivateDataEventsRequest recreates a block and private
// data events request from serialized bytes and a signature generated outside
// the client process.
func (gw *Gateway) NewSignedBlockAndPrivateDataEventsRequest(bytes []byte, signature []byte) (*BlockAndPrivateDataEventsRequest, error) {
	request, err := gw.NewBlockAndPrivateDataEventsRequest(bytes)
	if err != nil {
		return nil, err
	}
	request.setSignature(signature)
	return request, nil
}

func (gw *Gateway) newBlockEventsRequest(bytes []byte) (*blockEventsRequest, error) {
	envelope, err := protoutil.UnmarshalEnvelope(bytes)
	if err != nil {
		return nil, err
	}

	return &blockEventsRequest{
		client:    gw.client,
		signingID: gw.signingID,
		request:   envelope,
	}, nil
}
