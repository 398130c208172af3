/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protoutil

import (
	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
)

// UnmarshalEnvelope unmarshals bytes to an Envelope
func UnmarshalEnvelope(encoded []byte) (*common.Envelope, error) {
	envelope := &common.Envelope{}
	err := proto.Unmarshal(encoded, envelope)
	return envelope, errors.Wrap(err, "error unmarshaling Envelope")
}

// UnmarshalPayload unmarshals bytes to a Payload
func UnmarshalPayload(encoded []byte) (*common.Payload, error) {
	payload := &common.Payload{}
	err := proto.Unmarshal(encoded, payload)
	return payload, errors.Wrap(err, "error unmarshaling Payload")
}

// UnmarshalChannelHeader unmarshals bytes to a ChannelHeader
func UnmarshalChannelHeader(encoded []byte) (*common.ChannelHeader, error) {
	channelHeader := &common.ChannelHeader{}
	err := proto.Unmarshal(encoded, channelHeader)
	return channelHeader, errors.Wrap(err, "error unmarshaling ChannelHeader")
}

// UnmarshalSignatureHeader unmarshals bytes to a SignatureHeader
func UnmarshalSignatureHeader(encoded []byte) (*common.SignatureHeader, error) {
	signatureHeader := &common.SignatureHeader{}
	err := proto.Unmarshal(encoded, signatureHeader)
	return signatureHeader, errors.Wrap(err, "error unmarshaling SignatureHeader")
}

// UnmarshalProposal unmarshals bytes to a Proposal
func UnmarshalProposal(encoded []byte) (*peer.Proposal, error) {
	proposal := &peer.Proposal{}
	err := proto.Unmarshal(encoded, proposal)
	return proposal, errors.Wrap(err, "error unmarshaling Proposal")
}

// UnmarshalSignedProposal unmarshals bytes to a SignedProposal
func UnmarshalSignedProposal(encoded []byte) (*peer.SignedProposal, error) {
	signedProposal := &peer.SignedProposal{}
	err := proto.Unmarshal(encoded, signedProposal)
	return signedProposal, errors.Wrap(err, "error unmarshaling SignedProposal")
}

// UnmarshalHeader unmarshals bytes to a Header
func UnmarshalHeader(encoded []byte) (*common.Header, error) {
	header := &common.Header{}
	err := proto.Unmarshal(encoded, header)
	return header, errors.Wrap(err, "error unmarshaling Header")
}

// UnmarshalTransaction unmarshals bytes to a Transaction
func UnmarshalTransaction(encoded []byte) (*peer.Transaction, error) {
	transaction := &peer.Transaction{}
	err := proto.Unmarshal(encoded, transaction)
	return transaction, errors.Wrap(err, "error unmarshaling Transaction")
}

// UnmarshalChaincodeActionPayload unmarshals bytes to a ChaincodeActionPayload
func UnmarshalChaincodeActionPayload(encoded []byte) (*peer.ChaincodeActionPayload, error) {
	actionPayload := &peer.ChaincodeActionPayload{}
	err := proto.Unmarshal(encoded, actionPayload)
	return actionPayload, errors.Wrap(err, "error unmarshaling ChaincodeActionPayload")
}

// UnmarshalProposalResponsePayload unmarshals bytes to a ProposalResponsePayload
func UnmarshalProposalResponsePayload(encoded []byte) (*peer.ProposalResponsePayload, error) {
	responsePayload := &peer.ProposalResponsePayload{}
	err := proto.Unmarshal(encoded, responsePayload)
	return responsePayload, errors.Wrap(err, "error unmarshaling ProposalResponsePayload")
}

// UnmarshalChaincodeAction unmarshals bytes to a ChaincodeAction
func UnmarshalChaincodeAction(encoded []byte) (*peer.ChaincodeAction, error) {
	chaincodeAction := &peer.ChaincodeAction{}
	err := proto.Unmarshal(encoded, chaincodeAction)
	return chaincodeAction, errors.Wrap(err, "error unmarshaling ChaincodeAction")
}

// UnmarshalChaincodeProposalPayload unmarshals bytes to a ChaincodeProposalPayload
func UnmarshalChaincodeProposalPayload(encoded []byte) (*peer.ChaincodeProposalPayload, error) {
	proposalPayload := &peer.ChaincodeProposalPayload{}
	err := proto.Unmarshal(encoded, proposalPayload)
	return proposalPayload, errors.Wrap(err, "error unmarshaling ChaincodeProposalPayload")
}

// UnmarshalChaincodeInvocationSpec unmarshals bytes to a ChaincodeInvocationSpec
func UnmarshalChaincodeInvocationSpec(encoded []byte) (*peer.ChaincodeInvocationSpec, error) {
	invocationSpec := &peer.ChaincodeInvocationSpec{}
	err := proto.Unmarshal(encoded, invocationSpec)
	return invocationSpec, errors.Wrap(err, "error unmarshaling ChaincodeInvocationSpec")
}

// UnmarshalCommitStatusRequest unmarshals bytes to a CommitStatusRequest
func UnmarshalCommitStatusRequest(encoded []byte) (*gateway.CommitStatusRequest, error) {
	request := &gateway.CommitStatusRequest{}
	err := proto.Unmarshal(encoded, request)
	return request, errors.Wrap(err, "error unmarshaling CommitStatusRequest")
}

// UnmarshalChaincodeEventsRequest unmarshals bytes to a ChaincodeEventsRequest
func UnmarshalChaincodeEventsRequest(encoded []byte) (*gateway.ChaincodeEventsRequest, error) {
	request := &gateway.ChaincodeEventsRequest{}
	err := proto.Unmarshal(encoded, request)
	return request, errors.Wrap(err, "error unmarshaling ChaincodeEventsRequest")
}
