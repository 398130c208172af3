/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/peer"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ProposalOption implements an option for a transaction proposal.
type ProposalOption = func(builder *proposalBuilder) error

// WithArguments appends string arguments to the transaction proposal.
func WithArguments(args ...string) ProposalOption {
	return func(builder *proposalBuilder) error {
		for _, arg := range args {
			builder.args = append(builder.args, []byte(arg))
		}
		return nil
	}
}

// WithBytesArguments appends byte arguments to the transaction proposal.
func WithBytesArguments(args ...[]byte) ProposalOption {
	return func(builder *proposalBuilder) error {
		builder.args = append(builder.args, args...)
		return nil
	}
}

// WithTransient supplies transient data to the transaction. Transient data is
// passed to endorsing peers but is not recorded on the ledger.
func WithTransient(transient map[string][]byte) ProposalOption {
	return func(builder *proposalBuilder) error {
		builder.transient = transient
		return nil
	}
}

// WithEndorsingOrganizations restricts endorsement of the proposal, or
// evaluation of its transaction, to the named organizations.
func WithEndorsingOrganizations(mspids ...string) ProposalOption {
	return func(builder *proposalBuilder) error {
		builder.endorsingOrgs = mspids
		return nil
	}
}

type proposalBuilder struct {
	contract        *Contract
	transactionName string
	args            [][]byte
	transient       map[string][]byte
	endorsingOrgs   []string
}

func (builder *proposalBuilder) build() (*Proposal, error) {
	signingID := builder.contract.signingID

	nonce, err := protoutil.CreateNonce()
	if err != nil {
		return nil, err
	}
	transactionID := protoutil.ComputeTxID(signingID.Hash, nonce, signingID.Creator())

	proposalBytes, err := builder.proposalBytes(transactionID, nonce)
	if err != nil {
		return nil, err
	}

	proposedTransaction := &gateway.ProposedTransaction{
		TransactionId: transactionID,
		Proposal: &peer.SignedProposal{
			ProposalBytes: proposalBytes,
		},
		EndorsingOrganizations: builder.endorsingOrgs,
	}

	return &Proposal{
		client:              builder.contract.client,
		signingID:           signingID,
		channelID:           builder.contract.channelName,
		proposedTransaction: proposedTransaction,
	}, nil
}

func (builder *proposalBuilder) proposalBytes(transactionID string, nonce []byte) ([]byte, error) {
	headerBytes, err := builder.headerBytes(transactionID, nonce)
	if err != nil {
		return nil, err
	}

	invocationSpec := &peer.ChaincodeInvocationSpec{
		ChaincodeSpec: &peer.ChaincodeSpec{
			Type:        peer.ChaincodeSpec_GOLANG,
			ChaincodeId: &peer.ChaincodeID{Name: builder.contract.chaincodeName},
			Input:       &peer.ChaincodeInput{Args: builder.chaincodeArgs()},
		},
	}
	invocationSpecBytes, err := protoutil.Marshal(invocationSpec)
	if err != nil {
		return nil, err
	}

	proposalPayloadBytes, err := protoutil.Marshal(&peer.ChaincodeProposalPayload{
		Input:        invocationSpecBytes,
		TransientMap: builder.transient,
	})
	if err != nil {
		return nil, err
	}

	return protoutil.Marshal(&peer.Proposal{
		Header:  headerBytes,
		Payload: proposalPayloadBytes,
	})
}

func (builder *proposalBuilder) headerBytes(transactionID string, nonce []byte) ([]byte, error) {
	extensionBytes, err := protoutil.Marshal(&peer.ChaincodeHeaderExtension{
		ChaincodeId: &peer.ChaincodeID{Name: builder.contract.chaincodeName},
	})
	if err != nil {
		return nil, err
	}

	channelHeaderBytes, err := protoutil.Marshal(&common.ChannelHeader{
		Type:      int32(common.HeaderType_ENDORSER_TRANSACTION),
		ChannelId: builder.contract.channelName,
		TxId:      transactionID,
		Epoch:     0,
		Timestamp: timestamppb.Now(),
		Extension: extensionBytes,
	})
	if err != nil {
		return nil, err
	}

	signatureHeaderBytes, err := protoutil.Marshal(&common.SignatureHeader{
		Creator: builder.contract.signingID.Creator(),
		Nonce:   nonce,
	})
	if err != nil {
		return nil, err
	}

	return protoutil.Marshal(&common.Header{
		ChannelHeader:   channelHeaderBytes,
		SignatureHeader: signatureHeaderBytes,
	})
}

func (builder *proposalBuilder) chaincodeArgs() [][]byte {
	args := make([][]byte, 0, len(builder.args)+1)
	args = append(args, []byte(builder.transactionName))
	return append(args, builder.args...)
}
