/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"

	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/hyperledger/fabric-protos-go/gateway"
)

// Proposal represents a transaction proposal that can be sent to peers for
// endorsement or evaluated without a ledger update. A proposal is immutable
// once built except for its signature, which is applied exactly once, either
// by the connected signer or by offline re-import.
type Proposal struct {
	client              *gatewayClient
	signingID           *signingIdentity
	channelID           string
	proposedTransaction *gateway.ProposedTransaction
}

// TransactionID of the proposal, derived from the signature header nonce and
// the creator identity.
func (p *Proposal) TransactionID() string {
	return p.proposedTransaction.TransactionId
}

// Bytes of the serialized proposal, suitable for offline signing and later
// re-import with Gateway.NewSignedProposal.
func (p *Proposal) Bytes() ([]byte, error) {
	return protoutil.Marshal(p.proposedTransaction)
}

// Digest to be signed to authorize the proposal.
func (p *Proposal) Digest() []byte {
	return p.signingID.Hash(p.proposedTransaction.Proposal.ProposalBytes)
}

// Endorse the proposal and obtain an endorsed transaction ready for
// submission to the orderer. The Gateway's default endorse timeout is applied.
func (p *Proposal) Endorse() (*Transaction, error) {
	ctx, cancel := p.client.contexts.Endorse()
	defer cancel()
	return p.EndorseWithContext(ctx)
}

// EndorseWithContext endorses the proposal using the supplied context for
// cancellation and timeout.
func (p *Proposal) EndorseWithContext(ctx context.Context) (*Transaction, error) {
	if err := p.sign(); err != nil {
		return nil, err
	}

	request := &gateway.EndorseRequest{
		TransactionId:          p.TransactionID(),
		ChannelId:              p.channelID,
		ProposedTransaction:    p.proposedTransaction.Proposal,
		EndorsingOrganizations: p.proposedTransaction.EndorsingOrganizations,
	}

	response, err := p.client.Endorse(ctx, request)
	if err != nil {
		return nil, &EndorseError{newTransactionError(err, p.TransactionID())}
	}

	preparedTransaction := &gateway.PreparedTransaction{
		TransactionId: p.TransactionID(),
		Envelope:      response.GetPreparedTransaction(),
	}
	return newTransaction(p.client, p.signingID, preparedTransaction)
}

// Evaluate the proposal and return the transaction function result. No ledger
// update is performed. The Gateway's default evaluate timeout is applied.
func (p *Proposal) Evaluate() ([]byte, error) {
	ctx, cancel := p.client.contexts.Evaluate()
	defer cancel()
	return p.EvaluateWithContext(ctx)
}

// EvaluateWithContext evaluates the proposal using the supplied context for
// cancellation and timeout.
func (p *Proposal) EvaluateWithContext(ctx context.Context) ([]byte, error) {
	if err := p.sign(); err != nil {
		return nil, err
	}

	request := &gateway.EvaluateRequest{
		TransactionId:       p.TransactionID(),
		ChannelId:           p.channelID,
		ProposedTransaction: p.proposedTransaction.Proposal,
		TargetOrganizations: p.proposedTransaction.EndorsingOrganizations,
	}

	response, err := p.client.Evaluate(ctx, request)
	if err != nil {
		return nil, err
	}

	return response.GetResult().GetPayload(), nil
}

func (p *Proposal) sign() error {
	if p.isSigned() {
		return nil
	}

	signature, err := p.signingID.Sign(p.Digest())
	if err != nil {
		return err
	}

	p.setSignature(signature)
	return nil
}

func (p *Proposal) isSigned() bool {
	return len(p.proposedTransaction.Proposal.GetSignature()) > 0
}

func (p *Proposal) setSignature(signature []byte) {
	p.proposedTransaction.Proposal.Signature = signature
}
