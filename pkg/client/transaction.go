/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"

	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/pkg/errors"
)

// Transaction represents an endorsed transaction that can be submitted to the
// orderer for commit to the ledger.
type Transaction struct {
	client              *gatewayClient
	signingID           *signingIdentity
	channelID           string
	preparedTransaction *gateway.PreparedTransaction
}

// newTransaction builds a transaction from an endorsed envelope. The channel
// name is read from the channel header carried in the envelope payload.
func newTransaction(client *gatewayClient, signingID *signingIdentity, preparedTransaction *gateway.PreparedTransaction) (*Transaction, error) {
	envelope := preparedTransaction.GetEnvelope()
	if envelope == nil {
		return nil, errors.WithMessage(ErrInvalidArgument, "a transaction envelope is required")
	}

	payload, err := protoutil.UnmarshalPayload(envelope.Payload)
	if err != nil {
		return nil, err
	}
	if payload.Header == nil {
		return nil, errors.WithMessage(ErrInvalidArgument, "transaction envelope is missing a header")
	}
	channelHeader, err := protoutil.UnmarshalChannelHeader(payload.Header.ChannelHeader)
	if err != nil {
		return nil, err
	}

	// The embedded channel header is authoritative for both channel name and
	// transaction ID, so artifacts signed by foreign tooling round-trip.
	preparedTransaction.TransactionId = channelHeader.TxId

	return &Transaction{
		client:              client,
		signingID:           signingID,
		channelID:           channelHeader.ChannelId,
		preparedTransaction: preparedTransaction,
	}, nil
}

// TransactionID of the transaction, matching the originating proposal.
func (t *Transaction) TransactionID() string {
	return t.preparedTransaction.TransactionId
}

// Bytes of the serialized transaction, suitable for offline signing and later
// re-import with Gateway.NewSignedTransaction.
func (t *Transaction) Bytes() ([]byte, error) {
	return protoutil.Marshal(t.preparedTransaction)
}

// Digest to be signed to authorize submission of the transaction.
func (t *Transaction) Digest() []byte {
	return t.signingID.Hash(t.preparedTransaction.Envelope.Payload)
}

// Result of the transaction function, extracted from the endorsed
// transaction envelope.
func (t *Transaction) Result() ([]byte, error) {
	response, err := protoutil.TransactionResponse(t.preparedTransaction.Envelope)
	if err != nil {
		return nil, err
	}
	return response.Payload, nil
}

// Submit the transaction to the orderer and return a Commit that can be used
// to await commit status. The Gateway's default submit timeout is applied.
func (t *Transaction) Submit() (*Commit, error) {
	ctx, cancel := t.client.contexts.Submit()
	defer cancel()
	return t.SubmitWithContext(ctx)
}

// SubmitWithContext submits the transaction using the supplied context for
// cancellation and timeout.
func (t *Transaction) SubmitWithContext(ctx context.Context) (*Commit, error) {
	if err := t.sign(); err != nil {
		return nil, err
	}

	request := &gateway.SubmitRequest{
		TransactionId:       t.TransactionID(),
		ChannelId:           t.channelID,
		PreparedTransaction: t.preparedTransaction.Envelope,
	}

	if _, err := t.client.Submit(ctx, request); err != nil {
		return nil, &SubmitError{newTransactionError(err, t.TransactionID())}
	}

	return newCommit(t.client, t.signingID, t.channelID, t.TransactionID())
}

func (t *Transaction) sign() error {
	if t.isSigned() {
		return nil
	}

	signature, err := t.signingID.Sign(t.Digest())
	if err != nil {
		return err
	}

	t.setSignature(signature)
	return nil
}

func (t *Transaction) isSigned() bool {
	return len(t.preparedTransaction.Envelope.GetSignature()) > 0
}

func (t *Transaction) setSignature(signature []byte) {
	t.preparedTransaction.Envelope.Signature = signature
}
