/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"

	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/peer"
)

// Status of a committed transaction.
type Status struct {
	// Code is the validation code recorded for the transaction.
	Code peer.TxValidationCode
	// Successful is true if the transaction committed with a VALID code.
	Successful bool
	// BlockNumber of the block containing the transaction.
	BlockNumber uint64
	// TransactionID of the transaction.
	TransactionID string
}

// Commit provides access to the commit status of a submitted transaction.
// The status is resolved at most once; repeated Status calls return the
// cached terminal value.
type Commit struct {
	client        *gatewayClient
	signingID     *signingIdentity
	channelID     string
	transactionID string
	signedRequest *gateway.SignedCommitStatusRequest
	status        *Status
}

func newCommit(client *gatewayClient, signingID *signingIdentity, channelID string, transactionID string) (*Commit, error) {
	request := &gateway.CommitStatusRequest{
		ChannelId:     channelID,
		TransactionId: transactionID,
		Identity:      signingID.Creator(),
	}
	requestBytes, err := protoutil.Marshal(request)
	if err != nil {
		return nil, err
	}

	return &Commit{
		client:        client,
		signingID:     signingID,
		channelID:     channelID,
		transactionID: transactionID,
		signedRequest: &gateway.SignedCommitStatusRequest{
			Request: requestBytes,
		},
	}, nil
}

// TransactionID of the submitted transaction.
func (c *Commit) TransactionID() string {
	return c.transactionID
}

// Bytes of the serialized commit status request, suitable for offline signing
// and later re-import with Gateway.NewSignedCommit.
func (c *Commit) Bytes() ([]byte, error) {
	return protoutil.Marshal(c.signedRequest)
}

// Digest to be signed to authorize the commit status request.
func (c *Commit) Digest() []byte {
	return c.signingID.Hash(c.signedRequest.Request)
}

// Status of the committed transaction. This call blocks until the transaction
// commits or the context expires. An unsuccessful validation code is reported
// in the returned Status, not as an error. The Gateway's default commit
// status timeout is applied.
func (c *Commit) Status() (*Status, error) {
	ctx, cancel := c.client.contexts.CommitStatus()
	defer cancel()
	return c.StatusWithContext(ctx)
}

// StatusWithContext obtains the commit status using the supplied context for
// cancellation and timeout.
func (c *Commit) StatusWithContext(ctx context.Context) (*Status, error) {
	if c.status != nil {
		return c.status, nil
	}

	if err := c.sign(); err != nil {
		return nil, err
	}

	response, err := c.client.CommitStatus(ctx, c.signedRequest)
	if err != nil {
		return nil, &CommitStatusError{newTransactionError(err, c.transactionID)}
	}

	c.status = &Status{
		Code:          response.GetResult(),
		Successful:    response.GetResult() == peer.TxValidationCode_VALID,
		BlockNumber:   response.GetBlockNumber(),
		TransactionID: c.transactionID,
	}
	return c.status, nil
}

// Successful returns true if the transaction committed with a VALID code,
// blocking for commit status if it has not yet been resolved.
func (c *Commit) Successful() (bool, error) {
	status, err := c.Status()
	if err != nil {
		return false, err
	}
	return status.Successful, nil
}

// BlockNumber of the block containing the transaction, blocking for commit
// status if it has not yet been resolved.
func (c *Commit) BlockNumber() (uint64, error) {
	status, err := c.Status()
	if err != nil {
		return 0, err
	}
	return status.BlockNumber, nil
}

func (c *Commit) sign() error {
	if c.isSigned() {
		return nil
	}

	signature, err := c.signingID.Sign(c.Digest())
	if err != nil {
		return err
	}

	c.setSignature(signature)
	return nil
}

func (c *Commit) isSigned() bool {
	return len(c.signedRequest.GetSignature()) > 0
}

func (c *Commit) setSignature(signature []byte) {
	c.signedRequest.Signature = signature
}
