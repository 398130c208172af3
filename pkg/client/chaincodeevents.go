/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"io"

	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/hyperledger/fabric-protos-go/gateway"
)

// ChaincodeEvent emitted by a transaction function.
type ChaincodeEvent struct {
	// BlockNumber of the block containing the transaction that emitted the
	// event.
	BlockNumber uint64
	// TransactionID of the transaction that emitted the event.
	TransactionID string
	// ChaincodeName of the chaincode that emitted the event.
	ChaincodeName string
	// EventName set by the transaction function.
	EventName string
	// Payload set by the transaction function.
	Payload []byte
}

type chaincodeEventsBuilder struct {
	eventsBuilder
	chaincodeName string
}

func (builder *chaincodeEventsBuilder) build() (*ChaincodeEventsRequest, error) {
	request := &gateway.ChaincodeEventsRequest{
		ChannelId:          builder.channelName,
		ChaincodeId:        builder.chaincodeName,
		Identity:           builder.signingID.Creator(),
		StartPosition:      builder.startPosition(),
		AfterTransactionId: builder.afterTransactionID,
	}
	requestBytes, err := protoutil.Marshal(request)
	if err != nil {
		return nil, err
	}

	return &ChaincodeEventsRequest{
		client:    builder.client,
		signingID: builder.signingID,
		signedRequest: &gateway.SignedChaincodeEventsRequest{
			Request: requestBytes,
		},
		request: request,
	}, nil
}

// ChaincodeEventsRequest delivers events emitted by transaction functions of
// a specific chaincode. The request can be exported with Bytes and Digest for
// offline signing and re-imported with Gateway.NewSignedChaincodeEventsRequest.
type ChaincodeEventsRequest struct {
	client        *gatewayClient
	signingID     *signingIdentity
	signedRequest *gateway.SignedChaincodeEventsRequest
	request       *gateway.ChaincodeEventsRequest
}

// Bytes of the serialized chaincode events request.
func (r *ChaincodeEventsRequest) Bytes() ([]byte, error) {
	return protoutil.Marshal(r.signedRequest)
}

// Digest to be signed to authorize the events request.
func (r *ChaincodeEventsRequest) Digest() []byte {
	return r.signingID.Hash(r.signedRequest.Request)
}

// Events opens the event stream and returns a channel from which individual
// chaincode events can be read in arrival order. The channel is closed when
// the supplied context is cancelled, the stream's configured timeout expires,
// or the server ends the stream. A slow consumer blocks the stream rather
// than losing events.
func (r *ChaincodeEventsRequest) Events(ctx context.Context) (<-chan *ChaincodeEvent, error) {
	if err := r.sign(); err != nil {
		return nil, err
	}

	eventsCtx, cancel := r.client.contexts.ChaincodeEvents(ctx)

	stream, err := r.client.ChaincodeEvents(eventsCtx, r.signedRequest)
	if err != nil {
		cancel()
		return nil, err
	}

	events := make(chan *ChaincodeEvent)
	go func() {
		defer cancel()
		defer close(events)

		skip := r.newSkipState()
		for {
			response, err := stream.Recv()
			if err != nil {
				if err != io.EOF {
					logger.Debugw("Chaincode event stream ended", "channel", r.request.ChannelId, "chaincode", r.request.ChaincodeId, "error", err)
				}
				return
			}

			// A checkpoint block without the recorded transaction was already
			// positioned by the peer, so none of its events are skipped.
			if !skip.done && skip.transactionID != "" && response.GetBlockNumber() == skip.blockNumber {
				skip.done = true
				for _, event := range response.GetEvents() {
					if event.GetTxId() == skip.transactionID {
						skip.done = false
					}
				}
			}

			for _, event := range response.GetEvents() {
				if skip.skip(response.GetBlockNumber(), event.GetTxId()) {
					continue
				}

				chaincodeEvent := &ChaincodeEvent{
					BlockNumber:   response.GetBlockNumber(),
					TransactionID: event.GetTxId(),
					ChaincodeName: event.GetChaincodeId(),
					EventName:     event.GetEventName(),
					Payload:       event.GetPayload(),
				}

				select {
				case events <- chaincodeEvent:
				case <-eventsCtx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func (r *ChaincodeEventsRequest) sign() error {
	if len(r.signedRequest.GetSignature()) > 0 {
		return nil
	}

	signature, err := r.signingID.Sign(r.Digest())
	if err != nil {
		return err
	}

	r.setSignature(signature)
	return nil
}

func (r *ChaincodeEventsRequest) setSignature(signature []byte) {
	r.signedRequest.Signature = signature
}

func (r *ChaincodeEventsRequest) newSkipState() *eventSkipState {
	return &eventSkipState{
		blockNumber:   r.request.GetStartPosition().GetSpecified().GetNumber(),
		transactionID: r.request.GetAfterTransactionId(),
	}
}

// eventSkipState suppresses replayed events when resuming from a checkpoint
// that recorded a partially processed block. Events in the checkpoint block
// at or before the recorded transaction are skipped; peers that already
// honoured the request's after-transaction position deliver nothing to skip.
type eventSkipState struct {
	blockNumber   uint64
	transactionID string
	seen          bool
	done          bool
}

func (s *eventSkipState) skip(blockNumber uint64, transactionID string) bool {
	if s.done || s.transactionID == "" {
		return false
	}
	if blockNumber != s.blockNumber {
		s.done = true
		return false
	}
	if transactionID == s.transactionID {
		s.seen = true
		return true
	}
	if s.seen {
		s.done = true
		return false
	}
	return true
}
