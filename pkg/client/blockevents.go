/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"io"
	"math"

	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/orderer"
	"github.com/hyperledger/fabric-protos-go/peer"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type blockEventsBuilder struct {
	eventsBuilder
}

func (builder *blockEventsBuilder) build() (*blockEventsRequest, error) {
	envelope, err := builder.newRequestEnvelope()
	if err != nil {
		return nil, err
	}

	return &blockEventsRequest{
		client:    builder.client,
		signingID: builder.signingID,
		request:   envelope,
	}, nil
}

// newRequestEnvelope packages a SeekInfo for the block range into an
// unsigned envelope addressed to the peer deliver service.
func (builder *blockEventsBuilder) newRequestEnvelope() (*common.Envelope, error) {
	seekInfoBytes, err := protoutil.Marshal(&orderer.SeekInfo{
		Start: builder.startPosition(),
		Stop: &orderer.SeekPosition{
			Type: &orderer.SeekPosition_Specified{
				Specified: &orderer.SeekSpecified{
					Number: math.MaxUint64,
				},
			},
		},
		Behavior: orderer.SeekInfo_BLOCK_UNTIL_READY,
	})
	if err != nil {
		return nil, err
	}

	nonce, err := protoutil.CreateNonce()
	if err != nil {
		return nil, err
	}

	channelHeaderBytes, err := protoutil.Marshal(&common.ChannelHeader{
		Type:      int32(common.HeaderType_DELIVER_SEEK_INFO),
		ChannelId: builder.channelName,
		Epoch:     0,
		Timestamp: timestamppb.Now(),
	})
	if err != nil {
		return nil, err
	}

	signatureHeaderBytes, err := protoutil.Marshal(&common.SignatureHeader{
		Creator: builder.signingID.Creator(),
		Nonce:   nonce,
	})
	if err != nil {
		return nil, err
	}

	payloadBytes, err := protoutil.Marshal(&common.Payload{
		Header: &common.Header{
			ChannelHeader:   channelHeaderBytes,
			SignatureHeader: signatureHeaderBytes,
		},
		Data: seekInfoBytes,
	})
	if err != nil {
		return nil, err
	}

	return &common.Envelope{
		Payload: payloadBytes,
	}, nil
}

// blockEventsRequest holds the signed envelope shared by the block event
// stream variants.
type blockEventsRequest struct {
	client    *gatewayClient
	signingID *signingIdentity
	request   *common.Envelope
}

// Bytes of the serialized block events request.
func (r *blockEventsRequest) Bytes() ([]byte, error) {
	return protoutil.Marshal(r.request)
}

// Digest to be signed to authorize the events request.
func (r *blockEventsRequest) Digest() []byte {
	return r.signingID.Hash(r.request.Payload)
}

func (r *blockEventsRequest) sign() error {
	if len(r.request.GetSignature()) > 0 {
		return nil
	}

	signature, err := r.signingID.Sign(r.Digest())
	if err != nil {
		return err
	}

	r.setSignature(signature)
	return nil
}

func (r *blockEventsRequest) setSignature(signature []byte) {
	r.request.Signature = signature
}

type deliverStream interface {
	Send(*common.Envelope) error
	Recv() (*peer.DeliverResponse, error)
}

// openStream creates the deliver stream and sends the signed seek envelope,
// returning the stream together with the cancel function that closes it.
func (r *blockEventsRequest) openStream(ctx context.Context, newStream func(context.Context) (deliverStream, error)) (deliverStream, context.Context, context.CancelFunc, error) {
	if err := r.sign(); err != nil {
		return nil, nil, nil, err
	}

	eventsCtx, cancel := r.client.contexts.BlockEvents(ctx)

	stream, err := newStream(eventsCtx)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}

	if err := stream.Send(r.request); err != nil {
		cancel()
		return nil, nil, nil, err
	}

	return stream, eventsCtx, cancel, nil
}

// BlockEventsRequest delivers full blocks committed to the channel ledger.
type BlockEventsRequest struct {
	*blockEventsRequest
}

// Events opens the stream and returns a channel from which blocks can be
// read. The channel is closed when the supplied context is cancelled, the
// stream's configured timeout expires, or the server ends the stream.
func (r *BlockEventsRequest) Events(ctx context.Context) (<-chan *common.Block, error) {
	stream, eventsCtx, cancel, err := r.openStream(ctx, func(ctx context.Context) (deliverStream, error) {
		deliver, err := r.client.BlockEvents(ctx)
		return deliver, err
	})
	if err != nil {
		return nil, err
	}

	events := make(chan *common.Block)
	go func() {
		defer cancel()
		defer close(events)

		for {
			response, err := stream.Recv()
			if err != nil {
				if err != io.EOF {
					logger.Debugw("Block event stream ended", "error", err)
				}
				return
			}

			block := response.GetBlock()
			if block == nil {
				// A status response signals the end of the stream
				return
			}

			select {
			case events <- block:
			case <-eventsCtx.Done():
				return
			}
		}
	}()

	return events, nil
}

// FilteredBlockEventsRequest delivers filtered blocks committed to the
// channel ledger.
type FilteredBlockEventsRequest struct {
	*blockEventsRequest
}

// Events opens the stream and returns a channel from which filtered blocks
// can be read.
func (r *FilteredBlockEventsRequest) Events(ctx context.Context) (<-chan *peer.FilteredBlock, error) {
	stream, eventsCtx, cancel, err := r.openStream(ctx, func(ctx context.Context) (deliverStream, error) {
		deliver, err := r.client.FilteredBlockEvents(ctx)
		return deliver, err
	})
	if err != nil {
		return nil, err
	}

	events := make(chan *peer.FilteredBlock)
	go func() {
		defer cancel()
		defer close(events)

		for {
			response, err := stream.Recv()
			if err != nil {
				if err != io.EOF {
					logger.Debugw("Filtered block event stream ended", "error", err)
				}
				return
			}

			block := response.GetFilteredBlock()
			if block == nil {
				return
			}

			select {
			case events <- block:
			case <-eventsCtx.Done():
				return
			}
		}
	}()

	return events, nil
}

// BlockAndPrivateDataEventsRequest delivers blocks together with the private
// data collection contents visible to this identity.
type BlockAndPrivateDataEventsRequest struct {
	*blockEventsRequest
}

// Events opens the stream and returns a channel from which blocks and their
// private data can be read.
func (r *BlockAndPrivateDataEventsRequest) Events(ctx context.Context) (<-chan *peer.BlockAndPrivateData, error) {
	stream, eventsCtx, cancel, err := r.openStream(ctx, func(ctx context.Context) (deliverStream, error) {
		deliver, err := r.client.BlockAndPrivateDataEvents(ctx)
		return deliver, err
	})
	if err != nil {
		return nil, err
	}

	events := make(chan *peer.BlockAndPrivateData)
	go func() {
		defer cancel()
		defer close(events)

		for {
			response, err := stream.Recv()
			if err != nil {
				if err != io.EOF {
					logger.Debugw("Block and private data event stream ended", "error", err)
				}
				return
			}

			block := response.GetBlockAndPrivateData()
			if block == nil {
				return
			}

			select {
			case events <- block:
			case <-eventsCtx.Done():
				return
			}
		}
	}()

	return events, nil
}
