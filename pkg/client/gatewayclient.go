/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"time"

	"github.com/cyanlink/fabric-gateway/common/flogging"
	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/peer"
)

var logger = flogging.MustGetLogger("gateway.client")

// timeoutOptions holds the per-stage default timeouts applied when a caller
// does not supply their own context. A zero unary timeout produces an already
// expired context; a zero event stream timeout leaves the stream without a
// deadline.
type timeoutOptions struct {
	evaluate        time.Duration
	endorse         time.Duration
	submit          time.Duration
	commitStatus    time.Duration
	chaincodeEvents time.Duration
	blockEvents     time.Duration
}

func defaultTimeouts() timeoutOptions {
	return timeoutOptions{
		evaluate:     5 * time.Second,
		endorse:      15 * time.Second,
		submit:       5 * time.Second,
		commitStatus: time.Minute,
	}
}

type contextFactory struct {
	timeouts timeoutOptions
}

func (cf *contextFactory) Evaluate() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cf.timeouts.evaluate)
}

func (cf *contextFactory) Endorse() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cf.timeouts.endorse)
}

func (cf *contextFactory) Submit() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cf.timeouts.submit)
}

func (cf *contextFactory) CommitStatus() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cf.timeouts.commitStatus)
}

func (cf *contextFactory) ChaincodeEvents(parent context.Context) (context.Context, context.CancelFunc) {
	return cf.eventContext(parent, cf.timeouts.chaincodeEvents)
}

func (cf *contextFactory) BlockEvents(parent context.Context) (context.Context, context.CancelFunc) {
	return cf.eventContext(parent, cf.timeouts.blockEvents)
}

func (cf *contextFactory) eventContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return context.WithCancel(parent)
}

// gatewayClient is a thin adapter over the Gateway gRPC stub and the peer
// Deliver stub used for block event streams.
type gatewayClient struct {
	gateway  gateway.GatewayClient
	deliver  peer.DeliverClient
	contexts *contextFactory
}

func (gc *gatewayClient) Evaluate(ctx context.Context, request *gateway.EvaluateRequest) (*gateway.EvaluateResponse, error) {
	logger.Debugw("Evaluating transaction", "channel", request.ChannelId, "txid", request.TransactionId)
	return gc.gateway.Evaluate(ctx, request)
}

func (gc *gatewayClient) Endorse(ctx context.Context, request *gateway.EndorseRequest) (*gateway.EndorseResponse, error) {
	logger.Debugw("Endorsing transaction", "channel", request.ChannelId, "txid", request.TransactionId)
	return gc.gateway.Endorse(ctx, request)
}

func (gc *gatewayClient) Submit(ctx context.Context, request *gateway.SubmitRequest) (*gateway.SubmitResponse, error) {
	logger.Debugw("Submitting transaction to the orderer", "channel", request.ChannelId, "txid", request.TransactionId)
	return gc.gateway.Submit(ctx, request)
}

func (gc *gatewayClient) CommitStatus(ctx context.Context, request *gateway.SignedCommitStatusRequest) (*gateway.CommitStatusResponse, error) {
	return gc.gateway.CommitStatus(ctx, request)
}

func (gc *gatewayClient) ChaincodeEvents(ctx context.Context, request *gateway.SignedChaincodeEventsRequest) (gateway.Gateway_ChaincodeEventsClient, error) {
	return gc.gateway.ChaincodeEvents(ctx, request)
}

func (gc *gatewayClient) BlockEvents(ctx context.Context) (peer.Deliver_DeliverClient, error) {
	return gc.deliver.Deliver(ctx)
}

func (gc *gatewayClient) FilteredBlockEvents(ctx context.Context) (peer.Deliver_DeliverFilteredClient, error) {
	return gc.deliver.DeliverFiltered(ctx)
}

func (gc *gatewayClient) BlockAndPrivateDataEvents(ctx context.Context) (peer.Deliver_DeliverWithPrivateDataClient, error) {
	return gc.deliver.DeliverWithPrivateData(ctx)
}
