/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package client enables Go developers to build applications that interact
// with a Fabric network through a Gateway peer. Transaction evaluation,
// endorsement, submission and commit status, along with chaincode and block
// event streams, are driven through a small fluent API:
//
//	gateway, err := client.Connect(id, client.WithSign(sign), client.WithClientConnection(conn))
//	network := gateway.GetNetwork("mychannel")
//	contract := network.GetContract("basic")
//	result, err := contract.SubmitTransaction("createAsset", "asset1")
//
// Each transaction stage produces a serializable artifact whose bytes and
// digest can be exported for signing outside the client process, then
// re-imported with the matching NewSigned function without changing the
// transaction identity.
package client

import (
	"io"
	"time"

	"github.com/cyanlink/fabric-gateway/pkg/hash"
	"github.com/cyanlink/fabric-gateway/pkg/identity"
	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Gateway representing the connection of a specific client identity to a
// Fabric Gateway peer.
type Gateway struct {
	signingID *signingIdentity
	conn      grpc.ClientConnInterface
	closer    io.Closer
	timeouts  timeoutOptions
	client    *gatewayClient
}

// ConnectOption implements an option that configures the Gateway connection.
type ConnectOption = func(gateway *Gateway) error

// Connect a client identity to a Fabric Gateway endpoint. Options are applied
// in the order supplied; the first option to fail aborts the connection with
// that error.
func Connect(id identity.Identity, options ...ConnectOption) (*Gateway, error) {
	signingID, err := newSigningIdentity(id)
	if err != nil {
		return nil, err
	}

	gw := &Gateway{
		signingID: signingID,
		timeouts:  defaultTimeouts(),
	}

	for _, option := range options {
		if err := option(gw); err != nil {
			return nil, err
		}
	}

	if gw.conn == nil {
		return nil, errors.WithMessage(ErrInvalidArgument, "no gRPC connection supplied")
	}

	gw.client = &gatewayClient{
		gateway:  gateway.NewGatewayClient(gw.conn),
		deliver:  peer.NewDeliverClient(gw.conn),
		contexts: &contextFactory{timeouts: gw.timeouts},
	}

	return gw, nil
}

// WithSign supplies the signing implementation used to sign every transaction
// artifact produced by this Gateway.
func WithSign(sign identity.Sign) ConnectOption {
	return func(gw *Gateway) error {
		gw.signingID.sign = sign
		return nil
	}
}

// WithHash supplies the digest implementation used when signing. SHA-256 is
// used if this option is not supplied.
func WithHash(hash hash.Hash) ConnectOption {
	return func(gw *Gateway) error {
		gw.signingID.hash = hash
		return nil
	}
}

// WithClientConnection uses a gRPC connection managed by the caller. Closing
// the Gateway will not close this connection.
func WithClientConnection(clientConnection grpc.ClientConnInterface) ConnectOption {
	return func(gw *Gateway) error {
		gw.conn = clientConnection
		gw.closer = nil
		return nil
	}
}

// WithEndpoint dials the supplied gRPC target and transfers ownership of the
// resulting connection to the Gateway, which closes it on Close. Insecure
// transport credentials are used unless dial options are supplied.
func WithEndpoint(target string, dialOptions ...grpc.DialOption) ConnectOption {
	return func(gw *Gateway) error {
		if len(dialOptions) == 0 {
			dialOptions = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
		}
		conn, err := grpc.Dial(target, dialOptions...)
		if err != nil {
			return errors.Wrapf(err, "error dialing %s", target)
		}
		gw.conn = conn
		gw.closer = conn
		return nil
	}
}

// WithEvaluateTimeout sets the default timeout for transaction evaluation.
func WithEvaluateTimeout(timeout time.Duration) ConnectOption {
	return func(gw *Gateway) error {
		gw.timeouts.evaluate = timeout
		return nil
	}
}

// WithEndorseTimeout sets the default timeout for transaction endorsement.
func WithEndorseTimeout(timeout time.Duration) ConnectOption {
	return func(gw *Gateway) error {
		gw.timeouts.endorse = timeout
		return nil
	}
}

// WithSubmitTimeout sets the default timeout for submitting an endorsed
// transaction to the orderer.
func WithSubmitTimeout(timeout time.Duration) ConnectOption {
	return func(gw *Gateway) error {
		gw.timeouts.submit = timeout
		return nil
	}
}

// WithCommitStatusTimeout sets the default timeout for retrieving transaction
// commit status.
func WithCommitStatusTimeout(timeout time.Duration) ConnectOption {
	return func(gw *Gateway) error {
		gw.timeouts.commitStatus = timeout
		return nil
	}
}

// WithChaincodeEventsTimeout sets the maximum duration of a chaincode event
// stream. A zero timeout, the default, leaves the stream open until cancelled.
func WithChaincodeEventsTimeout(timeout time.Duration) ConnectOption {
	return func(gw *Gateway) error {
		gw.timeouts.chaincodeEvents = timeout
		return nil
	}
}

// WithBlockEventsTimeout sets the maximum duration of a block event stream. A
// zero timeout, the default, leaves the stream open until cancelled.
func WithBlockEventsTimeout(timeout time.Duration) ConnectOption {
	return func(gw *Gateway) error {
		gw.timeouts.blockEvents = timeout
		return nil
	}
}

// Close the Gateway connection when it is no longer needed. Connections
// supplied by the caller with WithClientConnection are left open.
func (gw *Gateway) Close() error {
	if gw.closer != nil {
		return gw.closer.Close()
	}
	return nil
}

// Identity used by this Gateway.
func (gw *Gateway) Identity() identity.Identity {
	return gw.signingID.id
}

// GetNetwork returns a Network representing a channel on the Fabric network.
func (gw *Gateway) GetNetwork(name string) *Network {
	return &Network{
		client:    gw.client,
		signingID: gw.signingID,
		name:      name,
	}
}
