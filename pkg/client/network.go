/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"

	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/peer"
)

// Network represents a network of nodes that are members of a specific Fabric
// channel. Networks are safe for concurrent use by multiple goroutines.
type Network struct {
	client    *gatewayClient
	signingID *signingIdentity
	name      string
}

// Name of the Fabric channel this network represents.
func (n *Network) Name() string {
	return n.name
}

// GetContract returns the default smart contract within a chaincode deployed
// to this network.
func (n *Network) GetContract(chaincodeName string) *Contract {
	return n.GetContractWithName(chaincodeName, "")
}

// GetContractWithName returns a named smart contract within a chaincode
// deployed to this network.
func (n *Network) GetContractWithName(chaincodeName string, contractName string) *Contract {
	return &Contract{
		client:        n.client,
		signingID:     n.signingID,
		channelName:   n.name,
		chaincodeName: chaincodeName,
		contractName:  contractName,
	}
}

// NewChaincodeEventsRequest creates a request to read events emitted by the
// given chaincode. The request can be signed offline before events are read.
func (n *Network) NewChaincodeEventsRequest(chaincodeName string, options ...ChaincodeEventsOption) (*ChaincodeEventsRequest, error) {
	builder := &chaincodeEventsBuilder{
		eventsBuilder: eventsBuilder{
			client:      n.client,
			signingID:   n.signingID,
			channelName: n.name,
		},
		chaincodeName: chaincodeName,
	}

	for _, option := range options {
		if err := option(&builder.eventsBuilder); err != nil {
			return nil, err
		}
	}

	return builder.build()
}

// ChaincodeEvents returns a channel from which events emitted by the given
// chaincode can be read. The channel is closed when the supplied context is
// cancelled or the stream ends.
func (n *Network) ChaincodeEvents(ctx context.Context, chaincodeName string, options ...ChaincodeEventsOption) (<-chan *ChaincodeEvent, error) {
	request, err := n.NewChaincodeEventsRequest(chaincodeName, options...)
	if err != nil {
		return nil, err
	}
	return request.Events(ctx)
}

// NewBlockEventsRequest creates a request to read block events. The request
// can be signed offline before events are read.
func (n *Network) NewBlockEventsRequest(options ...BlockEventsOption) (*BlockEventsRequest, error) {
	request, err := n.newBlockEventsRequest(options)
	if err != nil {
		return nil, err
	}
	return &BlockEventsRequest{blockEventsRequest: request}, nil
}

// BlockEvents returns a channel from which block events can be read. The
// channel is closed when the supplied context is cancelled or the stream ends.
func (n *Network) BlockEvents(ctx context.Context, options ...BlockEventsOption) (<-chan *common.Block, error) {
	request, err := n.NewBlockEventsRequest(options...)
	if err != nil {
		return nil, err
	}
	return request.Events(ctx)
}

// NewFilteredBlockEventsRequest creates a request to read filtered block
// events. The request can be signed offline before events are read.
func (n *Network) NewFilteredBlockEventsRequest(options ...BlockEventsOption) (*FilteredBlockEventsRequest, error) {
	request, err := n.newBlockEventsRequest(options)
	if err != nil {
		return nil, err
	}
	return &FilteredBlockEventsRequest{blockEventsRequest: request}, nil
}

// FilteredBlockEvents returns a channel from which filtered block events can
// be read.
func (n *Network) FilteredBlockEvents(ctx context.Context, options ...BlockEventsOption) (<-chan *peer.FilteredBlock, error) {
	request, err := n.NewFilteredBlockEventsRequest(options...)
	if err != nil {
		return nil, err
	}
	return request.Events(ctx)
}

// NewBlockAndPrivateDataEventsRequest creates a request to read block events
// including private data collection contents. The request can be signed
// offline before events are read.
func (n *Network) NewBlockAndPrivateDataEventsRequest(options ...BlockEventsOption) (*BlockAndPrivateDataEventsRequest, error) {
	request, err := n.newBlockEventsRequest(options)
	if err != nil {
		return nil, err
	}
	return &BlockAndPrivateDataEventsRequest{blockEventsRequest: request}, nil
}

// BlockAndPrivateDataEvents returns a channel from which block and private
// data events can be read.
func (n *Network) BlockAndPrivateDataEvents(ctx context.Context, options ...BlockEventsOption) (<-chan *peer.BlockAndPrivateData, error) {
	request, err := n.NewBlockAndPrivateDataEventsRequest(options...)
	if err != nil {
		return nil, err
	}
	return request.Events(ctx)
}

func (n *Network) newBlockEventsRequest(options []BlockEventsOption) (*blockEventsRequest, error) {
	builder := &blockEventsBuilder{
		eventsBuilder: eventsBuilder{
			client:      n.client,
			signingID:   n.signingID,
			channelName: n.name,
		},
	}

	for _, option := range options {
		if err := option(&builder.eventsBuilder); err != nil {
			return nil, err
		}
	}

	return builder.build()
}
