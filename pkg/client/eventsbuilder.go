/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"github.com/hyperledger/fabric-protos-go/orderer"
)

// eventsBuilder holds the start position options common to chaincode and
// block event streams.
type eventsBuilder struct {
	client             *gatewayClient
	signingID          *signingIdentity
	channelName        string
	startBlock         *uint64
	afterTransactionID string
	checkpointed       bool
}

type eventOption = func(builder *eventsBuilder) error

// ChaincodeEventsOption implements an option for a chaincode events request.
type ChaincodeEventsOption = eventOption

// BlockEventsOption implements an option for a block events request.
type BlockEventsOption = eventOption

// WithStartBlock reads events starting at the specified block number. Without
// a start position the stream begins with the next block the network commits.
func WithStartBlock(blockNumber uint64) eventOption {
	return func(builder *eventsBuilder) error {
		if !builder.checkpointed {
			builder.startBlock = &blockNumber
		}
		return nil
	}
}

// WithCheckpoint resumes eventing from a checkpoint position. A checkpoint
// that records an in-flight block and transaction takes precedence over a
// start block: events before the checkpoint block are skipped, and within the
// checkpoint block events at or before the recorded transaction are skipped.
// A checkpoint with no recorded state has no effect.
func WithCheckpoint(checkpoint Checkpoint) eventOption {
	return func(builder *eventsBuilder) error {
		blockNumber := checkpoint.BlockNumber()
		transactionID := checkpoint.TransactionID()
		if blockNumber == 0 && transactionID == "" {
			return nil
		}
		builder.startBlock = &blockNumber
		builder.afterTransactionID = transactionID
		builder.checkpointed = true
		return nil
	}
}

func (builder *eventsBuilder) startPosition() *orderer.SeekPosition {
	if builder.startBlock != nil {
		return &orderer.SeekPosition{
			Type: &orderer.SeekPosition_Specified{
				Specified: &orderer.SeekSpecified{
					Number: *builder.startBlock,
				},
			},
		}
	}

	return &orderer.SeekPosition{
		Type: &orderer.SeekPosition_NextCommit{
			NextCommit: &orderer.SeekNextCommit{},
		},
	}
}
