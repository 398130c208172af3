/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

// Checkpoint provides the position at which to resume an event stream.
type Checkpoint interface {
	// BlockNumber at which to resume eventing, or zero if no position has
	// been recorded.
	BlockNumber() uint64
	// TransactionID of the last processed event within the checkpoint block,
	// or an empty string if eventing should resume at the start of the block.
	TransactionID() string
}

// InMemoryCheckpointer tracks eventing progress in memory. It is not safe for
// concurrent use; an event stream has a single consumer.
type InMemoryCheckpointer struct {
	blockNumber   uint64
	transactionID string
}

// CheckpointBlock records a successfully processed block. Eventing resumes
// from the following block.
func (c *InMemoryCheckpointer) CheckpointBlock(blockNumber uint64) {
	c.blockNumber = blockNumber + 1
	c.transactionID = ""
}

// CheckpointTransaction records a successfully processed transaction within a
// block.
func (c *InMemoryCheckpointer) CheckpointTransaction(blockNumber uint64, transactionID string) {
	c.blockNumber = blockNumber
	c.transactionID = transactionID
}

// CheckpointChaincodeEvent records a successfully processed chaincode event.
func (c *InMemoryCheckpointer) CheckpointChaincodeEvent(event *ChaincodeEvent) {
	c.CheckpointTransaction(event.BlockNumber, event.TransactionID)
}

// BlockNumber of the current checkpoint position.
func (c *InMemoryCheckpointer) BlockNumber() uint64 {
	return c.blockNumber
}

// TransactionID of the current checkpoint position.
func (c *InMemoryCheckpointer) TransactionID() string {
	return c.transactionID
}
