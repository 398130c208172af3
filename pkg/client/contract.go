/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import "github.com/pkg/errors"

// Contract represents a smart contract within a chaincode deployed to a
// channel. Contracts are safe for concurrent use by multiple goroutines.
type Contract struct {
	client        *gatewayClient
	signingID     *signingIdentity
	channelName   string
	chaincodeName string
	contractName  string
}

// ChaincodeName of the chaincode that contains this smart contract.
func (c *Contract) ChaincodeName() string {
	return c.chaincodeName
}

// ContractName of this smart contract, or an empty string for the default
// contract within the chaincode.
func (c *Contract) ContractName() string {
	return c.contractName
}

// EvaluateTransaction runs a transaction function with string arguments and
// returns its result. No ledger update is performed.
func (c *Contract) EvaluateTransaction(name string, args ...string) ([]byte, error) {
	return c.Evaluate(name, WithArguments(args...))
}

// Evaluate a transaction function and return its result. No ledger update is
// performed.
func (c *Contract) Evaluate(transactionName string, options ...ProposalOption) ([]byte, error) {
	proposal, err := c.NewProposal(transactionName, options...)
	if err != nil {
		return nil, err
	}
	return proposal.Evaluate()
}

// SubmitTransaction invokes a transaction function with string arguments,
// waits for it to commit, and returns its result. A CommitError is returned
// if the transaction commits with an unsuccessful validation code.
func (c *Contract) SubmitTransaction(name string, args ...string) ([]byte, error) {
	return c.Submit(name, WithArguments(args...))
}

// Submit a transaction to the ledger and await commit. The transaction
// function result is returned. A CommitError is returned if the transaction
// commits with an unsuccessful validation code.
func (c *Contract) Submit(transactionName string, options ...ProposalOption) ([]byte, error) {
	result, commit, err := c.SubmitAsync(transactionName, options...)
	if err != nil {
		return result, err
	}

	status, err := commit.Status()
	if err != nil {
		return result, err
	}
	if !status.Successful {
		return result, newCommitError(status)
	}

	return result, nil
}

// SubmitAsync submits a transaction to the ledger and returns its result
// immediately after it has been successfully delivered to the orderer, along
// with a Commit that can be used to await the commit status.
func (c *Contract) SubmitAsync(transactionName string, options ...ProposalOption) ([]byte, *Commit, error) {
	proposal, err := c.NewProposal(transactionName, options...)
	if err != nil {
		return nil, nil, err
	}

	transaction, err := proposal.Endorse()
	if err != nil {
		return nil, nil, err
	}

	result, err := transaction.Result()
	if err != nil {
		return nil, nil, err
	}

	commit, err := transaction.Submit()
	if err != nil {
		return result, nil, err
	}

	return result, commit, nil
}

// NewProposal creates a proposal that can be sent to peers for endorsement,
// or exported for offline signing.
func (c *Contract) NewProposal(transactionName string, options ...ProposalOption) (*Proposal, error) {
	if transactionName == "" {
		return nil, errors.WithMessage(ErrInvalidArgument, "a transaction name is required")
	}

	builder := &proposalBuilder{
		contract:        c,
		transactionName: c.qualifiedTransactionName(transactionName),
	}

	for _, option := range options {
		if err := option(builder); err != nil {
			return nil, err
		}
	}

	return builder.build()
}

func (c *Contract) qualifiedTransactionName(name string) string {
	if c.contractName != "" {
		return c.contractName + ":" + name
	}
	return name
}
