/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"fmt"

	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrInvalidArgument is returned when a request cannot be built from the
	// supplied values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported is returned when an operation requires a capability, such
	// as a signing implementation, that has not been configured.
	ErrUnsupported = errors.New("unsupported operation")
)

// TransactionError represents an error invoking a transaction. The gRPC
// status is preserved so callers can inspect the code and any error details
// returned by the Gateway.
type TransactionError struct {
	// TransactionID of the transaction that produced this error.
	TransactionID string

	grpcStatus *status.Status
}

func newTransactionError(err error, transactionID string) *TransactionError {
	return &TransactionError{
		TransactionID: transactionID,
		grpcStatus:    status.Convert(err),
	}
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s: %s", e.TransactionID, e.grpcStatus.Err())
}

// Code of the gRPC status associated with this error.
func (e *TransactionError) Code() codes.Code {
	return e.grpcStatus.Code()
}

// GRPCStatus associated with this error, allowing the error to be recognized
// by status.FromError.
func (e *TransactionError) GRPCStatus() *status.Status {
	return e.grpcStatus
}

// Details of the error returned by individual network endpoints, where the
// Gateway attached them to the gRPC status.
func (e *TransactionError) Details() []*gateway.ErrorDetail {
	var details []*gateway.ErrorDetail
	for _, detail := range e.grpcStatus.Details() {
		if errorDetail, ok := detail.(*gateway.ErrorDetail); ok {
			details = append(details, errorDetail)
		}
	}
	return details
}

// Unwrap the underlying gRPC status error.
func (e *TransactionError) Unwrap() error {
	return e.grpcStatus.Err()
}

// EndorseError represents a failure endorsing a transaction proposal.
type EndorseError struct {
	*TransactionError
}

// SubmitError represents a failure submitting an endorsed transaction to the
// orderer.
type SubmitError struct {
	*TransactionError
}

// CommitStatusError represents a failure obtaining the commit status of a
// transaction.
type CommitStatusError struct {
	*TransactionError
}

// CommitError represents a transaction that was successfully submitted but
// failed validation at commit time.
type CommitError struct {
	// TransactionID of the transaction that failed to commit.
	TransactionID string
	// Code is the validation code recorded for the transaction.
	Code peer.TxValidationCode
	// BlockNumber of the block containing the transaction.
	BlockNumber uint64
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("transaction %s failed to commit with status (%d) %s",
		e.TransactionID, int32(e.Code), peer.TxValidationCode_name[int32(e.Code)])
}

func newCommitError(status *Status) *CommitError {
	return &CommitError{
		TransactionID: status.TransactionID,
		Code:          status.Code,
		BlockNumber:   status.BlockNumber,
	}
}
