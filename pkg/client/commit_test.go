/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"testing"

	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/cyanlink/fabric-gateway/pkg/hash"
	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newSubmittedCommit(t *testing.T, mock *mockGatewayClient, options ...ConnectOption) (*Gateway, *Commit) {
	if mock.submit == nil {
		mock.submit = submitOK()
	}
	gw, transaction := newEndorsedTransaction(t, mock, options...)

	commit, err := transaction.Submit()
	require.NoError(t, err)

	return gw, commit
}

func TestCommitStatus(t *testing.T) {
	t.Run("reports a valid transaction as successful", func(t *testing.T) {
		mock := &mockGatewayClient{commitStatus: commitStatusOK(peer.TxValidationCode_VALID, 1)}
		_, commit := newSubmittedCommit(t, mock)

		status, err := commit.Status()
		require.NoError(t, err)

		require.True(t, status.Successful)
		require.Equal(t, peer.TxValidationCode_VALID, status.Code)
		require.Equal(t, uint64(1), status.BlockNumber)
		require.Equal(t, commit.TransactionID(), status.TransactionID)
	})

	t.Run("reports an invalid transaction without error", func(t *testing.T) {
		mock := &mockGatewayClient{commitStatus: commitStatusOK(peer.TxValidationCode_MVCC_READ_CONFLICT, 1)}
		_, commit := newSubmittedCommit(t, mock)

		status, err := commit.Status()
		require.NoError(t, err)

		require.False(t, status.Successful)
		require.Equal(t, peer.TxValidationCode_MVCC_READ_CONFLICT, status.Code)
	})

	t.Run("resolves the status once and caches the terminal value", func(t *testing.T) {
		mock := &mockGatewayClient{commitStatus: commitStatusOK(peer.TxValidationCode_VALID, 1)}
		_, commit := newSubmittedCommit(t, mock)

		first, err := commit.Status()
		require.NoError(t, err)
		second, err := commit.Status()
		require.NoError(t, err)

		require.Same(t, first, second)
		require.Equal(t, 1, mock.commitStatusCallCount)
	})

	t.Run("signs the status request digest", func(t *testing.T) {
		var request *gateway.SignedCommitStatusRequest
		mock := &mockGatewayClient{
			commitStatus: func(_ context.Context, in *gateway.SignedCommitStatusRequest) (*gateway.CommitStatusResponse, error) {
				request = in
				return &gateway.CommitStatusResponse{Result: peer.TxValidationCode_VALID}, nil
			},
		}
		var signedDigest []byte
		sign := func(digest []byte) ([]byte, error) {
			signedDigest = digest
			return []byte("STATUS_SIGNATURE"), nil
		}
		_, commit := newSubmittedCommit(t, mock, WithSign(sign))

		_, err := commit.Status()
		require.NoError(t, err)

		require.Equal(t, hash.SHA256(request.Request), signedDigest)
		require.Equal(t, []byte("STATUS_SIGNATURE"), request.Signature)
	})

	t.Run("embeds channel, transaction ID and creator in the request", func(t *testing.T) {
		var request *gateway.SignedCommitStatusRequest
		mock := &mockGatewayClient{
			commitStatus: func(_ context.Context, in *gateway.SignedCommitStatusRequest) (*gateway.CommitStatusResponse, error) {
				request = in
				return &gateway.CommitStatusResponse{Result: peer.TxValidationCode_VALID}, nil
			},
		}
		gw, commit := newSubmittedCommit(t, mock)

		_, err := commit.Status()
		require.NoError(t, err)

		statusRequest, err := protoutil.UnmarshalCommitStatusRequest(request.Request)
		require.NoError(t, err)
		require.Equal(t, "network", statusRequest.ChannelId)
		require.Equal(t, commit.TransactionID(), statusRequest.TransactionId)
		require.Equal(t, gw.signingID.Creator(), statusRequest.Identity)
	})

	t.Run("wraps a gRPC failure with the transaction ID", func(t *testing.T) {
		mock := &mockGatewayClient{
			commitStatus: func(context.Context, *gateway.SignedCommitStatusRequest) (*gateway.CommitStatusResponse, error) {
				return nil, status.Error(codes.Unavailable, "no committer")
			},
		}
		_, commit := newSubmittedCommit(t, mock)

		_, err := commit.Status()

		var statusErr *CommitStatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, commit.TransactionID(), statusErr.TransactionID)
		require.Equal(t, codes.Unavailable, statusErr.Code())
	})
}

func TestSubmitTransaction(t *testing.T) {
	t.Run("returns the result of a committed transaction", func(t *testing.T) {
		mock := &mockGatewayClient{
			endorse:      endorseOK(t, "TRANSACTION_RESULT"),
			submit:       submitOK(),
			commitStatus: commitStatusOK(peer.TxValidationCode_VALID, 1),
		}
		contract := newTestContract(t, mock)

		result, err := contract.SubmitTransaction("TRANSACTION_NAME")
		require.NoError(t, err)
		require.Equal(t, []byte("TRANSACTION_RESULT"), result)
	})

	t.Run("raises a CommitError for an invalid transaction", func(t *testing.T) {
		mock := &mockGatewayClient{
			endorse:      endorseOK(t, "TRANSACTION_RESULT"),
			submit:       submitOK(),
			commitStatus: commitStatusOK(peer.TxValidationCode_MVCC_READ_CONFLICT, 1),
		}
		contract := newTestContract(t, mock)

		_, err := contract.SubmitTransaction("TRANSACTION_NAME")

		var commitErr *CommitError
		require.ErrorAs(t, err, &commitErr)
		require.Equal(t, peer.TxValidationCode_MVCC_READ_CONFLICT, commitErr.Code)
		require.Equal(t, uint64(1), commitErr.BlockNumber)
	})

	t.Run("returns the result before commit with SubmitAsync", func(t *testing.T) {
		mock := &mockGatewayClient{
			endorse:      endorseOK(t, "TRANSACTION_RESULT"),
			submit:       submitOK(),
			commitStatus: commitStatusOK(peer.TxValidationCode_VALID, 1),
		}
		contract := newTestContract(t, mock)

		result, commit, err := contract.SubmitAsync("TRANSACTION_NAME")
		require.NoError(t, err)
		require.Equal(t, []byte("TRANSACTION_RESULT"), result)
		require.Equal(t, 0, mock.commitStatusCallCount)

		successful, err := commit.Successful()
		require.NoError(t, err)
		require.True(t, successful)
	})
}

func TestOfflineSignCommit(t *testing.T) {
	t.Run("preserves transaction ID and digest", func(t *testing.T) {
		gw, commit := newSubmittedCommit(t, &mockGatewayClient{})

		commitBytes, err := commit.Bytes()
		require.NoError(t, err)

		signed, err := gw.NewSignedCommit(commitBytes, []byte("SIGNATURE"))
		require.NoError(t, err)

		require.Equal(t, commit.TransactionID(), signed.TransactionID())
		require.Equal(t, commit.Digest(), signed.Digest())
	})

	t.Run("uses the supplied signature without invoking the signer", func(t *testing.T) {
		var request *gateway.SignedCommitStatusRequest
		mock := &mockGatewayClient{
			commitStatus: func(_ context.Context, in *gateway.SignedCommitStatusRequest) (*gateway.CommitStatusResponse, error) {
				request = in
				return &gateway.CommitStatusResponse{Result: peer.TxValidationCode_VALID}, nil
			},
		}
		gw, commit := newSubmittedCommit(t, mock)

		commitBytes, err := commit.Bytes()
		require.NoError(t, err)

		signed, err := gw.NewSignedCommit(commitBytes, []byte("SIGNATURE"))
		require.NoError(t, err)
		_, err = signed.Status()
		require.NoError(t, err)

		require.Equal(t, []byte("SIGNATURE"), request.Signature)
	})
}
