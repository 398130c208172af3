/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protoutil

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/require"
)

func sha256Hash(message []byte) []byte {
	digest := sha256.Sum256(message)
	return digest[:]
}

func TestCreateNonce(t *testing.T) {
	first, err := CreateNonce()
	require.NoError(t, err)
	require.Len(t, first, NonceLength)

	second, err := CreateNonce()
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestComputeTxID(t *testing.T) {
	nonce := []byte("nonce")
	creator := []byte("creator")

	txID := ComputeTxID(sha256Hash, nonce, creator)

	expected := sha256.Sum256([]byte("noncecreator"))
	require.Equal(t, hex.EncodeToString(expected[:]), txID)

	require.Equal(t, txID, ComputeTxID(sha256Hash, nonce, creator), "same inputs must yield the same ID")
}

func newEndorsedEnvelope(t *testing.T, txID string, result []byte) *common.Envelope {
	channelHeaderBytes, err := Marshal(&common.ChannelHeader{
		ChannelId: "test-channel",
		TxId:      txID,
	})
	require.NoError(t, err)

	chaincodeActionBytes, err := Marshal(&peer.ChaincodeAction{
		Response: &peer.Response{Status: 200, Payload: result},
	})
	require.NoError(t, err)

	responsePayloadBytes, err := Marshal(&peer.ProposalResponsePayload{
		Extension: chaincodeActionBytes,
	})
	require.NoError(t, err)

	actionPayloadBytes, err := Marshal(&peer.ChaincodeActionPayload{
		Action: &peer.ChaincodeEndorsedAction{
			ProposalResponsePayload: responsePayloadBytes,
		},
	})
	require.NoError(t, err)

	transactionBytes, err := Marshal(&peer.Transaction{
		Actions: []*peer.TransactionAction{{Payload: actionPayloadBytes}},
	})
	require.NoError(t, err)

	payloadBytes, err := Marshal(&common.Payload{
		Header: &common.Header{ChannelHeader: channelHeaderBytes},
		Data:   transactionBytes,
	})
	require.NoError(t, err)

	return &common.Envelope{Payload: payloadBytes}
}

func TestTransactionResponse(t *testing.T) {
	envelope := newEndorsedEnvelope(t, "txid", []byte("RESULT"))

	response, err := TransactionResponse(envelope)
	require.NoError(t, err)
	require.Equal(t, []byte("RESULT"), response.Payload)
}

func TestTransactionID(t *testing.T) {
	envelope := newEndorsedEnvelope(t, "my-transaction-id", nil)

	txID, err := TransactionID(envelope)
	require.NoError(t, err)
	require.Equal(t, "my-transaction-id", txID)
}

func TestUnmarshalErrors(t *testing.T) {
	garbage := []byte{0xff, 0xff, 0xff}

	_, err := UnmarshalPayload(garbage)
	require.ErrorContains(t, err, "error unmarshaling Payload")

	_, err = UnmarshalChannelHeader(garbage)
	require.ErrorContains(t, err, "error unmarshaling ChannelHeader")
}
