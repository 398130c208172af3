/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protoutil

import (
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
)

// GetPayloads gets the underlying payload objects in a TransactionAction,
// assuming the action is of type ENDORSER_TRANSACTION.
func GetPayloads(txAction *peer.TransactionAction) (*peer.ChaincodeActionPayload, *peer.ChaincodeAction, error) {
	actionPayload, err := UnmarshalChaincodeActionPayload(txAction.Payload)
	if err != nil {
		return nil, nil, err
	}

	if actionPayload.Action == nil || actionPayload.Action.ProposalResponsePayload == nil {
		return nil, nil, errors.New("no payload in ChaincodeActionPayload")
	}

	responsePayload, err := UnmarshalProposalResponsePayload(actionPayload.Action.ProposalResponsePayload)
	if err != nil {
		return nil, nil, err
	}

	if responsePayload.Extension == nil {
		return nil, nil, errors.New("response payload is missing extension")
	}

	chaincodeAction, err := UnmarshalChaincodeAction(responsePayload.Extension)
	if err != nil {
		return actionPayload, nil, err
	}

	return actionPayload, chaincodeAction, nil
}

// TransactionResponse extracts the chaincode response from an endorsed
// transaction envelope.
func TransactionResponse(envelope *common.Envelope) (*peer.Response, error) {
	payload, err := UnmarshalPayload(envelope.Payload)
	if err != nil {
		return nil, err
	}

	transaction, err := UnmarshalTransaction(payload.Data)
	if err != nil {
		return nil, err
	}

	if len(transaction.Actions) == 0 {
		return nil, errors.New("transaction contains no actions")
	}

	_, chaincodeAction, err := GetPayloads(transaction.Actions[0])
	if err != nil {
		return nil, err
	}

	if chaincodeAction.Response == nil {
		return nil, errors.New("chaincode action is missing a response")
	}

	return chaincodeAction.Response, nil
}

// TransactionID reads the transaction ID from the channel header carried in an
// envelope payload.
func TransactionID(envelope *common.Envelope) (string, error) {
	payload, err := UnmarshalPayload(envelope.Payload)
	if err != nil {
		return "", err
	}

	if payload.Header == nil {
		return "", errors.New("envelope payload is missing a header")
	}

	channelHeader, err := UnmarshalChannelHeader(payload.Header.ChannelHeader)
	if err != nil {
		return "", err
	}

	return channelHeader.TxId, nil
}
