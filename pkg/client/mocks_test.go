/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/cyanlink/fabric-gateway/internal/protoutil"
	"github.com/cyanlink/fabric-gateway/pkg/identity"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

// mockGatewayClient implements gateway.GatewayClient with overridable
// function fields. Calls to unset functions fail the stage.
type mockGatewayClient struct {
	evaluate        func(ctx context.Context, in *gateway.EvaluateRequest) (*gateway.EvaluateResponse, error)
	endorse         func(ctx context.Context, in *gateway.EndorseRequest) (*gateway.EndorseResponse, error)
	submit          func(ctx context.Context, in *gateway.SubmitRequest) (*gateway.SubmitResponse, error)
	commitStatus    func(ctx context.Context, in *gateway.SignedCommitStatusRequest) (*gateway.CommitStatusResponse, error)
	chaincodeEvents func(ctx context.Context, in *gateway.SignedChaincodeEventsRequest) (gateway.Gateway_ChaincodeEventsClient, error)

	commitStatusCallCount int
}

func (m *mockGatewayClient) Evaluate(ctx context.Context, in *gateway.EvaluateRequest, _ ...grpc.CallOption) (*gateway.EvaluateResponse, error) {
	if m.evaluate == nil {
		return nil, errors.New("evaluate not implemented")
	}
	return m.evaluate(ctx, in)
}

func (m *mockGatewayClient) Endorse(ctx context.Context, in *gateway.EndorseRequest, _ ...grpc.CallOption) (*gateway.EndorseResponse, error) {
	if m.endorse == nil {
		return nil, errors.New("endorse not implemented")
	}
	return m.endorse(ctx, in)
}

func (m *mockGatewayClient) Submit(ctx context.Context, in *gateway.SubmitRequest, _ ...grpc.CallOption) (*gateway.SubmitResponse, error) {
	if m.submit == nil {
		return nil, errors.New("submit not implemented")
	}
	return m.submit(ctx, in)
}

func (m *mockGatewayClient) CommitStatus(ctx context.Context, in *gateway.SignedCommitStatusRequest, _ ...grpc.CallOption) (*gateway.CommitStatusResponse, error) {
	m.commitStatusCallCount++
	if m.commitStatus == nil {
		return nil, errors.New("commit status not implemented")
	}
	return m.commitStatus(ctx, in)
}

func (m *mockGatewayClient) ChaincodeEvents(ctx context.Context, in *gateway.SignedChaincodeEventsRequest, _ ...grpc.CallOption) (gateway.Gateway_ChaincodeEventsClient, error) {
	if m.chaincodeEvents == nil {
		return nil, errors.New("chaincode events not implemented")
	}
	return m.chaincodeEvents(ctx, in)
}

// mockChaincodeEventsClient replays a fixed sequence of responses then blocks
// until the stream context is cancelled.
type mockChaincodeEventsClient struct {
	grpc.ClientStream
	ctx       context.Context
	responses []*gateway.ChaincodeEventsResponse
	next      int
}

func (m *mockChaincodeEventsClient) Recv() (*gateway.ChaincodeEventsResponse, error) {
	if m.next < len(m.responses) {
		response := m.responses[m.next]
		m.next++
		return response, nil
	}
	<-m.ctx.Done()
	return nil, m.ctx.Err()
}

// mockDeliverClient implements peer.DeliverClient, handing out the same
// mockDeliverStream for each of the three stream variants.
type mockDeliverClient struct {
	stream func(ctx context.Context) *mockDeliverStream
}

func (m *mockDeliverClient) Deliver(ctx context.Context, _ ...grpc.CallOption) (peer.Deliver_DeliverClient, error) {
	return m.stream(ctx), nil
}

func (m *mockDeliverClient) DeliverFiltered(ctx context.Context, _ ...grpc.CallOption) (peer.Deliver_DeliverFilteredClient, error) {
	return m.stream(ctx), nil
}

func (m *mockDeliverClient) DeliverWithPrivateData(ctx context.Context, _ ...grpc.CallOption) (peer.Deliver_DeliverWithPrivateDataClient, error) {
	return m.stream(ctx), nil
}

type mockDeliverStream struct {
	grpc.ClientStream
	ctx       context.Context
	sent      []*common.Envelope
	responses []*peer.DeliverResponse
	next      int
}

func (m *mockDeliverStream) Send(envelope *common.Envelope) error {
	m.sent = append(m.sent, envelope)
	return nil
}

func (m *mockDeliverStream) Recv() (*peer.DeliverResponse, error) {
	if m.next < len(m.responses) {
		response := m.responses[m.next]
		m.next++
		return response, nil
	}
	<-m.ctx.Done()
	return nil, m.ctx.Err()
}

// mockConnection satisfies grpc.ClientConnInterface for tests that replace
// the generated stubs with mocks after connecting.
type mockConnection struct{}

func (*mockConnection) Invoke(context.Context, string, interface{}, interface{}, ...grpc.CallOption) error {
	return errors.New("not implemented")
}

func (*mockConnection) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("not implemented")
}

const testMspID = "Org1MSP"

func newTestCredentials(t *testing.T) (identity.Identity, identity.Sign) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "User1"},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(time.Hour),
	}
	certificateBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	require.NoError(t, err)
	certificate, err := x509.ParseCertificate(certificateBytes)
	require.NoError(t, err)

	id, err := identity.NewX509Identity(testMspID, certificate)
	require.NoError(t, err)
	sign, err := identity.NewPrivateKeySign(privateKey)
	require.NoError(t, err)

	return id, sign
}

// newTestGateway connects a gateway backed by the supplied mock client. The
// default signer records nothing; tests needing to observe signing supply
// their own with WithSign.
func newTestGateway(t *testing.T, mock *mockGatewayClient, options ...ConnectOption) *Gateway {
	id, sign := newTestCredentials(t)

	connectOptions := []ConnectOption{
		WithSign(sign),
		WithClientConnection(&mockConnection{}),
	}
	connectOptions = append(connectOptions, options...)

	gw, err := Connect(id, connectOptions...)
	require.NoError(t, err)

	gw.client.gateway = mock
	return gw
}

// newEndorseResponse assembles a prepared transaction envelope echoing the
// channel and transaction ID from the endorse request, with the supplied
// value as the transaction function result.
func newEndorseResponse(t *testing.T, request *gateway.EndorseRequest, result string) *gateway.EndorseResponse {
	channelHeaderBytes, err := protoutil.Marshal(&common.ChannelHeader{
		Type:      int32(common.HeaderType_ENDORSER_TRANSACTION),
		ChannelId: request.ChannelId,
		TxId:      request.TransactionId,
	})
	require.NoError(t, err)

	chaincodeActionBytes, err := protoutil.Marshal(&peer.ChaincodeAction{
		Response: &peer.Response{
			Status:  200,
			Payload: []byte(result),
		},
	})
	require.NoError(t, err)

	responsePayloadBytes, err := protoutil.Marshal(&peer.ProposalResponsePayload{
		Extension: chaincodeActionBytes,
	})
	require.NoError(t, err)

	actionPayloadBytes, err := protoutil.Marshal(&peer.ChaincodeActionPayload{
		Action: &peer.ChaincodeEndorsedAction{
			ProposalResponsePayload: responsePayloadBytes,
		},
	})
	require.NoError(t, err)

	transactionBytes, err := protoutil.Marshal(&peer.Transaction{
		Actions: []*peer.TransactionAction{
			{Payload: actionPayloadBytes},
		},
	})
	require.NoError(t, err)

	payloadBytes, err := protoutil.Marshal(&common.Payload{
		Header: &common.Header{
			ChannelHeader: channelHeaderBytes,
		},
		Data: transactionBytes,
	})
	require.NoError(t, err)

	return &gateway.EndorseResponse{
		PreparedTransaction: &common.Envelope{
			Payload: payloadBytes,
		},
	}
}

func endorseOK(t *testing.T, result string) func(context.Context, *gateway.EndorseRequest) (*gateway.EndorseResponse, error) {
	return func(_ context.Context, in *gateway.EndorseRequest) (*gateway.EndorseResponse, error) {
		return newEndorseResponse(t, in, result), nil
	}
}

func submitOK() func(context.Context, *gateway.SubmitRequest) (*gateway.SubmitResponse, error) {
	return func(context.Context, *gateway.SubmitRequest) (*gateway.SubmitResponse, error) {
		return &gateway.SubmitResponse{}, nil
	}
}

func commitStatusOK(code peer.TxValidationCode, blockNumber uint64) func(context.Context, *gateway.SignedCommitStatusRequest) (*gateway.CommitStatusResponse, error) {
	return func(context.Context, *gateway.SignedCommitStatusRequest) (*gateway.CommitStatusResponse, error) {
		return &gateway.CommitStatusResponse{
			Result:      code,
			BlockNumber: blockNumber,
		}, nil
	}
}

// drainEvents reads from an event channel until it closes, failing the test
// if closure takes too long.
func drainEvents(t *testing.T, events <-chan *ChaincodeEvent) []*ChaincodeEvent {
	var received []*ChaincodeEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return received
			}
			received = append(received, event)
		case <-timeout:
			require.FailNow(t, "timed out waiting for event channel to close")
			return received
		}
	}
}
