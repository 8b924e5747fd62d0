package websockets_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/websockets"
	"github.com/streetperformersmap/tips-api/pkg/websockets/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tipMessage() websockets.Message {
	return websockets.FromNotification(models.Notification{
		Type:      models.NotificationTipReceived,
		Recipient: "performer-1",
		Payload:   models.TipPayload{TransactionID: "tx-1", Amount: 500, Currency: "usd", PerformanceTitle: "Jazz"},
	})
}

func postTo(connectionID string) interface{} {
	return mock.MatchedBy(func(in *apigatewaymanagementapi.PostToConnectionInput) bool {
		return *in.ConnectionId == connectionID
	})
}

func TestPublishToUser(t *testing.T) {
	t.Run("Posts To Every Connection", func(t *testing.T) {
		conns := mocks.NewConnectionManager(t)
		client := mocks.NewPostToConnectionAPI(t)
		publisher := websockets.NewGatewayPublisherWithClient(client, conns, zap.NewNop())

		conns.On("GetConnectionsByUserID", mock.Anything, "performer-1").Return([]string{"conn-1", "conn-2"}, nil).Once()
		var body []byte
		client.On("PostToConnection", mock.Anything, postTo("conn-1")).
			Run(func(args mock.Arguments) { body = args.Get(1).(*apigatewaymanagementapi.PostToConnectionInput).Data }).
			Return(&apigatewaymanagementapi.PostToConnectionOutput{}, nil).Once()
		client.On("PostToConnection", mock.Anything, postTo("conn-2")).
			Return(&apigatewaymanagementapi.PostToConnectionOutput{}, nil).Once()

		err := publisher.PublishToUser(context.Background(), "performer-1", tipMessage())

		require.NoError(t, err)
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &decoded))
		assert.Equal(t, "tipReceived", decoded["type"])
		assert.Equal(t, "tx-1", decoded["payload"].(map[string]interface{})["transactionId"])
	})

	t.Run("Removes Stale Connection", func(t *testing.T) {
		conns := mocks.NewConnectionManager(t)
		client := mocks.NewPostToConnectionAPI(t)
		publisher := websockets.NewGatewayPublisherWithClient(client, conns, zap.NewNop())

		conns.On("GetConnectionsByUserID", mock.Anything, "performer-1").Return([]string{"conn-gone"}, nil).Once()
		client.On("PostToConnection", mock.Anything, postTo("conn-gone")).
			Return(nil, &apigwtypes.GoneException{}).Once()
		conns.On("RemoveConnection", mock.Anything, "conn-gone").Return(nil).Once()

		assert.NoError(t, publisher.PublishToUser(context.Background(), "performer-1", tipMessage()))
	})

	t.Run("No Connections", func(t *testing.T) {
		conns := mocks.NewConnectionManager(t)
		client := mocks.NewPostToConnectionAPI(t)
		publisher := websockets.NewGatewayPublisherWithClient(client, conns, zap.NewNop())

		conns.On("GetConnectionsByUserID", mock.Anything, "performer-1").Return([]string{}, nil).Once()

		assert.NoError(t, publisher.PublishToUser(context.Background(), "performer-1", tipMessage()))
	})

	t.Run("All Posts Fail", func(t *testing.T) {
		conns := mocks.NewConnectionManager(t)
		client := mocks.NewPostToConnectionAPI(t)
		publisher := websockets.NewGatewayPublisherWithClient(client, conns, zap.NewNop())

		conns.On("GetConnectionsByUserID", mock.Anything, "performer-1").Return([]string{"conn-1"}, nil).Once()
		client.On("PostToConnection", mock.Anything, postTo("conn-1")).Return(nil, errors.New("throttled")).Once()

		assert.Error(t, publisher.PublishToUser(context.Background(), "performer-1", tipMessage()))
	})

	t.Run("Connection Lookup Fails", func(t *testing.T) {
		conns := mocks.NewConnectionManager(t)
		client := mocks.NewPostToConnectionAPI(t)
		publisher := websockets.NewGatewayPublisherWithClient(client, conns, zap.NewNop())

		conns.On("GetConnectionsByUserID", mock.Anything, "performer-1").Return(nil, errors.New("throttled")).Once()

		assert.Error(t, publisher.PublishToUser(context.Background(), "performer-1", tipMessage()))
	})
}

func TestFromNotification(t *testing.T) {
	msg := websockets.FromNotification(models.Notification{
		Type:    models.NotificationTipSent,
		Payload: models.TipPayload{TransactionID: "tx-1", Amount: 500, Message: "thanks"},
	})

	assert.Equal(t, websockets.MessageTypeTipSent, msg.Type)
	assert.Equal(t, websockets.TipPayload{TransactionID: "tx-1", Amount: 500, Message: "thanks"}, msg.Payload)
}
