package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/notify/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func tipReceived() models.Notification {
	return models.Notification{
		Type:      models.NotificationTipReceived,
		Recipient: "performer-1",
		Payload: models.TipPayload{
			TransactionID:    "tx-1",
			Amount:           500,
			Currency:         "usd",
			PerformanceTitle: "Jazz at the fountain",
			Message:          "great set!",
		},
	}
}

func TestSQSNotifier(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := mocks.NewSQSAPI(t)
		notifier := NewSQSNotifier(client, "https://sqs.local/notifications")

		var sent *sqs.SendMessageInput
		client.On("SendMessage", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*sqs.SendMessageInput) }).
			Return(&sqs.SendMessageOutput{}, nil).Once()

		err := notifier.Notify(context.Background(), tipReceived())

		require.NoError(t, err)
		assert.Equal(t, "https://sqs.local/notifications", *sent.QueueUrl)
		assert.Equal(t, "tip_received", *sent.MessageAttributes["type"].StringValue)

		var decoded models.Notification
		require.NoError(t, json.Unmarshal([]byte(*sent.MessageBody), &decoded))
		assert.Equal(t, tipReceived(), decoded)
	})

	t.Run("Send Error", func(t *testing.T) {
		client := mocks.NewSQSAPI(t)
		notifier := NewSQSNotifier(client, "https://sqs.local/notifications")

		client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("access denied")).Once()

		err := notifier.Notify(context.Background(), tipReceived())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send notification to SQS")
	})
}
