package notify

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/websockets"
	"go.uber.org/zap"
)

// Consumer drains the notification queue and pushes each message to the recipient's sockets.
type Consumer struct {
	publisher websockets.Publisher
	log       *zap.Logger
}

// NewConsumer creates a queue consumer publishing through the given publisher.
func NewConsumer(publisher websockets.Publisher, log *zap.Logger) *Consumer {
	return &Consumer{
		publisher: publisher,
		log:       log.With(zap.String("component", "notification_consumer")),
	}
}

// HandleSQSEvent publishes every record in the batch. Records that fail to publish are
// reported back so SQS redelivers only those. Undecodable records are dropped.
func (c *Consumer) HandleSQSEvent(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, record := range event.Records {
		var n models.Notification
		if err := json.Unmarshal([]byte(record.Body), &n); err != nil {
			c.log.Error("Dropping undecodable notification",
				zap.String("message_id", record.MessageId),
				zap.Error(err),
			)
			continue
		}
		if n.Recipient == "" {
			c.log.Warn("Dropping notification without recipient", zap.String("message_id", record.MessageId))
			continue
		}

		if err := c.publisher.PublishToUser(ctx, n.Recipient, websockets.FromNotification(n)); err != nil {
			c.log.Error("Failed to publish notification",
				zap.String("message_id", record.MessageId),
				zap.String("recipient", n.Recipient),
				zap.Error(err),
			)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
			continue
		}

		c.log.Debug("Notification delivered",
			zap.String("message_id", record.MessageId),
			zap.String("type", string(n.Type)),
		)
	}

	return resp, nil
}
