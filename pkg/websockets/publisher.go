package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"go.uber.org/zap"
)

// PostToConnectionAPI is the part of the API Gateway management client the publisher needs.
type PostToConnectionAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// GatewayPublisher pushes messages through an API Gateway WebSocket API.
type GatewayPublisher struct {
	conns  ConnectionManager
	client PostToConnectionAPI
	log    *zap.Logger
}

// NewGatewayPublisher creates a publisher posting to the given WebSocket API endpoint.
func NewGatewayPublisher(cfg aws.Config, conns ConnectionManager, apiEndpoint string, log *zap.Logger) *GatewayPublisher {
	client := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})
	return NewGatewayPublisherWithClient(client, conns, log)
}

// NewGatewayPublisherWithClient creates a publisher around an existing client.
func NewGatewayPublisherWithClient(client PostToConnectionAPI, conns ConnectionManager, log *zap.Logger) *GatewayPublisher {
	return &GatewayPublisher{
		conns:  conns,
		client: client,
		log:    log.With(zap.String("component", "websocket_publisher")),
	}
}

// Make sure we conform to the interface
var _ Publisher = (*GatewayPublisher)(nil)

// PublishToUser sends a message to every open connection of a user. Stale connections are
// removed. It fails only if the message could not be delivered to any live connection.
func (p *GatewayPublisher) PublishToUser(ctx context.Context, userID string, message Message) error {
	connectionIDs, err := p.conns.GetConnectionsByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get connections for user %s: %w", userID, err)
	}
	if len(connectionIDs) == 0 {
		p.log.Debug("User has no open connections", zap.String("user_id", userID))
		return nil
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	var postErrs []error
	delivered := 0
	for _, connectionID := range connectionIDs {
		_, err := p.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})
		if err == nil {
			delivered++
			continue
		}

		var goneErr *apigwtypes.GoneException
		if errors.As(err, &goneErr) {
			p.log.Info("Stale connection found, deleting", zap.String("connection_id", connectionID))
			if err := p.conns.RemoveConnection(ctx, connectionID); err != nil {
				p.log.Error("Failed to delete stale connection", zap.String("connection_id", connectionID), zap.Error(err))
			}
			continue
		}

		p.log.Error("Failed to post to connection", zap.String("connection_id", connectionID), zap.Error(err))
		postErrs = append(postErrs, fmt.Errorf("connection %s: %w", connectionID, err))
	}

	if delivered == 0 && len(postErrs) > 0 {
		return fmt.Errorf("failed to deliver message to user %s: %w", userID, errors.Join(postErrs...))
	}
	return nil
}
