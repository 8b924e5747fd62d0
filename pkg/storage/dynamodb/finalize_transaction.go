package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/storage"
)

// FinalizeTransaction moves a pending transaction to a terminal status.
// The status check and the write happen in one conditional update, so when the webhook
// and a manual reconciliation race, exactly one of them applies and the other observes
// storage.ErrTransactionFinalized.
func (s *Store) FinalizeTransaction(ctx context.Context, paymentIntentID string, outcome models.Outcome) (*models.Transaction, error) {
	if !outcome.Status.IsTerminal() {
		return nil, fmt.Errorf("cannot finalize transaction %s with non-terminal status %q", paymentIntentID, outcome.Status)
	}

	now := time.Now().UTC()
	nowAV, err := attributevalue.MarshalWithOptions(now, withTimestamps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for status update: %w", err)
	}

	updateExpr := "SET #status = :final_status, updated_at = :now, reconciled_by = :source"
	values := map[string]types.AttributeValue{
		":final_status":   &types.AttributeValueMemberS{Value: string(outcome.Status)},
		":pending_status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
		":now":            nowAV,
		":source":         &types.AttributeValueMemberS{Value: string(outcome.Source)},
	}
	if outcome.Status == models.COMPLETED {
		updateExpr += ", completed_at = :now"
		if outcome.ChargeId != "" {
			updateExpr += ", charge_id = :charge_id"
			values[":charge_id"] = &types.AttributeValueMemberS{Value: outcome.ChargeId}
		}
	}
	if outcome.FailureReason != "" {
		updateExpr += ", failure_reason = :failure_reason"
		values[":failure_reason"] = &types.AttributeValueMemberS{Value: outcome.FailureReason}
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"payment_intent_id": &types.AttributeValueMemberS{Value: paymentIntentID},
		},
		UpdateExpression:    aws.String(updateExpr),
		ConditionExpression: aws.String("attribute_exists(payment_intent_id) AND #status = :pending_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues:           values,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// The old item is only returned when it exists.
			if len(condCheckFailed.Item) == 0 {
				return nil, fmt.Errorf("transaction for payment intent %s: %w", paymentIntentID, storage.ErrTransactionNotFound)
			}
			return nil, fmt.Errorf("transaction for payment intent %s: %w", paymentIntentID, storage.ErrTransactionFinalized)
		}
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Attributes, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal finalized transaction: %w", err)
	}

	return &tx, nil
}
