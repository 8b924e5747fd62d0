package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/storage"
	"github.com/streetperformersmap/tips-api/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTipTransaction() *models.Transaction {
	return &models.Transaction{
		PaymentIntentId:  "pi_123",
		PayerId:          "payer-1",
		PerformerId:      "performer-1",
		PerformanceId:    "performance-1",
		PerformanceTitle: "Jazz at the fountain",
		Currency:         "usd",
		Amount:           500,
		ProcessingFee:    45,
		NetAmount:        455,
		PublicMessage:    "great set!",
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			return *in.TableName == "transactions" && *in.ConditionExpression == "attribute_not_exists(payment_intent_id)"
		})).Once().Return(&dynamodb.PutItemOutput{}, nil)

		result, err := store.CreateTransaction(context.Background(), newTipTransaction())

		require.NoError(t, err)
		assert.NotEmpty(t, result.Id)
		assert.Equal(t, models.PENDING, result.Status)
		assert.False(t, result.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Stores Fixed Width Timestamps", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		var item map[string]types.AttributeValue
		mockClient.On("PutItem", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { item = args.Get(1).(*dynamodb.PutItemInput).Item }).
			Once().Return(&dynamodb.PutItemOutput{}, nil)

		result, err := store.CreateTransaction(context.Background(), newTipTransaction())

		require.NoError(t, err)
		createdAt := item["created_at"].(*types.AttributeValueMemberS).Value
		assert.Equal(t, result.CreatedAt.Format(timestampLayout), createdAt)
		assert.Len(t, createdAt, len("2006-01-02T15:04:05.000000000Z"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Keeps Caller Assigned ID", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.PutItemOutput{}, nil)

		tx := newTipTransaction()
		tx.Id = "tx-fixed"
		result, err := store.CreateTransaction(context.Background(), tx)

		require.NoError(t, err)
		assert.Equal(t, "tx-fixed", result.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Missing Payment Intent", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		tx := newTipTransaction()
		tx.PaymentIntentId = ""
		_, err := store.CreateTransaction(context.Background(), tx)

		assert.Error(t, err)
		mockClient.AssertNotCalled(t, "PutItem", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Intent", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.CreateTransaction(context.Background(), newTipTransaction())

		assert.ErrorIs(t, err, storage.ErrDuplicateTransaction)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put failed"))

		_, err := store.CreateTransaction(context.Background(), newTipTransaction())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to put transaction")
		mockClient.AssertExpectations(t)
	})
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

	var stored map[string]types.AttributeValue
	mockClient.On("PutItem", mock.Anything, mock.Anything).Once().Run(func(args mock.Arguments) {
		stored = args.Get(1).(*dynamodb.PutItemInput).Item
	}).Return(&dynamodb.PutItemOutput{}, nil)

	created, err := store.CreateTransaction(context.Background(), newTipTransaction())
	require.NoError(t, err)

	mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: stored}, nil)

	fetched, err := store.GetTransaction(context.Background(), created.PaymentIntentId)
	require.NoError(t, err)

	assert.Equal(t, created.Amount, fetched.Amount)
	assert.Equal(t, created.ProcessingFee, fetched.ProcessingFee)
	assert.Equal(t, created.NetAmount, fetched.NetAmount)
	assert.Equal(t, created.Status, fetched.Status)
	assert.Equal(t, created, fetched)
	mockClient.AssertExpectations(t)
}
