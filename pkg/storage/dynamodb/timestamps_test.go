package dynamodb

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTimestamp(t *testing.T) {
	t.Run("Sorts Within A Second", func(t *testing.T) {
		base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		earlier, err := encodeTimestamp(base.Add(120 * time.Millisecond))
		require.NoError(t, err)
		later, err := encodeTimestamp(base.Add(123 * time.Millisecond))
		require.NoError(t, err)

		e := earlier.(*types.AttributeValueMemberS).Value
		l := later.(*types.AttributeValueMemberS).Value
		assert.Equal(t, "2026-01-02T00:00:00.120000000Z", e)
		assert.Equal(t, len(e), len(l))
		assert.Less(t, e, l)
	})

	t.Run("Normalizes To UTC", func(t *testing.T) {
		local := time.Date(2026, 1, 2, 3, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60))
		av, err := encodeTimestamp(local)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-02T00:00:00.000000000Z", av.(*types.AttributeValueMemberS).Value)
	})

	t.Run("Round Trips Through Transaction", func(t *testing.T) {
		created := time.Date(2026, 1, 2, 0, 0, 0, 5000, time.UTC)
		tx := models.Transaction{PaymentIntentId: "pi_123", CreatedAt: created, UpdatedAt: created}

		item, err := attributevalue.MarshalMapWithOptions(tx, withTimestamps)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-02T00:00:00.000005000Z", item["created_at"].(*types.AttributeValueMemberS).Value)

		var decoded models.Transaction
		require.NoError(t, attributevalue.UnmarshalMap(item, &decoded))
		assert.True(t, created.Equal(decoded.CreatedAt))
	})
}
