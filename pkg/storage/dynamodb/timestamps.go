package dynamodb

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// timestampLayout keeps every stored timestamp the same width so that sort keys
// compare in time order byte by byte.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTimestamp(t time.Time) (types.AttributeValue, error) {
	return &types.AttributeValueMemberS{Value: t.UTC().Format(timestampLayout)}, nil
}

func withTimestamps(o *attributevalue.EncoderOptions) {
	o.EncodeTime = encodeTimestamp
}
