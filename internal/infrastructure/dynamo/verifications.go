package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/JHSeo-git/close-mountain-api/internal/domain"
)

// CodeRepo stores one-time verification codes.
// PK: target. Keying by target makes Replace a single atomic PutItem that
// supersedes any previous code for the same target — no read-delete-write
// window between concurrent sends.
type CodeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCodeRepo(client *dynamodb.Client, tableName string) *CodeRepo {
	return &CodeRepo{client: client, tableName: tableName}
}

// Replace persists v, overwriting any existing code record for v.Target.
func (r *CodeRepo) Replace(ctx context.Context, v *domain.VerificationCode) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification code: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Get returns the code record for target, or domain.ErrRecordNotFound.
func (r *CodeRepo) Get(ctx context.Context, target string) (*domain.VerificationCode, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("target", target),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("verification code for %s: %w", target, domain.ErrRecordNotFound)
	}
	var v domain.VerificationCode
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// MarkUsed flips used to true, conditional on the record still being unused.
// A lost race (another request consumed the code first, or the record was
// replaced) surfaces as domain.ErrRecordNotFound so callers treat it exactly
// like a missing code.
func (r *CodeRepo) MarkUsed(ctx context.Context, target, codeID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("target", target),
		UpdateExpression:    aws.String("SET #u = :t"),
		ConditionExpression: aws.String("#u = :f AND code_id = :id"),
		ExpressionAttributeNames: map[string]string{
			"#u": "used",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":  &types.AttributeValueMemberBOOL{Value: true},
			":f":  &types.AttributeValueMemberBOOL{Value: false},
			":id": &types.AttributeValueMemberS{Value: codeID},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("verification code for %s already consumed: %w", target, domain.ErrRecordNotFound)
		}
		return err
	}
	return nil
}

// Delete removes the code record for target. Missing records are not an error.
func (r *CodeRepo) Delete(ctx context.Context, target string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("target", target),
	})
	return err
}
