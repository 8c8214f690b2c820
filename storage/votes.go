package storage

import (
	"context"
	"errors"

	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type VoteStorage interface {
	// Create inserts a vote. The (pollID, participantID) pair is unique:
	// a second insert for the same pair fails with ErrItemAlreadyExists.
	Create(ctx context.Context, vote *Vote) error
	Get(ctx context.Context, pollID, participantID string) (*Vote, error)
	CountByPoll(ctx context.Context, pollID string) (int, error)
	Delete(ctx context.Context, pollID, participantID string) error
}

type DynamoVoteStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoVoteStorage) Create(ctx context.Context, vote *Vote) error {
	item, err := attributevalue.MarshalMap(vote)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal vote: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("VOTE: failed to create vote: %v", err)
		return err
	}
	return nil
}

func (s *DynamoVoteStorage) Get(ctx context.Context, pollID, participantID string) (*Vote, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pollID},
			"SK": &types.AttributeValueMemberS{Value: participantID},
		},
	})
	if err != nil {
		logging.Log.Errorf("VOTE: failed to get vote %s/%s: %v", pollID, participantID, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var vote Vote
	if err := attributevalue.UnmarshalMap(out.Item, &vote); err != nil {
		logging.Log.Errorf("VOTE: failed to unmarshal vote %s/%s: %v", pollID, participantID, err)
		return nil, err
	}
	return &vote, nil
}

func (s *DynamoVoteStorage) CountByPoll(ctx context.Context, pollID string) (int, error) {
	out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :poll"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":poll": &types.AttributeValueMemberS{Value: pollID},
		},
		Select: types.SelectCount,
	})
	if err != nil {
		logging.Log.Errorf("VOTE: failed to count votes for poll %s: %v", pollID, err)
		return 0, err
	}
	return int(out.Count), nil
}

func (s *DynamoVoteStorage) Delete(ctx context.Context, pollID, participantID string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pollID},
			"SK": &types.AttributeValueMemberS{Value: participantID},
		},
	})
	if err != nil {
		logging.Log.Errorf("VOTE: failed to delete vote %s/%s: %v", pollID, participantID, err)
		return err
	}
	return nil
}
