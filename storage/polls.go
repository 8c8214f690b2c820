package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type PollStorage interface {
	Create(ctx context.Context, poll *Poll) error
	Get(ctx context.Context, id string) (*Poll, error)
	// FindActive returns the single ACTIVE poll, or nil when there is none.
	FindActive(ctx context.Context) (*Poll, error)
	// FindEnded returns ENDED polls, most recently ended first.
	FindEnded(ctx context.Context, limit int) ([]*Poll, error)
	Update(ctx context.Context, poll *Poll) error
	// IncrementVote bumps the vote count of the option at optionIndex.
	IncrementVote(ctx context.Context, pollID string, optionIndex int) error
}

type DynamoPollStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoPollStorage) Create(ctx context.Context, poll *Poll) error {
	item, err := attributevalue.MarshalMap(poll)
	if err != nil {
		logging.Log.Errorf("POLL: failed to marshal poll: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		logging.Log.Errorf("POLL: failed to create poll: %v", err)
		return err
	}
	return nil
}

func (s *DynamoPollStorage) Get(ctx context.Context, id string) (*Poll, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		logging.Log.Errorf("POLL: failed to get poll %s: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var poll Poll
	if err := attributevalue.UnmarshalMap(out.Item, &poll); err != nil {
		logging.Log.Errorf("POLL: failed to unmarshal poll %s: %v", id, err)
		return nil, err
	}
	return &poll, nil
}

func (s *DynamoPollStorage) FindActive(ctx context.Context) (*Poll, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("#st = :active"),
		ExpressionAttributeNames: map[string]string{
			"#st": "Status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: string(PollStatusActive)},
		},
	})
	if err != nil {
		logging.Log.Errorf("POLL: scan for active poll failed: %v", err)
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var polls []*Poll
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &polls); err != nil {
		logging.Log.Errorf("POLL: failed to unmarshal active poll: %v", err)
		return nil, err
	}
	return polls[0], nil
}

func (s *DynamoPollStorage) FindEnded(ctx context.Context, limit int) ([]*Poll, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("#st = :ended"),
		ExpressionAttributeNames: map[string]string{
			"#st": "Status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ended": &types.AttributeValueMemberS{Value: string(PollStatusEnded)},
		},
	})
	if err != nil {
		logging.Log.Errorf("POLL: scan for ended polls failed: %v", err)
		return nil, err
	}

	var polls []*Poll
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &polls); err != nil {
		logging.Log.Errorf("POLL: failed to unmarshal ended polls: %v", err)
		return nil, err
	}

	sort.Slice(polls, func(i, j int) bool {
		if polls[i].EndedAt == nil || polls[j].EndedAt == nil {
			return polls[i].EndedAt != nil
		}
		return polls[i].EndedAt.After(*polls[j].EndedAt)
	})
	if limit > 0 && len(polls) > limit {
		polls = polls[:limit]
	}
	return polls, nil
}

func (s *DynamoPollStorage) Update(ctx context.Context, poll *Poll) error {
	item, err := attributevalue.MarshalMap(poll)
	if err != nil {
		logging.Log.Errorf("POLL: failed to marshal poll for update: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("POLL: failed to update poll %s: %v", poll.ID, err)
		return err
	}
	return nil
}

func (s *DynamoPollStorage) IncrementVote(ctx context.Context, pollID string, optionIndex int) error {
	expr := fmt.Sprintf("SET Options[%d].VoteCount = Options[%d].VoteCount + :one", optionIndex, optionIndex)
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pollID},
		},
		UpdateExpression: aws.String(expr),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		logging.Log.Errorf("POLL: failed to increment vote for poll %s option %d: %v", pollID, optionIndex, err)
		return err
	}
	return nil
}
