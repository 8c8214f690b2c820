package storage

import (
	"context"
	"sort"

	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ParticipantStorage interface {
	Get(ctx context.Context, id string) (*Participant, error)
	// Put creates or replaces a participant record.
	Put(ctx context.Context, participant *Participant) error
	// GetByConnection looks a participant up by its bound connection id,
	// or returns nil when no participant holds that connection.
	GetByConnection(ctx context.Context, connectionID string) (*Participant, error)
	// GetActive returns active participants, most recently joined first.
	GetActive(ctx context.Context) ([]*Participant, error)
}

type DynamoParticipantStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoParticipantStorage) Get(ctx context.Context, id string) (*Participant, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to get participant %s: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var participant Participant
	if err := attributevalue.UnmarshalMap(out.Item, &participant); err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to unmarshal participant %s: %v", id, err)
		return nil, err
	}
	return &participant, nil
}

func (s *DynamoParticipantStorage) Put(ctx context.Context, participant *Participant) error {
	item, err := attributevalue.MarshalMap(participant)
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to marshal participant: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to put participant %s: %v", participant.ID, err)
		return err
	}
	return nil
}

func (s *DynamoParticipantStorage) GetByConnection(ctx context.Context, connectionID string) (*Participant, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("ConnectionID = :conn"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":conn": &types.AttributeValueMemberS{Value: connectionID},
		},
	})
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: scan by connection failed: %v", err)
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var participants []*Participant
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &participants); err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to unmarshal participant by connection: %v", err)
		return nil, err
	}
	return participants[0], nil
}

func (s *DynamoParticipantStorage) GetActive(ctx context.Context) ([]*Participant, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("IsActive = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: scan for active participants failed: %v", err)
		return nil, err
	}

	var participants []*Participant
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &participants); err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to unmarshal active participants: %v", err)
		return nil, err
	}

	sort.Slice(participants, func(i, j int) bool {
		return participants[i].JoinedAt.After(participants[j].JoinedAt)
	})
	return participants, nil
}
