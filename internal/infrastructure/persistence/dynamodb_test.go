package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
)

// mockDynamoDB keeps items per table; only the calls the repositories make are implemented.
type mockDynamoDB struct {
	dynamodbiface.DynamoDBAPI
	items   map[string][]map[string]*dynamodb.AttributeValue
	putErr  error
	pageLen int
}

func newMockDynamoDB() *mockDynamoDB {
	return &mockDynamoDB{items: map[string][]map[string]*dynamodb.AttributeValue{}, pageLen: 1}
}

func (m *mockDynamoDB) PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, opts ...request.Option) (*dynamodb.PutItemOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	table := aws.StringValue(in.TableName)
	m.items[table] = append(m.items[table], in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoDB) GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, opts ...request.Option) (*dynamodb.GetItemOutput, error) {
	id := aws.StringValue(in.Key["Id"].S)
	for _, item := range m.items[aws.StringValue(in.TableName)] {
		if aws.StringValue(item["Id"].S) == id {
			return &dynamodb.GetItemOutput{Item: item}, nil
		}
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (m *mockDynamoDB) ScanPagesWithContext(ctx aws.Context, in *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, opts ...request.Option) error {
	items := m.items[aws.StringValue(in.TableName)]
	if in.FilterExpression != nil {
		want := aws.StringValue(in.ExpressionAttributeValues[":email"].S)
		var filtered []map[string]*dynamodb.AttributeValue
		for _, item := range items {
			if aws.StringValue(item["Email"].S) == want {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	// Serve items in reverse, one per page, to exercise paging and sorting.
	for i := len(items) - 1; i >= 0; i -= m.pageLen {
		if !fn(&dynamodb.ScanOutput{Items: items[i : i+1]}, i == 0) {
			return nil
		}
	}
	return nil
}

func TestDynamoVideoRepository(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB()
	r := &DynamoVideoRepository{db: db, tableName: "videos"}
	owner := &entity.User{Id: "u-1", Email: "ada@example.com"}

	first := entity.NewVideo("first", "d", "https://example.com/1", owner)
	second := entity.NewVideo("second", "d", "https://example.com/2", owner)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	for _, v := range []*entity.Video{first, second} {
		if err := r.Save(ctx, v); err != nil {
			t.Fatal(err)
		}
	}

	videos, err := r.FindAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(videos) != 2 || videos[0].Id != first.Id || videos[1].Id != second.Id {
		t.Fatalf("expected creation order, got %+v", videos)
	}
	if videos[0].OwnerId() != "u-1" || videos[0].Status != entity.VideoStatusNormal {
		t.Errorf("unexpected video %+v", videos[0])
	}

	db.putErr = errors.New("throttled")
	if err := r.Save(ctx, entity.NewVideo("third", "d", "https://example.com/3", owner)); !errors.Is(err, db.putErr) {
		t.Errorf("expected wrapped put error, got %v", err)
	}
}

func TestDynamoUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB()
	item, err := dynamodbattribute.MarshalMap(&entity.User{Id: "u-1", Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	db.items["users"] = append(db.items["users"], item)
	r := &DynamoUserRepository{db: db, tableName: "users"}

	tests := []struct {
		criteria    repository.UserCriteria
		expectedErr error
	}{
		{repository.UserCriteria{Id: "u-1"}, nil},
		{repository.UserCriteria{Email: "ada@example.com"}, nil},
		{repository.UserCriteria{Id: "u-2"}, repository.ErrUserNotFound},
		{repository.UserCriteria{Email: "bob@example.com"}, repository.ErrUserNotFound},
		{repository.UserCriteria{}, repository.ErrUnsupportedCriteria},
	}
	for _, tt := range tests {
		u, err := r.FindOneBy(ctx, tt.criteria)
		if !errors.Is(err, tt.expectedErr) {
			t.Errorf("%+v: expected error (%v), got error (%v)", tt.criteria, tt.expectedErr, err)
			continue
		}
		if err == nil && (u.Id != "u-1" || u.Name != "Ada") {
			t.Errorf("%+v: unexpected user %+v", tt.criteria, u)
		}
	}
}

func TestDynamoUserRepositoryCorruptItem(t *testing.T) {
	db := newMockDynamoDB()
	db.items["users"] = append(db.items["users"], map[string]*dynamodb.AttributeValue{
		"Id":        {S: aws.String("u-9")},
		"Email":     {S: aws.String("broken@example.com")},
		"CreatedAt": {S: aws.String("yesterday")},
	})
	r := &DynamoUserRepository{db: db, tableName: "users"}

	u, err := r.FindOneBy(context.Background(), repository.UserCriteria{Email: "broken@example.com"})
	if err == nil || errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected a decode error, got user %+v and error (%v)", u, err)
	}
}
