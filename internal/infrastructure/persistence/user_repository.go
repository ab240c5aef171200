package persistence

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
)

// DynamoUserRepository reads user items keyed by Id.
type DynamoUserRepository struct {
	db        dynamodbiface.DynamoDBAPI
	tableName string
}

func NewDynamoUserRepository(sess *session.Session, tableName string) *DynamoUserRepository {
	return &DynamoUserRepository{db: dynamodb.New(sess), tableName: tableName}
}

// Get the user by id, or by email with a filtered scan when no id is given.
func (r *DynamoUserRepository) FindOneBy(ctx context.Context, criteria repository.UserCriteria) (*entity.User, error) {
	if criteria.IsEmpty() {
		return nil, repository.ErrUnsupportedCriteria
	}
	if criteria.Id != "" {
		out, err := r.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
			Key:       map[string]*dynamodb.AttributeValue{"Id": {S: aws.String(criteria.Id)}},
			TableName: aws.String(r.tableName),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get user %s: %w", criteria.Id, err)
		}
		if len(out.Item) == 0 {
			return nil, repository.ErrUserNotFound
		}
		var user *entity.User
		if err := dynamodbattribute.UnmarshalMap(out.Item, &user); err != nil {
			return nil, err
		}
		return user, nil
	}

	var (
		found   *entity.User
		pageErr error
	)
	err := r.db.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("Email = :email"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":email": {S: aws.String(criteria.Email)},
		},
	}, func(out *dynamodb.ScanOutput, last bool) bool {
		if len(out.Items) == 0 {
			return true
		}
		found = &entity.User{}
		pageErr = dynamodbattribute.UnmarshalMap(out.Items[0], found)
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}
	if pageErr != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", pageErr)
	}
	if found == nil {
		return nil, repository.ErrUserNotFound
	}
	return found, nil
}

// Save a user to the persistence.
func (r *DynamoUserRepository) Save(ctx context.Context, user *entity.User) error {
	av, err := dynamodbattribute.MarshalMap(user)
	if err != nil {
		return err
	}
	_, err = r.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.Id, err)
	}
	return nil
}

var _ repository.UserRepository = (*DynamoUserRepository)(nil)
