package persistence

import (
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
)

// DynamoVideoRepository stores each video as one item keyed by Id, with the owner
// embedded as a map attribute.
type DynamoVideoRepository struct {
	db        dynamodbiface.DynamoDBAPI
	tableName string
}

func NewDynamoVideoRepository(sess *session.Session, tableName string) *DynamoVideoRepository {
	return &DynamoVideoRepository{db: dynamodb.New(sess), tableName: tableName}
}

// Get all videos. A table scan has no order, so the result is sorted by creation time.
func (r *DynamoVideoRepository) FindAll(ctx context.Context) ([]*entity.Video, error) {
	var (
		videos  []*entity.Video
		pageErr error
	)
	err := r.db.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}, func(out *dynamodb.ScanOutput, last bool) bool {
		var page []*entity.Video
		if pageErr = dynamodbattribute.UnmarshalListOfMaps(out.Items, &page); pageErr != nil {
			return false
		}
		videos = append(videos, page...)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan videos: %w", err)
	}
	if pageErr != nil {
		return nil, fmt.Errorf("failed to unmarshal videos: %w", pageErr)
	}
	slices.SortStableFunc(videos, func(a, b *entity.Video) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return videos, nil
}

// Save an entity to the persistence.
func (r *DynamoVideoRepository) Save(ctx context.Context, video *entity.Video) error {
	if video.OwnerId() == "" {
		return fmt.Errorf("video %s has no owner", video.Id)
	}
	av, err := dynamodbattribute.MarshalMap(video)
	if err != nil {
		return err
	}
	_, err = r.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return fmt.Errorf("failed to save video %s: %w", video.Id, err)
	}
	return nil
}

var _ repository.VideoRepository = (*DynamoVideoRepository)(nil)
