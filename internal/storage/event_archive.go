package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"hello_slackbot/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// EventArchive defines the interface for keeping raw event bodies
type EventArchive interface {
	Archive(ctx context.Context, ev *model.IncomingEvent) error
}

// NopArchive drops every event
type NopArchive struct{}

// Archive implements EventArchive
func (NopArchive) Archive(context.Context, *model.IncomingEvent) error {
	return nil
}

// PutObjectAPI is the subset of the S3 client used by S3EventArchive
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3EventArchive implements EventArchive using AWS S3
type S3EventArchive struct {
	client     PutObjectAPI
	bucketName string
	prefix     string

	now   func() time.Time
	newID func() string
}

// NewS3EventArchive creates a new S3EventArchive instance
func NewS3EventArchive(client PutObjectAPI, bucketName, prefix string) *S3EventArchive {
	return &S3EventArchive{
		client:     client,
		bucketName: bucketName,
		prefix:     prefix,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Archive stores the raw body of ev as a JSON object
func (s *S3EventArchive) Archive(ctx context.Context, ev *model.IncomingEvent) error {
	if len(ev.Body) == 0 {
		return nil
	}

	key := s.getKey(ev)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucketName),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(ev.Body),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("failed to store event %s in S3: %w", key, err)
	}

	return nil
}

// getKey generates the S3 key for an event, partitioned by UTC day
func (s *S3EventArchive) getKey(ev *model.IncomingEvent) string {
	day := s.now().UTC().Format("2006/01/02")
	name := fmt.Sprintf("%s-%s.json", ev.Type, s.newID())
	return s.prefix + path.Join(day, ev.Kind.String(), name)
}
