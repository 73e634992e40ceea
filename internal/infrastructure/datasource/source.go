package datasource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"career-compass/internal/domain/dataset"
	"career-compass/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// File loads a CSV dataset from local disk.
type File struct {
	Path string
}

func (f File) Name() string { return "file:" + f.Path }

func (f File) Load(_ context.Context) ([]dataset.Record, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer fh.Close()
	return dataset.Parse(fh)
}

type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 loads a CSV dataset object from S3 or an S3-compatible store.
type S3 struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

func (s S3) Name() string { return "s3://" + s.Bucket + "/" + strings.TrimPrefix(s.Key, "/") }

func (s S3) Load(ctx context.Context) ([]dataset.Record, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("nil s3 client")
	}
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return dataset.Parse(buf)
}

// Postgres loads training rows from the career_training_records table.
type Postgres struct {
	Repo repository.TrainingRecordRepository
}

func (p Postgres) Name() string { return "postgres:career_training_records" }

func (p Postgres) Load(ctx context.Context) ([]dataset.Record, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("nil training record repository")
	}
	records, err := p.Repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list training records: %w", err)
	}
	if err := dataset.Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}
