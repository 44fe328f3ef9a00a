package repositories

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"

	"github.com/dhis2/approval-backend/models"
)

const blobDeleteTimeout = 10 * time.Second

type BlobRepository interface {
	PutBlob(ctx context.Context, bucketUrl, fileName, contentType string, content io.Reader) (int64, error)
	GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error)
	DeleteBlob(ctx context.Context, bucketUrl, fileName string) error
	Close() error
}

type blobRepository struct {
	buckets map[string]*blob.Bucket
	m       sync.Mutex
}

// NewBlobRepository opens buckets lazily from their url, and keeps them open until Close.
func NewBlobRepository() BlobRepository {
	return &blobRepository{
		buckets: make(map[string]*blob.Bucket),
	}
}

func tracer() trace.Tracer {
	return otel.Tracer("github.com/dhis2/approval-backend/repositories")
}

func (repository *blobRepository) openBlobBucket(ctx context.Context, bucketUrl string) (*blob.Bucket, error) {
	ctx, span := tracer().Start(
		ctx,
		"repositories.BlobRepository.openBlobBucket",
		trace.WithAttributes(attribute.String("bucket", bucketUrl)),
	)
	defer span.End()

	repository.m.Lock()
	defer repository.m.Unlock()

	if bucket, ok := repository.buckets[bucketUrl]; ok {
		return bucket, nil
	}

	bucket, err := blob.OpenBucket(ctx, bucketUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketUrl)
	}

	ok, err := bucket.IsAccessible(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check bucket accessibility %s", bucketUrl)
	} else if !ok {
		return nil, errors.Newf("bucket %s is not accessible", bucketUrl)
	}

	repository.buckets[bucketUrl] = bucket
	return bucket, nil
}

func (repository *blobRepository) PutBlob(
	ctx context.Context,
	bucketUrl, fileName, contentType string,
	content io.Reader,
) (int64, error) {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return 0, err
	}

	ctx, span := tracer().Start(
		ctx,
		"repositories.BlobRepository.PutBlob",
		trace.WithAttributes(attribute.String("bucket", bucketUrl)),
		trace.WithAttributes(attribute.String("fileName", fileName)),
	)
	defer span.End()

	writer, err := bucket.NewWriter(ctx, fileName, &blob.WriterOptions{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=\"%s\"", fileName),
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open writer for %s/%s", bucketUrl, fileName)
	}

	size, err := io.Copy(writer, content)
	if err != nil {
		_ = writer.Close()
		return 0, errors.Wrapf(err, "failed to write %s/%s", bucketUrl, fileName)
	}
	if err := writer.Close(); err != nil {
		return 0, errors.Wrapf(err, "failed to close writer for %s/%s", bucketUrl, fileName)
	}
	return size, nil
}

func (repository *blobRepository) GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error) {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return models.Blob{}, err
	}

	ctx, span := tracer().Start(
		ctx,
		"repositories.BlobRepository.GetBlob",
		trace.WithAttributes(attribute.String("bucket", bucketUrl)),
		trace.WithAttributes(attribute.String("fileName", fileName)),
	)
	defer span.End()

	reader, err := bucket.NewReader(ctx, fileName, nil)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return models.Blob{}, errors.Wrapf(
			models.NotFoundError,
			"file %s does not exist in bucket %s", fileName, bucketUrl,
		)
	} else if err != nil {
		return models.Blob{}, errors.Wrapf(err, "failed to read object %s/%s", bucketUrl, fileName)
	}

	return models.Blob{
		FileName:    fileName,
		ContentType: reader.ContentType(),
		Size:        reader.Size(),
		ReadCloser:  reader,
	}, nil
}

func (repository *blobRepository) DeleteBlob(ctx context.Context, bucketUrl, fileName string) error {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, blobDeleteTimeout)
	defer cancel()

	err = bucket.Delete(ctx, fileName)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return errors.Wrapf(models.NotFoundError, "file %s does not exist in bucket %s", fileName, bucketUrl)
	}
	return errors.Wrapf(err, "failed to delete %s/%s", bucketUrl, fileName)
}

func (repository *blobRepository) Close() error {
	repository.m.Lock()
	defer repository.m.Unlock()

	var errs []error
	for url, bucket := range repository.buckets {
		if err := bucket.Close(); err != nil {
			errs = append(errs, errors.Wrapf(err, "failed to close bucket %s", url))
		}
		delete(repository.buckets, url)
	}
	return errors.Join(errs...)
}
