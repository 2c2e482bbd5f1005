package origin

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

type blobOrigin struct {
	bucket *blob.Bucket
	key    string
	owned  bool
}

// OpenBlob opens the bucket holding the object of u.
// file:///data/disk.img opens bucket file:///data with key disk.img,
// s3://bucket/path/disk.img?region=eu-west-1 opens s3://bucket?region=eu-west-1 with key path/disk.img.
func OpenBlob(ctx context.Context, u *url.URL) (Origin, error) {
	bucketURL, key := splitBlobURL(u)
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: object key is missing in %s", ErrNotFound, u.String())
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOrigin, err)
	}

	return &blobOrigin{
		bucket: bucket,
		key:    key,
		owned:  true,
	}, nil
}

// NewBlob serves key from an already opened bucket, the bucket stays open on Close
func NewBlob(bucket *blob.Bucket, key string) Origin {
	return &blobOrigin{
		bucket: bucket,
		key:    key,
	}
}

func splitBlobURL(u *url.URL) (string, string) {
	query := ""
	if len(u.RawQuery) > 0 {
		query = fmt.Sprintf("?%s", u.RawQuery)
	}

	if strings.EqualFold(u.Scheme, "file") {
		dir, key := path.Split(u.Path)
		return fmt.Sprintf("file://%s%s", path.Clean(dir), query), key
	}

	return fmt.Sprintf("%s://%s%s", u.Scheme, u.Host, query), strings.TrimPrefix(u.Path, "/")
}

func (b *blobOrigin) Name() string {
	return resourceName(b.key)
}

func (b *blobOrigin) Open(ctx context.Context, offset uint64) (*Response, error) {
	attrs, err := b.bucket.Attributes(ctx, b.key)
	if err != nil {
		return nil, blobError(err)
	}

	size := uint64(attrs.Size)
	if offset >= size {
		return emptyResponse(), nil
	}

	reader, err := b.bucket.NewRangeReader(ctx, b.key, int64(offset), -1, nil)
	if err != nil {
		return nil, blobError(err)
	}

	return &Response{
		Remaining: size - offset,
		Body:      reader,
	}, nil
}

func (b *blobOrigin) Close() error {
	if !b.owned {
		return nil
	}
	return b.bucket.Close()
}

func blobError(err error) error {
	switch gcerrors.Code(err) {
	case gcerrors.NotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case gcerrors.PermissionDenied:
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	}
	return fmt.Errorf("%w: %w", ErrOrigin, err)
}

var _ Origin = &blobOrigin{}
