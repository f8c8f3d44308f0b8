package slot

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // registers file:// buckets
	_ "gocloud.dev/blob/memblob"  // registers mem:// buckets
	"gocloud.dev/gcerrors"
)

// Blob stores the snapshot as a single JSON object in a gocloud.dev bucket.
type Blob struct {
	bucket *blob.Bucket
	object string
}

// OpenBlob opens the bucket at bucketURL. The snapshot lives in the object
// "<key>.json".
func OpenBlob(ctx context.Context, bucketURL, key string) (*Blob, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("slot.OpenBlob: %w", err)
	}
	return &Blob{bucket: bucket, object: key + ".json"}, nil
}

// Read returns the snapshot object.
func (b *Blob) Read(ctx context.Context) ([]byte, error) {
	data, err := b.bucket.ReadAll(ctx, b.object)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("slot.Blob.Read: %w", err)
	}
	return data, nil
}

// Write replaces the snapshot object.
func (b *Blob) Write(ctx context.Context, data []byte) error {
	opts := &blob.WriterOptions{ContentType: "application/json"}
	if err := b.bucket.WriteAll(ctx, b.object, data, opts); err != nil {
		return fmt.Errorf("slot.Blob.Write: %w", err)
	}
	return nil
}

func (b *Blob) Close() error {
	return b.bucket.Close()
}
