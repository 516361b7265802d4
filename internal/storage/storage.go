package storage

import "context"

// ImageStore uploads binary blobs to remote object storage and returns a public URL.
type ImageStore interface {
	UploadImage(ctx context.Context, data []byte, folder string) (string, error)
}
