package receipt

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"

	"welile-backend/internal/domain"
)

// Archiver persists the share-ready receipt text to object storage so a
// receipt can be re-shared after the originating session is gone.
type Archiver struct {
	client *minio.Client
	bucket string
}

func NewArchiver(client *minio.Client, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket}
}

func (a *Archiver) Archive(ctx context.Context, r domain.Receipt) error {
	if a == nil || a.client == nil {
		return nil
	}

	objectName := fmt.Sprintf("receipts/%s.txt", r.Number)
	reader := strings.NewReader(r.ShareText)

	_, err := a.client.PutObject(ctx, a.bucket, objectName, reader, int64(len(r.ShareText)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return fmt.Errorf("failed to archive receipt %s: %w", r.Number, err)
	}
	return nil
}
