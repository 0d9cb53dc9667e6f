package storage

import (
	"context"
	"io"
	"time"
)

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag"`
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	GetPublicURL(key string) string
}

const snapshotPrefix = "snapshots/"

// SnapshotKey names the object for a snapshot taken at t. Keys sort chronologically.
func SnapshotKey(t time.Time) string {
	return snapshotPrefix + "standings-" + t.UTC().Format("20060102T150405.000Z") + ".json"
}
