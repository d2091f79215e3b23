package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

// New buat koneksi MinIO
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	// pastikan bucket ada
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region}, nil
}

// ArchiveBatch uploads the raw fetched batch as one JSON object, keyed by
// hotel and task id, and returns the object URL.
func (s *Store) ArchiveBatch(ctx context.Context, hotelID, taskID string, raw []domain.RawReview) (string, error) {
	payload, err := json.Marshal(struct {
		HotelID    string             `json:"hotel_id"`
		TaskID     string             `json:"task_id"`
		FetchedAt  time.Time          `json:"fetched_at"`
		RawReviews []domain.RawReview `json:"raw_reviews"`
	}{
		HotelID:    hotelID,
		TaskID:     taskID,
		FetchedAt:  time.Now().UTC(),
		RawReviews: raw,
	})
	if err != nil {
		return "", fmt.Errorf("marshal raw batch: %w", err)
	}

	key := fmt.Sprintf("%s/%s.json", hotelID, taskID)
	_, err = s.client.PutObject(ctx, s.bucketName, key,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", err
	}

	// URL publik (jika bucket public), kalau private harus generate presigned URL
	url := fmt.Sprintf("http://%s/%s/%s", s.client.EndpointURL().Host, s.bucketName, key)
	return url, nil
}
