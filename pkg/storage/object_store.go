// Package storage — загрузка вложений чата в S3-совместимое
// объектное хранилище.
package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	// Лимиты размеров вложений
	MaxImageSize = 3 * 1024 * 1024  // 3MB
	MaxVideoSize = 10 * 1024 * 1024 // 10MB
)

var (
	imageTypes = map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/webp": true,
	}
	videoTypes = map[string]bool{
		"video/mp4":  true,
		"video/webm": true,
	}
)

// ObjectStore загружает файлы и отдаёт публично доступные URL.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// MinioStore реализует ObjectStore поверх MinIO/S3.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore подключается к MinIO и создаёт бакет, если его нет.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}

	return &MinioStore{
		client:  client,
		bucket:  bucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket),
	}, nil
}

// Upload кладёт объект и возвращает публичный URL.
func (m *MinioStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return m.baseURL + "/" + key, nil
}

// Delete удаляет объект.
func (m *MinioStore) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// ValidateAttachment проверяет тип и размер до загрузки.
// Возвращает тип сообщения ("image"/"video") или ошибку.
func ValidateAttachment(contentType string, size int64) (string, error) {
	switch {
	case imageTypes[contentType]:
		if size > MaxImageSize {
			return "", fmt.Errorf("image is too large (max %d MB)", MaxImageSize/1024/1024)
		}
		return "image", nil

	case videoTypes[contentType]:
		if size > MaxVideoSize {
			return "", fmt.Errorf("video is too large (max %d MB)", MaxVideoSize/1024/1024)
		}
		return "video", nil

	default:
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
}

// ObjectKey строит путь вида {userId}/{timestamp}_{random}.{ext}
func ObjectKey(userID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%d_%04d%s", userID, time.Now().UnixMilli(), rand.Intn(10000), ext)
}
