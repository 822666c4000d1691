package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// MediaFile is one uploaded file as the handler hands it over.
type MediaFile struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// StoredMedia is the durable location plus the coarse type the act record
// keeps (image or video).
type StoredMedia struct {
	URL  string
	Type string
}

// MediaService stores act media before the act row is written; a storage
// failure must abort the act creation.
type MediaService interface {
	Store(ctx context.Context, file *MediaFile) (*StoredMedia, error)
}

func coarseType(contentType string) string {
	if strings.HasPrefix(contentType, "video") {
		return "video"
	}
	return "image"
}

func objectName(fileName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
}

type localMediaService struct {
	dir string
}

// NewLocalMediaService writes uploads to dir and returns /uploads URLs
// served by the API's static route.
func NewLocalMediaService(dir string) MediaService {
	return &localMediaService{dir: dir}
}

func (s *localMediaService) Store(_ context.Context, file *MediaFile) (*StoredMedia, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}
	name := objectName(file.Name)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := io.Copy(f, file.Reader); err != nil {
		return nil, err
	}
	return &StoredMedia{
		URL:  "/uploads/" + name,
		Type: coarseType(file.ContentType),
	}, nil
}

type gcsMediaService struct {
	client *storage.Client
	bucket string
}

// NewGCSMediaService stores uploads in a Cloud Storage bucket with a
// download token so the returned URL is publicly fetchable.
func NewGCSMediaService(client *storage.Client, bucket string) MediaService {
	return &gcsMediaService{client: client, bucket: bucket}
}

func (s *gcsMediaService) Store(ctx context.Context, file *MediaFile) (*StoredMedia, error) {
	token := uuid.NewString()
	path := "uploads/" + objectName(file.Name)

	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = file.ContentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := io.Copy(w, file.Reader); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		s.bucket, strings.ReplaceAll(path, "/", "%2F"), token)
	return &StoredMedia{URL: url, Type: coarseType(file.ContentType)}, nil
}
