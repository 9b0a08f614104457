package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"lumio_back_end/internal/database"
)

// Limites d'upload, vérifiées avant toute requête réseau.
const (
	MaxAvatarSize  = 3 * 1024 * 1024  // 3 MB
	MaxProductSize = 20 * 1024 * 1024 // 20 MB
)

var (
	ErrNotAnImage    = errors.New("le fichier doit être une image")
	ErrImageTooLarge = errors.New("image trop volumineuse")
)

// ValidateImageUpload rejette les fichiers non-image et trop gros avant
// d'émettre l'upload.
func ValidateImageUpload(contentType string, size, maxSize int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}
	if size > maxSize {
		return ErrImageTooLarge
	}
	return nil
}

// UploadImage pousse une image vers MinIO sous folder/<uuid><ext> et retourne
// l'URL publique et le nom d'objet.
func UploadImage(ctx context.Context, header *multipart.FileHeader, folder string, maxSize int64) (string, string, error) {
	if database.MinIO == nil {
		return "", "", errors.New("MinIO non initialisé")
	}

	contentType := header.Header.Get("Content-Type")
	if err := ValidateImageUpload(contentType, header.Size, maxSize); err != nil {
		return "", "", err
	}

	file, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	bucket := os.Getenv("MINIO_BUCKET")
	_, err = database.MinIO.PutObject(ctx, bucket, objectName, file, header.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, objectName, nil
}

// RemoveImage supprime un objet uploadé. Best effort lors des remplacements.
func RemoveImage(ctx context.Context, objectName string) error {
	if database.MinIO == nil || objectName == "" {
		return nil
	}
	return database.MinIO.RemoveObject(ctx, os.Getenv("MINIO_BUCKET"), objectName,
		minio.RemoveObjectOptions{})
}
