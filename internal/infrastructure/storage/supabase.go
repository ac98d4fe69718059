// Package storage implementa el bucket de imágenes de producto sobre la API
// REST de Supabase Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/pkg/config"
)

var _ usecase.ImageStorage = (*SupabaseStorage)(nil)

// SupabaseStorage sube objetos al bucket público vía la API REST de Storage.
// El service key va como Bearer; el bucket debe existir y ser público para que
// la URL devuelta sea servible sin firma.
type SupabaseStorage struct {
	cfg    config.StorageConfig
	client *http.Client
}

// NewSupabaseStorage construye el cliente del bucket.
func NewSupabaseStorage(cfg config.StorageConfig) *SupabaseStorage {
	return &SupabaseStorage{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sube el objeto y devuelve su URL pública. Usa x-upsert para que
// re-subir la imagen de un producto reemplace la anterior.
func (s *SupabaseStorage) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.cfg.URL, s.cfg.Bucket, objectName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("crear request de subida: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.ServiceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("subir objeto %s: %w", objectName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("subir objeto %s: status %d: %s", objectName, resp.StatusCode, payload)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.cfg.URL, s.cfg.Bucket, objectName), nil
}
