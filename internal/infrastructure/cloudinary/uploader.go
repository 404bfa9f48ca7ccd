// Package cloudinary implementa el puerto usecase.ImageUploader contra
// Cloudinary para las imágenes del catálogo.
package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/pkg/config"
)

var _ usecase.ImageUploader = (*Uploader)(nil)

// Uploader sube imágenes de productos a Cloudinary.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewUploader construye el uploader con las credenciales de la configuración.
func NewUploader(cfg config.CloudinaryConfig) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: inicializar: %w", err)
	}
	return &Uploader{cld: cld, folder: cfg.Folder}, nil
}

// Upload sube el binario y devuelve la URL pública segura.
func (u *Uploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	publicID := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	overwrite := true
	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:    u.folder,
		PublicID:  publicID,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary: subir imagen: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: subir imagen: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
