package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Service stores submission files in Cloudinary. Uploads return a storage
// path; public URLs are derived from the path at read time.
type Service struct {
	client    *cloudinary.Cloudinary
	cloudName string
	folder    string
	logger    zerolog.Logger
}

// New constructs a Cloudinary service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		client:    cld,
		cloudName: cfg.CloudName,
		folder:    strings.Trim(cfg.Folder, "/"),
		logger:    logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload sends the file to Cloudinary under the owner's folder and returns the
// storage path used to address it later.
func (s *Service) Upload(ctx context.Context, ownerID, name string, reader io.Reader) (string, error) {
	publicID := buildPublicID(ownerID, name)

	params := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		ResourceType: "auto",
	}

	result, err := s.client.Upload.Upload(ctx, reader, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("file uploaded to cloudinary")

	return result.PublicID, nil
}

// PublicURL derives the delivery URL for a previously stored path.
func (s *Service) PublicURL(path string) string {
	if path == "" {
		return ""
	}

	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cloudName, path)
}

// Delete removes a stored asset. Callers treat failures as non-fatal.
func (s *Service) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: path})
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	s.logger.Info().Str("public_id", path).Msg("file deleted from cloudinary")

	return nil
}

func buildPublicID(ownerID, name string) string {
	owner := strings.Map(sanitizeRune, strings.TrimSpace(ownerID))
	owner = strings.Trim(owner, "-")
	if owner == "" {
		owner = "anonymous"
	}

	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	id := uuid.NewString()
	if ext != "" {
		return fmt.Sprintf("%s/%s.%s", owner, id, strings.ToLower(ext))
	}

	return fmt.Sprintf("%s/%s", owner, id)
}

func sanitizeRune(r rune) rune {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return r
	}
	return '-'
}
