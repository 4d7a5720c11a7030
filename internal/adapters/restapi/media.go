// internal/adapters/restapi/media.go
package restapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

// MediaClient implements the multipart media upload endpoint.
type MediaClient struct {
	c      *Client
	logger *slog.Logger
}

var _ ports.MediaAPI = (*MediaClient)(nil)

// NewMediaClient creates a media upload client on the shared facade.
func NewMediaClient(c *Client, logger *slog.Logger) *MediaClient {
	return &MediaClient{
		c:      c,
		logger: logger.With(slog.String("client", "media")),
	}
}

// Upload posts one file under the multipart field "files" and returns
// the created media records. The property must already exist remotely;
// callers without a persisted id have nothing to attach to.
func (m *MediaClient) Upload(ctx context.Context, propertyID, fileName string, content io.Reader) ([]domain.Media, error) {
	if propertyID == "" {
		return nil, fmt.Errorf("media upload requires a persisted property id")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("files", fileName)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("buffer upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	var out []domain.Media
	err = m.c.doMultipart(ctx, "/media/"+propertyID+"/upload", writer.FormDataContentType(), &buf, &out, "file upload failed")
	if err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "media uploaded",
		slog.String("property_id", propertyID),
		slog.String("file_name", fileName),
		slog.Int("records", len(out)))
	return out, nil
}
