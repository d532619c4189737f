// Package imaging normalizes uploaded avatar images.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/disintegration/imaging"
)

// maxSourcePixels rejects decompression bombs before decoding
const maxSourcePixels = 40_000_000

const pngContentType = "image/png"

type avatarProcessor struct {
	size   int
	logger logger.Logger
}

// NewAvatarProcessor returns a users.AvatarProcessor producing square PNG avatars.
func NewAvatarProcessor(logger logger.Logger) users.AvatarProcessor {
	return &avatarProcessor{
		size:   users.AvatarSize,
		logger: logger,
	}
}

// Process reads at most users.MaxAvatarBytes, applies the optional crop, fills a square and encodes PNG.
func (p *avatarProcessor) Process(src io.Reader, crop *users.CropRect) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(src, users.MaxAvatarBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > users.MaxAvatarBytes {
		return nil, "", fmt.Errorf("%w: image larger than %d bytes", apperr.ErrValidation, users.MaxAvatarBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: unsupported image: %v", apperr.ErrValidation, err)
	}
	if cfg.Width*cfg.Height > maxSourcePixels {
		return nil, "", fmt.Errorf("%w: image dimensions %dx%d too large", apperr.ErrValidation, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to decode %s image: %v", apperr.ErrValidation, format, err)
	}

	if crop != nil {
		bounds := img.Bounds()
		rect := image.Rect(crop.X, crop.Y, crop.X+crop.Width, crop.Y+crop.Height).Add(bounds.Min)
		if crop.Width <= 0 || crop.Height <= 0 || !rect.In(bounds) {
			return nil, "", fmt.Errorf("%w: crop %v outside image bounds %v", apperr.ErrValidation, rect, bounds)
		}
		img = imaging.Crop(img, rect)
	}

	img = imaging.Fill(img, p.size, p.size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, "", fmt.Errorf("failed to encode avatar: %w", err)
	}

	p.logger.Info("Processed avatar", "source_format", format, "bytes", buf.Len())
	return buf.Bytes(), pngContentType, nil
}
