// internal/services/image_service.go
package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
)

// ImageService validates images that travel inline with listings and
// profiles, either as raw base64 or as a base64 data URL.
type ImageService struct {
	maxBytes int64
}

type DecodedImage struct {
	MimeType string
	Size     int64
}

func NewImageService(maxKB int64) *ImageService {
	return &ImageService{maxBytes: maxKB * 1024}
}

// Validate decodes encoded and checks its size and file signature.
func (s *ImageService) Validate(encoded string) (*DecodedImage, error) {
	payload := strings.TrimSpace(encoded)
	if payload == "" {
		return nil, &ValidationError{Message: "image is empty"}
	}

	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 || !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, &ValidationError{Message: "image must be a base64 data URL"}
		}
		if !strings.HasPrefix(payload, "data:image/") {
			return nil, &ValidationError{Message: "data URL is not an image"}
		}
		payload = payload[comma+1:]
	}

	if s.maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxBytes+2 {
		return nil, &ValidationError{Message: fmt.Sprintf("image exceeds maximum size of %d KB", s.maxBytes/1024)}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
			return nil, &ValidationError{Message: "image is not valid base64"}
		}
	}

	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, &ValidationError{Message: fmt.Sprintf("image exceeds maximum size of %d KB", s.maxBytes/1024)}
	}

	mimeType := detectImageType(data)
	if mimeType == "" {
		return nil, &ValidationError{Message: "invalid image file"}
	}

	return &DecodedImage{MimeType: mimeType, Size: int64(len(data))}, nil
}

// ValidateAll checks every image and reports the first failing index.
func (s *ImageService) ValidateAll(images []string) error {
	for i, img := range images {
		if _, err := s.Validate(img); err != nil {
			return &ValidationError{Message: fmt.Sprintf("images[%d]: %s", i, err.Error())}
		}
	}
	return nil
}

func detectImageType(buffer []byte) string {
	switch {
	case len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF:
		return "image/jpeg"
	case len(buffer) >= 8 && bytes.Equal(buffer[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}):
		return "image/png"
	case len(buffer) >= 6 && (string(buffer[:6]) == "GIF87a" || string(buffer[:6]) == "GIF89a"):
		return "image/gif"
	case len(buffer) >= 12 && string(buffer[:4]) == "RIFF" && string(buffer[8:12]) == "WEBP":
		return "image/webp"
	}
	return ""
}
