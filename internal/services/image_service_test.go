package services

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookxchange/backend/internal/testutil"
)

func TestImageServiceValidate(t *testing.T) {
	svc := NewImageService(1)

	jpeg := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0})

	tests := []struct {
		name    string
		input   string
		mime    string
		wantErr string
	}{
		{name: "png data url", input: testutil.PNG, mime: "image/png"},
		{name: "raw base64 png", input: pngImage(1), mime: "image/png"},
		{name: "raw base64 jpeg", input: jpeg, mime: "image/jpeg"},
		{name: "empty", input: "  ", wantErr: "image is empty"},
		{name: "not base64", input: "%%%not-base64%%%", wantErr: "image is not valid base64"},
		{name: "text payload", input: base64.StdEncoding.EncodeToString([]byte("hello world")), wantErr: "invalid image file"},
		{name: "non-image data url", input: "data:text/plain;base64,aGVsbG8=", wantErr: "data URL is not an image"},
		{name: "data url without base64", input: "data:image/png,abc", wantErr: "image must be a base64 data URL"},
		{
			name:    "too large",
			input:   base64.StdEncoding.EncodeToString(append(append([]byte{}, pngSignature...), strings.Repeat("x", 2048)...)),
			wantErr: "image exceeds maximum size of 1 KB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := svc.Validate(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mime, img.MimeType)
		})
	}
}

func TestImageServiceValidateAllReportsIndex(t *testing.T) {
	svc := NewImageService(64)

	err := svc.ValidateAll([]string{pngImage(0), "", pngImage(2)})
	require.Error(t, err)
	assert.Equal(t, "images[1]: image is empty", err.Error())

	assert.NoError(t, svc.ValidateAll([]string{pngImage(0), testutil.PNG}))
}
