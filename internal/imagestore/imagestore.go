package imagestore

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImage = errors.New("invalid image data")

// Store persists one inline-encoded image and returns a stable reference
// usable as a listing's imageRef.
type Store interface {
	Save(ctx context.Context, dataURI string) (string, error)
}

// decodeDataURI accepts "data:<mime>;base64,<data>" (bare base64 is treated
// as image/jpeg) and returns the raw bytes plus content type and file
// extension.
func decodeDataURI(dataURI string) (data []byte, contentType, ext string, err error) {
	payload := strings.TrimSpace(dataURI)
	contentType = "image/jpeg"
	if strings.HasPrefix(payload, "data:") {
		head, rest, ok := strings.Cut(payload[len("data:"):], ",")
		if !ok {
			return nil, "", "", ErrInvalidImage
		}
		contentType = strings.TrimSuffix(head, ";base64")
		payload = rest
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, "", "", ErrInvalidImage
	}
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	case "image/gif":
		ext = ".gif"
	default:
		contentType = "image/jpeg"
		ext = ".jpg"
	}
	return data, contentType, ext, nil
}
