// ABOUTME: Storage for uploaded food and meal photos.
// ABOUTME: Images stay in the database row or go to S3 with only the key kept.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MaxImageBytes caps a single upload.
const MaxImageBytes = 10 << 20

var (
	// ErrUnsupportedType is returned for anything other than JPEG or PNG.
	ErrUnsupportedType = errors.New("unsupported image type (use JPEG or PNG)")
	// ErrTooLarge is returned when an image exceeds MaxImageBytes.
	ErrTooLarge = errors.New("image too large")
)

// Attachment describes where an image ended up. Exactly one of Data and Ref is set.
type Attachment struct {
	Data        []byte
	Ref         string
	ContentType string
}

// Store persists images.
type Store interface {
	// Put validates and stores an image for the given kind ("waste", "meal").
	Put(ctx context.Context, kind string, data []byte) (*Attachment, error)
	// Get loads an image previously stored under ref.
	Get(ctx context.Context, ref string) ([]byte, error)
	// Backend names the storage backend.
	Backend() string
}

// DetectType returns the image MIME type, or ErrUnsupportedType.
func DetectType(data []byte) (string, error) {
	switch ct := http.DetectContentType(data); ct {
	case "image/jpeg", "image/png":
		return ct, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
	}
}

// Validate checks size and type.
func Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrUnsupportedType)
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), MaxImageBytes)
	}
	return DetectType(data)
}

// DecodeDataURL decodes "data:<mime>;base64,<payload>" or bare base64.
func DecodeDataURL(s string) ([]byte, error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 || !strings.Contains(s[:idx], ";base64") {
			return nil, fmt.Errorf("invalid data URL")
		}
		payload = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return data, nil
}

// DatabaseStore keeps image bytes inline in the owning row.
type DatabaseStore struct{}

// NewDatabaseStore returns the inline store.
func NewDatabaseStore() *DatabaseStore {
	return &DatabaseStore{}
}

// Put implements Store.
func (s *DatabaseStore) Put(_ context.Context, _ string, data []byte) (*Attachment, error) {
	ct, err := Validate(data)
	if err != nil {
		return nil, err
	}
	return &Attachment{Data: data, ContentType: ct}, nil
}

// Get implements Store; inline images are never referenced by key.
func (s *DatabaseStore) Get(_ context.Context, ref string) ([]byte, error) {
	return nil, fmt.Errorf("database store has no object %q", ref)
}

// Backend implements Store.
func (s *DatabaseStore) Backend() string { return "database" }
