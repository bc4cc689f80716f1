// ABOUTME: Tests for image validation and both storage backends.
// ABOUTME: The S3 store is exercised against an in-memory fake client.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngBytes  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0x00}
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr error
	}{
		{"jpeg", jpegBytes, "image/jpeg", nil},
		{"png", pngBytes, "image/png", nil},
		{"gif", []byte("GIF89a......"), "", ErrUnsupportedType},
		{"text", []byte("hello world"), "", ErrUnsupportedType},
		{"empty", nil, "", ErrUnsupportedType},
		{"too large", append(append([]byte{}, jpegBytes...), make([]byte, MaxImageBytes)...), "", ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Validate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeDataURL(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(jpegBytes)

	for _, in := range []string{"data:image/jpeg;base64," + encoded, encoded} {
		got, err := DecodeDataURL(in)
		if err != nil {
			t.Fatalf("DecodeDataURL(%q) failed: %v", in[:10], err)
		}
		if !bytes.Equal(got, jpegBytes) {
			t.Errorf("DecodeDataURL mismatch")
		}
	}

	for _, bad := range []string{"data:image/jpeg," + encoded, "data:image/jpeg;base64", "!!!"} {
		if _, err := DecodeDataURL(bad); err == nil {
			t.Errorf("DecodeDataURL(%q) should fail", bad)
		}
	}
}

func TestDatabaseStore(t *testing.T) {
	s := NewDatabaseStore()

	att, err := s.Put(context.Background(), "waste", pngBytes)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !bytes.Equal(att.Data, pngBytes) || att.Ref != "" {
		t.Errorf("inline attachment = %+v", att)
	}
	if s.Backend() != "database" {
		t.Errorf("Backend = %s", s.Backend())
	}
	if _, err := s.Put(context.Background(), "waste", []byte("nope")); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Put text err = %v", err)
	}
}

func TestS3Store(t *testing.T) {
	fake := newFakeS3()
	s := NewS3Store(fake, "bucket", "ecoeats")

	att, err := s.Put(context.Background(), "meal", jpegBytes)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if att.Data != nil {
		t.Error("S3 attachment should not carry bytes")
	}
	if !strings.HasPrefix(att.Ref, "ecoeats/meal/") || !strings.HasSuffix(att.Ref, ".jpg") {
		t.Errorf("Ref = %q", att.Ref)
	}
	if fake.types["bucket/"+att.Ref] != "image/jpeg" {
		t.Errorf("content type = %q", fake.types["bucket/"+att.Ref])
	}

	got, err := s.Get(context.Background(), att.Ref)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, jpegBytes) {
		t.Error("Get returned different bytes")
	}

	if _, err := s.Get(context.Background(), "missing"); err == nil {
		t.Error("Get missing should fail")
	}
}
