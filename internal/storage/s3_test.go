package storage

import (
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	t.Parallel()

	s := &S3ImageStore{opts: S3Options{KeyPrefix: "accounts/"}}

	key := s.objectKey("uploads", "image/png")
	if !strings.HasPrefix(key, "accounts/uploads/") {
		t.Fatalf("unexpected key prefix: %q", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key suffix: %q", key)
	}

	// no empty segments when prefix and folder are blank
	s = &S3ImageStore{opts: S3Options{}}
	key = s.objectKey("", "application/octet-stream")
	if strings.Contains(key, "/") {
		t.Fatalf("expected bare key, got %q", key)
	}
	if !strings.HasSuffix(key, ".bin") {
		t.Fatalf("unexpected key suffix: %q", key)
	}
}

func TestObjectURL(t *testing.T) {
	t.Parallel()

	s := &S3ImageStore{opts: S3Options{Bucket: "avatars", Region: "eu-west-1"}}
	got := s.objectURL("accounts/uploads/x.png")
	want := "https://avatars.s3.eu-west-1.amazonaws.com/accounts/uploads/x.png"
	if got != want {
		t.Fatalf("url mismatch:\n got %q\nwant %q", got, want)
	}

	s = &S3ImageStore{opts: S3Options{Bucket: "avatars", PublicBaseURL: "https://cdn.example.com/"}}
	got = s.objectURL("accounts/uploads/x.png")
	want = "https://cdn.example.com/accounts/uploads/x.png"
	if got != want {
		t.Fatalf("url mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestImageExt(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"image/jpeg":               ".jpg",
		"image/png":                ".png",
		"image/gif":                ".gif",
		"image/webp":               ".webp",
		"application/octet-stream": ".bin",
	}
	for contentType, want := range tests {
		if got := imageExt(contentType); got != want {
			t.Errorf("imageExt(%q) = %q, want %q", contentType, got, want)
		}
	}
}
