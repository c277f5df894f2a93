package imagestore

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	ref, err := store.Save(context.Background(), uri)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(ref, "/images/") || !strings.HasSuffix(ref, ".png") {
		t.Fatalf("unexpected ref %q", ref)
	}

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "/images/")))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != string(raw) {
		t.Fatalf("stored bytes differ")
	}
}

func TestDiskStoreBareBase64DefaultsToJPEG(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ref, err := store.Save(context.Background(), base64.StdEncoding.EncodeToString([]byte("jpegish")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(ref, ".jpg") {
		t.Fatalf("unexpected ref %q", ref)
	}
}

func TestDiskStoreRejectsBadData(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	tests := []struct {
		name string
		data string
	}{
		{"not base64", "data:image/png;base64,!!!"},
		{"no comma", "data:image/png;base64"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Save(context.Background(), tt.data); !errors.Is(err, ErrInvalidImage) {
				t.Fatalf("err=%v want ErrInvalidImage", err)
			}
		})
	}
}
