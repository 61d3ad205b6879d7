package usecase

import (
	"io"
	"path/filepath"
	"strings"
)

// FileStorage is the subset of storage.LocalStorage the usecases need.
type FileStorage interface {
	Save(name string, data []byte) (string, error)
	SaveStream(name string, r io.Reader) (string, error)
	Delete(name string) error
}

// PhotoProcessor turns an uploaded image into the stored JPEG bytes.
type PhotoProcessor interface {
	Normalize(r io.Reader) ([]byte, error)
}

var (
	allowedImageExtensions    = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	allowedDocumentExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}
)

func AllowedImageExtensions() []string {
	return append([]string(nil), allowedImageExtensions...)
}

func AllowedDocumentExtensions() []string {
	return append([]string(nil), allowedDocumentExtensions...)
}

// extensionOf returns the lower-cased extension if it is in allowed, else "".
func extensionOf(filename string, allowed []string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, candidate := range allowed {
		if ext == candidate {
			return ext
		}
	}
	return ""
}
