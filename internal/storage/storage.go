// Package storage persists uploaded project documents.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jaydipchangani/project-management-backend/internal/constants"
)

var (
	ErrInvalidFileType = errors.New("invalid file type, only documents and images are allowed")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
	ErrEmptyFilename   = errors.New("file name is required")
	ErrOutsideStore    = errors.New("path is not inside the upload directory")
)

// Upload is an incoming file.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// StoredFile describes where an upload was written.
type StoredFile struct {
	Filename    string
	StoragePath string
	URL         string
}

// Store writes uploads somewhere addressable by URL.
type Store interface {
	Save(ctx context.Context, upload Upload) (StoredFile, error)
	// Remove deletes a file previously returned by Save. Missing files are not an error.
	Remove(ctx context.Context, storagePath string) error
}

// Validate checks the extension allow-list and the size limit.
func Validate(u Upload) error {
	name := filepath.Base(strings.TrimSpace(u.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ErrEmptyFilename
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(constants.AllowedUploadExtensions, ext) {
		return fmt.Errorf("%w: %q", ErrInvalidFileType, ext)
	}
	if u.Size > constants.MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

// LocalStore keeps files on disk below root and serves them from baseURL/uploads.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the project upload directory below root if needed.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	dir := filepath.Join(root, constants.UploadSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save validates and writes the upload under a unique name.
func (s *LocalStore) Save(ctx context.Context, u Upload) (StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return StoredFile{}, err
	}
	if err := Validate(u); err != nil {
		return StoredFile{}, err
	}

	original := filepath.Base(strings.TrimSpace(u.Filename))
	stored := fmt.Sprintf("%s-%s%s", constants.UploadFormKey, uuid.NewString(), strings.ToLower(filepath.Ext(original)))
	fullPath := filepath.Join(s.dir, stored)

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to create file: %w", err)
	}

	// Size reported by the client is not trusted.
	n, err := io.Copy(f, io.LimitReader(u.Content, constants.MaxUploadSize+1))
	closeErr := f.Close()
	if err == nil && n > constants.MaxUploadSize {
		err = ErrFileTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(fullPath)
		if errors.Is(err, ErrFileTooLarge) {
			return StoredFile{}, err
		}
		return StoredFile{}, fmt.Errorf("failed to write file: %w", err)
	}

	return StoredFile{
		Filename:    original,
		StoragePath: fullPath,
		URL:         s.baseURL + "/" + path.Join("uploads", constants.UploadSubdir, stored),
	}, nil
}

// Remove deletes a stored file. Paths outside the upload directory are refused.
func (s *LocalStore) Remove(ctx context.Context, storagePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if filepath.Dir(filepath.Clean(storagePath)) != s.dir {
		return fmt.Errorf("%w: %s", ErrOutsideStore, storagePath)
	}
	if err := os.Remove(storagePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
