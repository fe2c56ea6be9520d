package upload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"charitydash/internal/storage"
	"charitydash/pkg/types"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidFileType = errors.New("only image files are allowed")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrTooManyFiles    = errors.New("too many files in upload")
	ErrUploadFailed    = errors.New("failed to store uploaded file")
)

// multipart parts beyond this stay on disk in temp files while parsing
const maxMemory = 8 << 20

type Constraints struct {
	FieldName   string
	MaxFileSize int64
	MaxFiles    int
	// stored names are <NamePrefix>-<unix millis>-<random><ext>
	NamePrefix string
}

func DefaultConstraints() Constraints {
	return Constraints{
		FieldName:   "images",
		MaxFileSize: 5 << 20,
		MaxFiles:    10,
		NamePrefix:  "event",
	}
}

type Handler struct {
	logger      *logrus.Logger
	storage     storage.Storage
	constraints Constraints

	now    func() time.Time
	random func() int64
}

func NewHandler(logger *logrus.Logger, store storage.Storage, constraints Constraints) *Handler {
	return &Handler{
		logger:      logger,
		storage:     store,
		constraints: constraints,
		now:         time.Now,
		random:      func() int64 { return rand.Int64N(1e9) },
	}
}

// maxRequestBytes bounds the whole request body: every file at its limit plus
// room for the text fields.
func (h *Handler) maxRequestBytes() int64 {
	return int64(h.constraints.MaxFiles)*h.constraints.MaxFileSize + 1<<20
}

// ParseRequest caps the body size and parses a multipart form, returning the
// file headers under the configured field. Urlencoded posts parse fine and
// simply carry no files.
func (h *Handler) ParseRequest(w http.ResponseWriter, r *http.Request) ([]*multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes())

	err := r.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return nil, ErrFileTooLarge
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	return r.MultipartForm.File[h.constraints.FieldName], nil
}

// Check rejects the whole batch if any file breaks a constraint. Nothing is
// stored by Check.
func (h *Handler) Check(files []*multipart.FileHeader) error {
	files = nonEmpty(files)

	if len(files) > h.constraints.MaxFiles {
		return fmt.Errorf("%w: %d files, limit %d", ErrTooManyFiles, len(files), h.constraints.MaxFiles)
	}

	for _, file := range files {
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return fmt.Errorf("%w: %s is %q", ErrInvalidFileType, file.Filename, contentType)
		}

		if file.Size > h.constraints.MaxFileSize {
			return fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, file.Filename, file.Size)
		}
	}

	return nil
}

// Accept checks the batch and stores every file under a generated name. If
// any file fails to store, the files already stored are removed again.
func (h *Handler) Accept(ctx context.Context, files []*multipart.FileHeader) ([]types.EventImage, error) {
	if err := h.Check(files); err != nil {
		return nil, err
	}

	images := make([]types.EventImage, 0, len(files))
	for _, file := range nonEmpty(files) {
		image, err := h.store(ctx, file)
		if err != nil {
			h.Cleanup(ctx, images)
			return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
		}
		images = append(images, image)
	}

	return images, nil
}

func (h *Handler) store(ctx context.Context, file *multipart.FileHeader) (types.EventImage, error) {
	src, err := file.Open()
	if err != nil {
		return types.EventImage{}, fmt.Errorf("open %s: %w", file.Filename, err)
	}
	defer src.Close()

	name := h.generateName(file.Filename)

	err = h.storage.Save(ctx, name, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return types.EventImage{}, err
	}

	return types.EventImage{
		Filename:     name,
		OriginalName: file.Filename,
		Path:         h.storage.PublicURL(name),
		Size:         file.Size,
	}, nil
}

// generateName never uses the client's file name beyond its extension.
func (h *Handler) generateName(original string) string {
	return fmt.Sprintf("%s-%d-%d%s",
		h.constraints.NamePrefix,
		h.now().UnixMilli(),
		h.random(),
		filepath.Ext(filepath.Base(original)),
	)
}

// Cleanup deletes a stored batch. Failures are logged and otherwise ignored.
func (h *Handler) Cleanup(ctx context.Context, images []types.EventImage) {
	for _, image := range images {
		if err := h.storage.Delete(ctx, image.Filename); err != nil {
			h.logger.WithError(err).WithField("filename", image.Filename).Error("failed to delete uploaded file")
		}
	}
}

// nonEmpty drops the empty part browsers send for a file input left blank.
func nonEmpty(files []*multipart.FileHeader) []*multipart.FileHeader {
	out := make([]*multipart.FileHeader, 0, len(files))
	for _, file := range files {
		if file.Filename == "" && file.Size == 0 {
			continue
		}
		out = append(out, file)
	}
	return out
}
