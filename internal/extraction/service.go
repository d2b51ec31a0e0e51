package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"permits-backend/internal/extract"
	"permits-backend/internal/llm"
	"permits-backend/internal/shared/metrics"
	"permits-backend/internal/shared/storage/object"
	"permits-backend/internal/shared/telemetry"
	"permits-backend/internal/shared/util"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("empty file")
	ErrInvalidRef      = errors.New("invalid source file reference")
	ErrLLM             = errors.New("extraction failed")
)

// Service uploads a document, runs vision extraction on it, and returns a
// reviewable draft plus the stored file reference.
type Service struct {
	Store object.ObjectStore
	LLM   llm.Client
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// Upload is one incoming multipart file.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// FileRef points at the stored copy of the upload.
type FileRef struct {
	Bucket      string `json:"bucket"`
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
}

// Result is the extraction outcome handed back for review.
type Result struct {
	Fields        Fields
	RawExtraction json.RawMessage
	File          FileRef
}

// Extract stores the upload under the user's namespace and asks the model
// for the document fields. The file is persisted before the model call so a
// provider failure never loses the upload.
func (s *Service) Extract(ctx context.Context, userID string, up Upload) (Result, error) {
	if len(up.Data) == 0 {
		return Result{}, ErrEmptyFile
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(up.ContentType, ";")[0]))
	if !strings.HasPrefix(contentType, "image/") && contentType != "application/pdf" {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	name, err := util.SanitizeFileName(up.FileName)
	if err != nil {
		name = "document" + util.FileExt(up.FileName)
	}

	now := s.now()
	key := fmt.Sprintf("%s/%s/%s%s", userID, now.Format("2006-01-02"), uuid.NewString(), util.FileExt(name))
	size, err := s.Store.Put(ctx, key, contentType, bytes.NewReader(up.Data))
	if err != nil {
		return Result{}, err
	}

	return s.extractBytes(ctx, name, contentType, up.Data, FileRef{
		Bucket:      s.Store.Bucket(),
		Path:        key,
		ContentType: contentType,
		Name:        name,
		Size:        size,
	})
}

// ExtractStored runs extraction against an object the caller already uploaded,
// typically via a presigned PUT. The reference must name the designated bucket
// and a path under the caller's namespace.
func (s *Service) ExtractStored(ctx context.Context, userID string, ref FileRef) (Result, error) {
	if ref.Bucket != s.Store.Bucket() {
		return Result{}, fmt.Errorf("%w: unknown bucket", ErrInvalidRef)
	}
	if !strings.HasPrefix(ref.Path, userID+"/") {
		return Result{}, fmt.Errorf("%w: path outside caller namespace", ErrInvalidRef)
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(ref.ContentType, ";")[0]))
	if !strings.HasPrefix(contentType, "image/") && contentType != "application/pdf" {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	rc, err := s.Store.Open(ctx, ref.Path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidRef, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxUploadBytes+1))
	if err != nil {
		return Result{}, err
	}
	if len(data) == 0 {
		return Result{}, ErrEmptyFile
	}
	if len(data) > maxUploadBytes {
		return Result{}, fmt.Errorf("%w: object too large", ErrInvalidRef)
	}

	name := strings.TrimSpace(ref.Name)
	if name == "" {
		name = path.Base(ref.Path)
	}
	size := ref.Size
	if size <= 0 {
		size = int64(len(data))
	}

	return s.extractBytes(ctx, name, contentType, data, FileRef{
		Bucket:      ref.Bucket,
		Path:        ref.Path,
		ContentType: contentType,
		Name:        name,
		Size:        size,
	})
}

func (s *Service) extractBytes(ctx context.Context, name, contentType string, data []byte, ref FileRef) (Result, error) {
	metrics.IncExtractionStarted()
	started := metrics.NowMillis()
	raw, err := s.LLM.ExtractDocument(ctx, llm.ExtractInput{
		FileName:    name,
		ContentType: contentType,
		Data:        data,
		TextHint:    extract.TextHint(ctx, data, contentType),
		Today:       s.now(),
	})
	metrics.ObserveExtractionDurationMs(metrics.NowMillis() - started)
	if err != nil {
		metrics.IncExtractionFailed()
		return Result{}, fmt.Errorf("%w: %w", ErrLLM, err)
	}
	if !llm.IsJSONObject(raw) {
		metrics.IncExtractionFailed()
		return Result{}, fmt.Errorf("%w: %w", ErrLLM, &llm.MalformedOutputError{Raw: raw})
	}
	metrics.IncExtractionCompleted()

	if err := ValidateExtraction(raw); err != nil {
		telemetry.Warn("extraction schema mismatch", map[string]any{"error": err.Error()})
	}

	return Result{
		Fields:        ParseFields(raw),
		RawExtraction: raw,
		File:          ref,
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
