package permits

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FileRefInput carries the optional source-file fields of a create/update
// payload. Nil means the field was not supplied.
type FileRefInput struct {
	Bucket      *string
	Path        *string
	ContentType *string
	Name        *string
	Size        any
}

// FileRefAction says what a resolved input does to the stored reference.
type FileRefAction int

const (
	// FileRefKeep leaves the stored reference untouched.
	FileRefKeep FileRefAction = iota
	// FileRefClear removes the stored reference.
	FileRefClear
	// FileRefSet replaces the stored reference.
	FileRefSet
)

// FileReference is a validated pointer into object storage.
type FileReference struct {
	Bucket      string
	Path        string
	ContentType string
	Name        string
	Size        *int64
}

// FileRefResolution is the outcome of reconciling a FileRefInput.
type FileRefResolution struct {
	Action FileRefAction
	Ref    FileReference
}

// ResolveFileRef reconciles the optional source-file fields against the
// designated bucket and the requesting user. A reference is only accepted
// when the bucket matches and the path is namespaced under the user's id,
// which blocks cross-user access via reference forgery.
func ResolveFileRef(userID, designatedBucket string, in FileRefInput) (FileRefResolution, error) {
	if in.Bucket == nil && in.Path == nil && in.ContentType == nil && in.Name == nil && in.Size == nil {
		return FileRefResolution{Action: FileRefKeep}, nil
	}

	bucket := deref(in.Bucket)
	path := deref(in.Path)
	if bucket == "" && path == "" {
		return FileRefResolution{Action: FileRefClear}, nil
	}

	if bucket != designatedBucket {
		return FileRefResolution{}, fmt.Errorf("%w: unknown bucket", ErrInvalidFileRef)
	}
	if !strings.HasPrefix(path, userID+"/") {
		return FileRefResolution{}, fmt.Errorf("%w: path not owned by requester", ErrInvalidFileRef)
	}

	size, err := parseSize(in.Size)
	if err != nil {
		return FileRefResolution{}, err
	}

	return FileRefResolution{
		Action: FileRefSet,
		Ref: FileReference{
			Bucket:      bucket,
			Path:        path,
			ContentType: strings.TrimSpace(deref(in.ContentType)),
			Name:        strings.TrimSpace(deref(in.Name)),
			Size:        size,
		},
	}, nil
}

// parseSize accepts a number or numeric string and requires it to be finite
// and non-negative.
func parseSize(raw any) (*int64, error) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: size is not a number", ErrInvalidFileRef)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("%w: size is not a number", ErrInvalidFileRef)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil, fmt.Errorf("%w: size must be finite and non-negative", ErrInvalidFileRef)
	}
	size := int64(f)
	return &size, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
