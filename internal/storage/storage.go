// Package storage abstracts the blob store holding resumes, company logos and
// profile pictures. The rest of the system keeps only the reference string
// returned by Upload.
package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (ref string, err error)
}

type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

// ObjectFromRef extracts the object name from a gs://bucket/object reference.
func ObjectFromRef(ref string) (string, bool) {
	rest, ok := strings.CutPrefix(ref, "gs://")
	if !ok {
		return "", false
	}
	_, object, ok := strings.Cut(rest, "/")
	if !ok || object == "" {
		return "", false
	}
	return object, true
}
