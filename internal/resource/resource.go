// Package resource opens the two one-shot inputs of the viewer: the 3D asset
// and the simulation dataset. A reference is either an http(s) URL or a
// local file path. There are no retries and no timeouts.
package resource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Stream is an opened resource. Size is -1 when the length is unknown.
type Stream struct {
	io.ReadCloser
	Size int64
}

// IsURL reports whether ref should be fetched over HTTP.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Open opens ref for reading.
func Open(ctx context.Context, ref string) (*Stream, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}
	if IsURL(ref) {
		return openHTTP(ctx, ref)
	}
	return openFile(ref)
}

func openHTTP(ctx context.Context, ref string) (*Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("resource: build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resource: fetch %s: %w", ref, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Ref: ref, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return &Stream{ReadCloser: resp.Body, Size: resp.ContentLength}, nil
}

func openFile(ref string) (*Stream, error) {
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("resource: open %s: %w", ref, err)
	}
	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return &Stream{ReadCloser: f, Size: size}, nil
}

// ReadAll opens ref and reads it fully.
func ReadAll(ctx context.Context, ref string) ([]byte, error) {
	s, err := Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	data, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("resource: read %s: %w", ref, err)
	}
	return data, nil
}
