// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package codemao

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding is advertised on every request. Setting it ourselves turns
// off net/http's transparent gzip handling, so decodeBody covers both.
const acceptEncoding = "zstd, gzip"

// decodeBody wraps resp.Body according to its Content-Encoding. The caller
// closes the returned reader; resp.Body is closed separately.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	if resp.ContentLength == 0 {
		return io.NopCloser(resp.Body), nil
	}
	switch enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))); enc {
	case "", "identity":
		return io.NopCloser(resp.Body), nil
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open gzip body: %w", err)
		}
		return zr, nil
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open zstd body: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", enc)
	}
}
