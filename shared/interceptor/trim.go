package interceptor

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
)

// quoteSpacePattern matches whitespace on either side of a double quote.
var quoteSpacePattern = regexp.MustCompile(`\s*"\s*`)

// NewTrimInterceptor strips whitespace around every double quote of a JSON request body.
// It works on the serialized text, so spaces next to escaped quotes inside a value go as well.
func NewTrimInterceptor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			_ = r.Body.Close()
			if err == nil {
				body = TrimJSON(body)
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
			next.ServeHTTP(w, r)
		})
	}
}

// TrimJSON compacts body, collapses whitespace around quotes and checks the result still parses.
// Bodies that are not JSON, before or after the rewrite, are returned unchanged.
func TrimJSON(body []byte) []byte {
	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return body
	}

	trimmed := quoteSpacePattern.ReplaceAll(compact.Bytes(), []byte(`"`))
	if !json.Valid(trimmed) {
		return body
	}

	return trimmed
}
