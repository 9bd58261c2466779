package compress

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestRequestUngzipper(t *testing.T) {
	echo := RequestUngzipper{}.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		_, _ = w.Write(body)
	}))

	testCases := []struct {
		name     string
		body     io.Reader
		encoding string
		status   int
		want     string
	}{
		{name: "plain", body: strings.NewReader(`{"month":"2024-01"}`), status: http.StatusOK, want: `{"month":"2024-01"}`},
		{name: "gzip", body: bytes.NewReader(gzipped(t, `{"month":"2024-02"}`)), encoding: "gzip", status: http.StatusOK, want: `{"month":"2024-02"}`},
		{name: "broken gzip", body: strings.NewReader("not gzip"), encoding: "gzip", status: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/orders/load", tc.body)
			if tc.encoding != "" {
				req.Header.Set("Content-Encoding", tc.encoding)
			}
			w := httptest.NewRecorder()
			echo.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.want != "" {
				assert.Equal(t, tc.want, w.Body.String())
			}
		})
	}
}
