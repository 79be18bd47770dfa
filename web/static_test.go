package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobotsTxtHandler(t *testing.T) {
	handler := RobotsTxtHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "User-agent: *")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/robots.txt", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestEmbeddedAssets(t *testing.T) {
	assets, err := EmbeddedAssets()
	require.NoError(t, err)

	assert.Equal(t, []string{"favicon.svg", "style.css"}, assets.Names())

	css, ok := assets.Get("style.css")
	require.True(t, ok)
	assert.Contains(t, css.ContentType, "text/css")
	assert.True(t, strings.HasPrefix(css.PublicName, "style-"))
	assert.True(t, strings.HasSuffix(css.PublicName, ".css"))

	byPublic, ok := assets.Get(css.PublicName)
	require.True(t, ok)
	assert.Same(t, css, byPublic)
}

func TestAssetFingerprintTracksContent(t *testing.T) {
	a, err := LoadAssets(fstest.MapFS{"app.js": {Data: []byte("one")}})
	require.NoError(t, err)
	b, err := LoadAssets(fstest.MapFS{"app.js": {Data: []byte("two")}})
	require.NoError(t, err)

	assert.NotEqual(t, a.URL("app.js"), b.URL("app.js"))
	assert.Regexp(t, `^/static/app-[0-9a-f]{16}\.js$`, a.URL("app.js"))
}

func TestAssetsURLUnknownName(t *testing.T) {
	assets, err := LoadAssets(fstest.MapFS{})
	require.NoError(t, err)

	assert.Equal(t, "/static/missing.css", assets.URL("missing.css"))
}

func TestContentTypeFallsBackToSniffing(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assets, err := LoadAssets(fstest.MapFS{"logo": {Data: png}})
	require.NoError(t, err)

	asset, ok := assets.Get("logo")
	require.True(t, ok)
	assert.Equal(t, "image/png", asset.ContentType)
}

func TestStaticHandler(t *testing.T) {
	assets, err := LoadAssets(fstest.MapFS{"site.css": {Data: []byte("body{}")}})
	require.NoError(t, err)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	})

	mux := http.NewServeMux()
	mux.Handle("GET /static/{filename}", staticHandler(assets, notFound, func() time.Time { return fixed }))

	asset, _ := assets.Get("site.css")

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "fingerprinted name", path: "/static/" + asset.PublicName, wantStatus: http.StatusOK, wantBody: "body{}"},
		{name: "plain name", path: "/static/site.css", wantStatus: http.StatusOK, wantBody: "body{}"},
		{name: "unknown", path: "/static/other.css", wantStatus: http.StatusNotFound, wantBody: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.Empty(t, rec.Header().Get("Expires"))
				return
			}
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
			assert.Equal(t, "Tue, 30 Jun 2026 00:00:00 GMT", rec.Header().Get("Expires"))
			assert.Equal(t, "public, max-age=15552000, immutable", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestStaticHandlerHead(t *testing.T) {
	assets, err := LoadAssets(fstest.MapFS{"site.css": {Data: []byte("body{}")}})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("GET /static/{filename}", StaticHandler(assets, http.NotFoundHandler()))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Head(srv.URL + "/static/site.css")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(6), resp.ContentLength)
	expires, err := http.ParseTime(resp.Header.Get("Expires"))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(FarExpiry), expires, time.Minute)
}
