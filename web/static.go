package web

import (
	_ "embed"
	"net/http"
	"strconv"
	"time"
)

//go:embed robots.txt
var robotsTxt []byte

// FarExpiry is how long fingerprinted static assets may be cached.
const FarExpiry = 180 * 24 * time.Hour

// RobotsTxtHandler serves the robots.txt file.
func RobotsTxtHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=86400") // Cache for 1 day
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(robotsTxt) // Error is ignored as WriteHeader already sent status
	})
}

// StaticHandler serves assets by the {filename} path value with a far-future
// Expires header. Unknown names are delegated to notFound.
func StaticHandler(assets *Assets, notFound http.Handler) http.Handler {
	return staticHandler(assets, notFound, time.Now)
}

func staticHandler(assets *Assets, notFound http.Handler, now func() time.Time) http.Handler {
	maxAge := strconv.Itoa(int(FarExpiry.Seconds()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		asset, ok := assets.Get(r.PathValue("filename"))
		if !ok {
			notFound.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("Content-Type", asset.ContentType)
		h.Set("Content-Length", strconv.Itoa(len(asset.Content)))
		h.Set("Expires", now().Add(FarExpiry).UTC().Format(http.TimeFormat))
		h.Set("Cache-Control", "public, max-age="+maxAge+", immutable")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(asset.Content)
	})
}
