package http

import (
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Asset bundles are content hashed by the frontend build
const (
	assetsPrefix       = "/assets/"
	cacheControlAssets = "public, max-age=31536000, immutable"
	cacheControlIndex  = "no-cache"
)

// SPAHandler serves the dashboard build and falls back to index.html so
// client-side routes such as /matrix/risk-exposure resolve
type SPAHandler struct {
	fileSystem http.FileSystem
	indexFile  []byte
}

// NewSPAHandler creates a new SPA handler
func NewSPAHandler(filesystem http.FileSystem) (*SPAHandler, error) {
	indexFile, err := filesystem.Open("/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open index.html for SPA handler")
	}
	defer indexFile.Close()

	indexContent, err := io.ReadAll(indexFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read index.html content")
	}

	return &SPAHandler{
		fileSystem: filesystem,
		indexFile:  indexContent,
	}, nil
}

// ServeHTTP implements the http.Handler interface for SPA routing
func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cleanPath := path.Clean("/" + r.URL.Path)

	file, err := h.fileSystem.Open(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			if isStaticPath(cleanPath) {
				http.NotFound(w, r)
				return
			}
			h.serveSPAFallback(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if stat.IsDir() {
		h.serveSPAFallback(w, r)
		return
	}

	h.serveFile(w, r, file, cleanPath)
}

// serveFile serves a specific file with appropriate headers
func (h *SPAHandler) serveFile(w http.ResponseWriter, r *http.Request, file http.File, filePath string) {
	contentType := getContentType(filePath)
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if strings.HasPrefix(filePath, assetsPrefix) {
		w.Header().Set("Cache-Control", cacheControlAssets)
	} else {
		w.Header().Set("Cache-Control", cacheControlIndex)
	}

	if _, err := io.Copy(w, file); err != nil {
		http.Error(w, "Failed to serve file", http.StatusInternalServerError)
		return
	}
}

// serveSPAFallback serves the index.html for SPA routing
func (h *SPAHandler) serveSPAFallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheControlIndex)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(h.indexFile); err != nil {
		http.Error(w, "Failed to serve SPA fallback", http.StatusInternalServerError)
		return
	}
}

var mimeTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json; charset=utf-8",
	".map":   "application/json; charset=utf-8",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".eot":   "application/vnd.ms-fontobject",
}

// isStaticPath reports whether a missing path should answer 404 instead of
// index.html. Client routes may end in dotted capability ids like 1.1.4.
func isStaticPath(p string) bool {
	if strings.HasPrefix(p, assetsPrefix) {
		return true
	}
	_, known := mimeTypes[path.Ext(p)]
	return known
}

// getContentType returns the content type for common file extensions
func getContentType(filePath string) string {
	ext := path.Ext(filePath)
	return mimeTypes[ext]
}
