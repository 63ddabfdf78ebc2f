package handler

import (
	"net/http"
	"os"
	"path/filepath"
)

type StaticHandler struct {
	dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// Index serves index.html from the static directory, with a plain-text hint
// when no frontend has been dropped in yet.
func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(h.dir, "index.html")
	_, err := os.Stat(index)
	if err != nil {
		http.Error(w, "Place index.html in ./"+h.dir, http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, index)
}

// Files serves the static directory under /static/.
func (h *StaticHandler) Files() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(h.dir)))
}
