package chi

import (
	_ "embed"
	"net/http"
)

//go:embed web/index.html
var indexHTML []byte

// WebClient handles GET / with the bundled three.js viewer.
func (s *Server) WebClient(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}
