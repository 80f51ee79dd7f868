package handler

import (
	"net/http"

	"github.com/pkordes/hr-ops/spec"
)

// getOpenAPI serves the embedded API document at GET /openapi.yaml.
func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
