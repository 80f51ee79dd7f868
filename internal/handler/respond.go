package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/hr-ops/internal/domain"
)

// writeJSON encodes v with the given status. Encoding errors are ignored:
// the status line has already been sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes the JSON request body into dst and validates it.
// It writes the error response itself and reports whether the handler
// should continue.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge,
				errorBody(codeTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
			return false
		}
		writeRequestError(w, "invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeRequestError(w, validationMessage(err))
		return false
	}
	return true
}

// validationMessage renders validator errors as "field: rule" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s: failed %s", fe.Field(), rule))
	}
	return strings.Join(parts, "; ")
}

// pathID binds the {id} path parameter the same way generated oapi-codegen
// servers do.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || id <= 0 {
		writeRequestError(w, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// queryParam binds a form-style query parameter into dest. Optional
// parameters must be bound into a pointer (dest is then a **T) and stay nil
// when absent.
func queryParam(w http.ResponseWriter, r *http.Request, name string, required bool, dest any) bool {
	if err := runtime.BindQueryParameter("form", false, required, name, r.URL.Query(), dest); err != nil {
		writeRequestError(w, fmt.Sprintf("invalid query parameter %s: %v", name, err))
		return false
	}
	return true
}

// queryDate parses a YYYY-MM-DD query value.
func queryDate(w http.ResponseWriter, name, value string) (time.Time, bool) {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		writeRequestError(w, fmt.Sprintf("invalid query parameter %s: expected YYYY-MM-DD", name))
		return time.Time{}, false
	}
	return t, true
}
