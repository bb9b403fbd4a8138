package response

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/view"
)

// HTML renders page into a buffer and writes it with statusCode. A template
// failure is logged and answered with a plain 500.
func HTML(w http.ResponseWriter, r *http.Request, renderer *view.Renderer, statusCode int, page string, data interface{}) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, page, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = buf.WriteTo(w)
}

// Redirect answers a form post with 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// File sends an attachment.
func File(w http.ResponseWriter, contentType, filename string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}
