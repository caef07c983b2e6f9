package gateway

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxAvatarBytes caps avatar uploads buffered through the gateway.
const maxAvatarBytes = 10 << 20

// handleUploadProxy streams backend-hosted images so browser clients can
// load them same-origin without carrying the bearer token.
func (s *Server) handleUploadProxy(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	if path == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	body, contentType, err := s.api.FetchUpload(r.Context(), path)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	defer body.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, body)
}

func (s *Server) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer file.Close()

	user, err := s.api.UploadAvatar(r.Context(), header.Filename, file)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.session.SetUser(user)
	writeJSON(w, http.StatusOK, user)
}
