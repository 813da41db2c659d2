package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type jsonError struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	s.writeResult(w, data)
}

// writeError renders err as {"error": "..."} with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Warn("request failed", zap.Int("status", status), zap.Error(err))

	data, merr := json.Marshal(&jsonError{Error: err.Error()})
	if merr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	s.writeResult(w, data)
}

func (s *Server) writeResult(w http.ResponseWriter, data []byte) {
	if _, err := w.Write(data); err != nil {
		s.log.Warn("writing response", zap.Error(err))
	}
}
