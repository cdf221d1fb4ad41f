package xhttp

import (
	"net/http"

	go_json "github.com/goccy/go-json"
)

func WriteJSON(w http.ResponseWriter, status int, data any) {
	SetHeaderContentTypeApplicationJSON(w)
	w.WriteHeader(status)
	_ = go_json.NewEncoder(w).Encode(data)
}

func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteFresh writes data as JSON that clients must not cache; rotation and
// gradient payloads go stale within a second.
func WriteFresh(w http.ResponseWriter, data any) {
	SetHeaderCacheControlNoStore(w)
	WriteOK(w, data)
}
