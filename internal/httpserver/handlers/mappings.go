package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/extlink/internal/httpserver/deps"
)

type mappingRequest struct {
	Internal string `json:"internal"`
	External string `json:"external"`
	Enabled  *bool  `json:"enabled"`
}

func ListMappings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mappings, err := d.Store.GetMappings(r.Context())
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, mappings)
	}
}

func AddMapping(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mappingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, d, err)
			return
		}
		m, err := d.Store.AddMapping(r.Context(), req.Internal, req.External)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

// UpdateMapping replaces a mapping's fields. enabled defaults to true when
// omitted. Unknown ids succeed without effect.
func UpdateMapping(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mappingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, d, err)
			return
		}
		enabled := req.Enabled == nil || *req.Enabled

		id := chi.URLParam(r, "id")
		if err := d.Store.UpdateMapping(r.Context(), id, req.Internal, req.External, enabled); err != nil {
			writeError(w, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func RemoveMapping(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.RemoveMapping(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
