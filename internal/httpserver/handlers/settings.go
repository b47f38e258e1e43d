package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/extlink/internal/domain"
	"github.com/MrSnakeDoc/extlink/internal/httpserver/deps"
)

func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := d.Settings.Get(r.Context())
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// PutSettings accepts {"maxHistory": N}. N may be sent as a number or a
// numeric string; validation happens in the settings manager.
func PutSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MaxHistory any `json:"maxHistory"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, d, err)
			return
		}
		s, err := d.Settings.Set(r.Context(), req.MaxHistory)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func GetButtonPosition(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos, err := d.Store.GetButtonPosition(r.Context())
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, pos)
	}
}

func PutButtonPosition(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Top  json.Number `json:"top"`
			Edge domain.Edge `json:"edge"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, d, err)
			return
		}
		top, err := req.Top.Int64()
		if err != nil {
			writeError(w, d, fmt.Errorf("%w: top must be an integer", errBadRequest))
			return
		}

		pos := domain.ButtonPosition{Top: int(top), Edge: req.Edge}
		if err := d.Store.SaveButtonPosition(r.Context(), pos); err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, pos)
	}
}
