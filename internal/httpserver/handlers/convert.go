package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/extlink/internal/domain"
	"github.com/MrSnakeDoc/extlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/extlink/internal/logger"
)

type linkRequest struct {
	URL    string `json:"url"`
	Origin string `json:"origin"`
	Href   string `json:"href"`
}

// internalURL picks the explicit url, or builds the download link from the
// page origin and item href.
func (l linkRequest) internalURL() (string, error) {
	if u := strings.TrimSpace(l.URL); u != "" {
		return u, nil
	}
	if o := strings.TrimSpace(l.Origin); o != "" {
		return domain.DownloadURL(o, strings.TrimSpace(l.Href)), nil
	}
	return "", fmt.Errorf("%w: url or origin is required", errBadRequest)
}

// Convert returns the external form of a URL without recording it.
func Convert(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := linkRequest{URL: q.Get("url"), Origin: q.Get("origin"), Href: q.Get("href")}

		internal, err := req.internalURL()
		if err != nil {
			writeError(w, d, err)
			return
		}

		res, err := d.Resolver.Convert(r.Context(), internal)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

type copyResponse struct {
	External string               `json:"external"`
	Original string               `json:"original"`
	Mapped   bool                 `json:"mapped"`
	Recorded bool                 `json:"recorded"`
	Entry    *domain.HistoryEntry `json:"entry,omitempty"`
}

// Copy converts a URL and, when a mapping applied, records it in history.
// This backs the host's "copy external link" action.
func Copy(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req linkRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, d, err)
			return
		}
		internal, err := req.internalURL()
		if err != nil {
			writeError(w, d, err)
			return
		}

		ctx := r.Context()
		res, err := d.Resolver.Convert(ctx, internal)
		if err != nil {
			writeError(w, d, err)
			return
		}

		out := copyResponse{External: res.External, Original: res.Original, Mapped: res.Mapped}
		if res.Mapped {
			entry, inserted, err := d.History.Record(ctx, res.External, res.Original)
			if err != nil {
				writeError(w, d, err)
				return
			}
			out.Recorded = inserted
			out.Entry = &entry
		} else {
			d.Logger.Debug("no mapping matched, not recording",
				logger.String("url", internal))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Available reports whether any mapping is enabled.
func Available(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := d.Resolver.HasAvailableMappings(r.Context())
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"available": ok})
	}
}

// Match reports whether an enabled mapping covers the given page origin.
func Match(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.URL.Query().Get("origin"))
		if origin == "" {
			writeError(w, d, fmt.Errorf("%w: origin is required", errBadRequest))
			return
		}
		ok, err := d.Resolver.HasMatchingMapping(r.Context(), origin)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"match": ok})
	}
}
