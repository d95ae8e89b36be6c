package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dareboard/internal/apiutil"
	"dareboard/internal/domain/dare"
	middlewarex "dareboard/internal/http/middleware"
	"dareboard/internal/services/data"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ListDares handles dare listing requests using the data service
func ListDares(dataService *data.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := parseListRequest(r)

		response, err := dataService.ListDares(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// ListActs handles act listing requests, optionally scoped by ?dare=
func ListActs(dataService *data.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := parseListRequest(r)
		req.DareID = strings.TrimSpace(r.URL.Query().Get("dare"))

		response, err := dataService.ListActs(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// GetDare returns one dare wrapped as {"data": {...}}
func GetDare(dataService *data.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := dataService.GetDare(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": d})
	}
}

// parseListRequest parses HTTP query parameters into ListRequest. Paging
// values are read leniently: "3abc" is page 3, garbage is the default.
func parseListRequest(r *http.Request) data.ListRequest {
	q := r.URL.Query()
	p := apiutil.ValidatePaginationParams(apiutil.PageInput{
		Page:  q.Get("page"),
		Limit: firstNonEmpty(q.Get("limit"), q.Get("per_page")),
	})

	req := data.ListRequest{
		Page:       p.Page,
		Limit:      p.Limit,
		Difficulty: dare.Difficulty(strings.ToLower(q.Get("difficulty"))),
		Status:     dare.Status(strings.ToLower(q.Get("status"))),
		Creator:    strings.TrimSpace(q.Get("creator")),
		Search:     strings.TrimSpace(q.Get("q")),
		Sort:       dare.SortKey(strings.ToLower(q.Get("sort"))),
	}
	if req.Creator == "me" {
		if id, ok := middlewarex.ViewerID(r.Context()); ok {
			req.Creator = id
		}
	}
	return req
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, data.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: apiutil.ErrNotFound.Message(),
			Code:  string(apiutil.ErrNotFound),
		})
		return
	}

	log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: apiutil.ErrServerError.Message(),
		Code:  string(apiutil.ErrServerError),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("could not write response")
	}
}
