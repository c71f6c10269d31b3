// Package iohttp exposes an agency.Store as a JSON REST API.
// This is an impure I/O package built on net/http.
package iohttp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnspace/pkg/agency"
)

// Welcome is the text returned by GET /.
const Welcome = "Welcome to the Interplanetary Space Travel Agency API!"

// maxBodySize limits request bodies to 1MB.
const maxBodySize = 1 << 20

type handler struct {
	store agency.Store
	enc   gnfmt.GNjson
}

// NewHandler creates routes for the agency API. Every request is
// logged and gets an X-Request-ID header.
func NewHandler(store agency.Store) http.Handler {
	h := handler{store: store, enc: gnfmt.GNjson{Pretty: true}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.welcome)
	mux.HandleFunc("GET /scientists", h.listScientists)
	mux.HandleFunc("POST /scientists", h.createScientist)
	mux.HandleFunc("GET /scientists/{id}", h.getScientist)
	mux.HandleFunc("PATCH /scientists/{id}", h.updateScientist)
	mux.HandleFunc("DELETE /scientists/{id}", h.deleteScientist)
	mux.HandleFunc("GET /planets", h.listPlanets)
	mux.HandleFunc("POST /missions", h.createMission)

	return logRequests(mux)
}

func (h handler) welcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, Welcome)
}

func (h handler) listScientists(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListScientists(r.Context())
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}

	res := make([]ScientistSummary, len(list))
	for i := range list {
		res[i] = newScientistSummary(&list[i])
	}
	h.writeJSON(w, r, http.StatusOK, res)
}

func (h handler) createScientist(w http.ResponseWriter, r *http.Request) {
	var in agency.ScientistInput
	if err := h.decode(w, r, &in); err != nil {
		h.writeError(w, r, "", err)
		return
	}

	sci, err := h.store.CreateScientist(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, newScientistDetail(sci))
}

func (h handler) getScientist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.writeNotFound(w, r, "Scientist")
		return
	}

	sci, err := h.store.GetScientist(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "Scientist", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, newScientistDetail(sci))
}

func (h handler) updateScientist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.writeNotFound(w, r, "Scientist")
		return
	}

	// an unknown scientist is a 404 whatever the body holds
	if _, err := h.store.GetScientist(r.Context(), id); err != nil {
		h.writeError(w, r, "Scientist", err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}
	patch, err := h.decodePatch(body)
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}

	sci, err := h.store.UpdateScientist(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, "Scientist", err)
		return
	}
	h.writeJSON(w, r, http.StatusAccepted, newScientistDetail(sci))
}

func (h handler) deleteScientist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.writeNotFound(w, r, "Scientist")
		return
	}

	if err := h.store.DeleteScientist(r.Context(), id); err != nil {
		h.writeError(w, r, "Scientist", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handler) listPlanets(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListPlanets(r.Context())
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}

	res := make([]PlanetView, len(list))
	for i := range list {
		res[i] = newPlanetView(&list[i])
	}
	h.writeJSON(w, r, http.StatusOK, res)
}

func (h handler) createMission(w http.ResponseWriter, r *http.Request) {
	var in agency.MissionInput
	if err := h.decode(w, r, &in); err != nil {
		h.writeError(w, r, "", err)
		return
	}

	m, err := h.store.CreateMission(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, newMissionDetail(m))
}

// pathID parses the {id} wildcard. Ids that are not integers cannot
// match any record.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, agency.ValidationError(
			fmt.Sprintf("cannot read request body: %s", err))
	}
	return body, nil
}

func (h handler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err = h.enc.Decode(body, v); err != nil {
		return invalidJSON(err)
	}
	return nil
}

// decodePatch keeps absent keys nil. A key present with null is
// treated as an empty value, so validation rejects it.
func (h handler) decodePatch(body []byte) (agency.ScientistPatch, error) {
	var res agency.ScientistPatch
	var raw map[string]json.RawMessage
	if err := h.enc.Decode(body, &raw); err != nil {
		return res, invalidJSON(err)
	}

	fields := []struct {
		key string
		val **string
	}{
		{"name", &res.Name},
		{"field_of_study", &res.FieldOfStudy},
	}

	var msgs []string
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		var s string
		if !isNull(v) {
			if err := h.enc.Decode(v, &s); err != nil {
				msgs = append(msgs, fmt.Sprintf("%s must be a string", f.key))
				continue
			}
		}
		*f.val = &s
	}
	if len(msgs) > 0 {
		return res, agency.ValidationError(msgs...)
	}
	return res, nil
}

// isNull reports a JSON null. The decoder leaves a null RawMessage
// empty rather than holding the literal.
func isNull(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func invalidJSON(err error) error {
	return agency.ValidationError(fmt.Sprintf("invalid JSON body: %s", err))
}

func (h handler) writeJSON(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	v any,
) {
	res, err := h.enc.Encode(v)
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h handler) writeNotFound(
	w http.ResponseWriter,
	r *http.Request,
	entity string,
) {
	h.writeJSON(w, r, http.StatusNotFound,
		errorBody{Error: entity + " not found"})
}

// writeError converts store errors to responses. Errors without a
// known code are logged and hidden from the client.
func (h handler) writeError(
	w http.ResponseWriter,
	r *http.Request,
	entity string,
	err error,
) {
	switch {
	case agency.IsNotFound(err) && entity != "":
		h.writeNotFound(w, r, entity)
	case agency.IsInvalid(err):
		h.writeJSON(w, r, http.StatusBadRequest,
			errorsBody{Errors: agency.Messages(err)})
	default:
		slog.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(RequestIDHeader),
			"error", err,
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": "internal server error"}`)
	}
}
