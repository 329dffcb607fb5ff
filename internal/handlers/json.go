// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hofhaeckerei/solr-utility/internal/models"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// subjectParam reads the {table} and {uid} URL parameters.
func subjectParam(r *http.Request) (models.Subject, string) {
	table := chi.URLParam(r, "table")
	if msg := validateTable(table); msg != "" {
		return models.Subject{}, msg
	}
	uid, err := strconv.ParseInt(chi.URLParam(r, "uid"), 10, 64)
	if err != nil || uid < 0 {
		return models.Subject{}, "uid must be a non-negative integer"
	}
	return models.Subject{Table: table, UID: uid}, ""
}

// languageParam reads the optional lang query parameter. It defaults to 0.
func languageParam(r *http.Request) (int, string) {
	v := r.URL.Query().Get("lang")
	if v == "" {
		return 0, ""
	}
	lang, err := strconv.Atoi(v)
	if err != nil || lang < 0 {
		return 0, "lang must be a non-negative integer"
	}
	return lang, ""
}
