package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"langcat/internal/render"
	"langcat/pkg/browser"
	"langcat/pkg/model"
)

// CatalogHandler serves the page, the card fragment and the JSON listing.
type CatalogHandler struct {
	ctrl     *browser.Controller
	renderer *render.Renderer
}

func NewCatalogHandler(ctrl *browser.Controller, r *render.Renderer) *CatalogHandler {
	return &CatalogHandler{ctrl: ctrl, renderer: r}
}

// LanguagesResponse is the /api/languages payload.
type LanguagesResponse struct {
	Term      string           `json:"term"`
	Count     int              `json:"count"`
	Languages []model.Language `json:"languages"`
}

// HandlePage renders the full page for ?q=. A missing q is the empty term.
func (h *CatalogHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	v, _ := h.ctrl.Handle(browser.Input("page", term))

	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, v, term); err != nil {
		slog.Error("Failed to render page", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Failed to write page response", "error", err)
	}
}

// HandleCards renders only the card container contents.
func (h *CatalogHandler) HandleCards(w http.ResponseWriter, r *http.Request) {
	v, _ := h.ctrl.Handle(browser.Input("fragment", r.URL.Query().Get("q")))

	html, err := h.renderer.Fragment(v)
	if err != nil {
		slog.Error("Failed to render cards", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(html)); err != nil {
		slog.Error("Failed to write cards response", "error", err)
	}
}

// HandleLanguages returns the filtered records as JSON.
func (h *CatalogHandler) HandleLanguages(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	records, err := h.ctrl.Search(term)

	w.Header().Set("Content-Type", "application/json")
	if errors.Is(err, browser.ErrUnavailable) {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(`{"error":"catalog unavailable"}`)); err != nil {
			slog.Error("Failed to write languages response", "error", err)
		}
		return
	}

	resp := LanguagesResponse{Term: term, Count: len(records), Languages: records}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode languages response", "error", err)
	}
}
