package main

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/Simplici0/soapworks/internal/catalog"
	"github.com/Simplici0/soapworks/internal/export"
	"github.com/Simplici0/soapworks/web"
)

type baseViewData struct {
	PageTitle       string
	HeroTitle       string
	HeroDescription string
	HeroImage       string
	ActiveTab       string
	Tabs            []catalog.Tab
	ErrorMessage    string
	SuccessMessage  string
	Year            int
}

func newBaseViewData(tab catalog.Tab) baseViewData {
	return baseViewData{
		HeroTitle:       tab.Title,
		HeroDescription: tab.Description,
		HeroImage:       tab.Image,
		ActiveTab:       tab.ID,
		Tabs:            catalog.Tabs,
		Year:            time.Now().Year(),
	}
}

var templateFuncs = template.FuncMap{
	"num": export.FormatNumber,
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(web.Templates(), "layout.html", page)
	if err != nil {
		log.Printf("parse template %s: %v", page, err)
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Printf("render template %s: %v", page, err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode json response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
