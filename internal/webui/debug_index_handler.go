package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"wayfinder.app/internal/tracker"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "config":
		cfg := webUI.Config
		cfg.ApiKeys = []string{"<redacted>"}
		data = cfg
		title = "Configuration"
	case "targets":
		if c := webUI.Catalog(); c != nil {
			data = c.List()
			title = "Targets from " + c.Source()
		} else {
			data = []string{}
			title = "Targets (no catalog loaded)"
		}
	case "sessions":
		vp := webUI.DefaultViewport()
		sessions := webUI.Sessions.List()
		overlays := make([]tracker.Overlay, 0, len(sessions))
		for _, s := range sessions {
			overlays = append(overlays, s.Overlay(vp))
		}
		data = overlays
		title = "Sessions"
	default:
		data = map[string]string{
			"error": "Please use one of the following: config, targets, sessions.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
