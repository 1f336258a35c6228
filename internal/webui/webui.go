// Package webui serves a development-only page that dumps live server state.
package webui

import (
	"wayfinder.app/internal/app"
)

type WebUI struct {
	*app.Application
}

func New(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}
