package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams returns the named route parameter with a trailing ".json"
// removed. GTFS stop IDs may themselves contain ".json", so only the final
// suffix is trimmed.
func ExtractIDFromParams(r *http.Request, paramName string) string {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(paramName)
	return strings.TrimSuffix(raw, ".json")
}
