package restapi

import (
	"net/http"
	"net/url"

	"wayfinder.app/internal/geodesy"
	"wayfinder.app/internal/models"
	"wayfinder.app/internal/utils"
)

const defaultPathSegments = 32

// parseRoutePoints reads the fromLat/fromLon/toLat/toLon query parameters.
func parseRoutePoints(queryParams url.Values) (from, to geodesy.GeoPoint, fieldErrors map[string][]string) {
	fromLat, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "fromLat", nil)
	fromLon, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "fromLon", fieldErrors)
	toLat, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "toLat", fieldErrors)
	toLon, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "toLon", fieldErrors)
	if len(fieldErrors) > 0 {
		return from, to, fieldErrors
	}

	fieldErrors = utils.ValidatePointParams("fromLat", "fromLon", fromLat, fromLon, fieldErrors)
	fieldErrors = utils.ValidatePointParams("toLat", "toLon", toLat, toLon, fieldErrors)

	return geodesy.GeoPoint{Lat: fromLat, Lon: fromLon}, geodesy.GeoPoint{Lat: toLat, Lon: toLon}, fieldErrors
}

func (api *RestAPI) navigationHandler(w http.ResponseWriter, r *http.Request) {
	from, to, fieldErrors := parseRoutePoints(r.URL.Query())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewNavigationEntry(from, to)))
}

func (api *RestAPI) pathHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	from, to, fieldErrors := parseRoutePoints(queryParams)
	segments, fieldErrors := utils.ParseIntParamDefault(queryParams, "segments", defaultPathSegments, fieldErrors)
	if _, ok := fieldErrors["segments"]; !ok {
		if err := utils.ValidateSegments(segments); err != nil {
			fieldErrors["segments"] = append(fieldErrors["segments"], err.Error())
		}
	}

	format := queryParams.Get("format")
	switch format {
	case "", "points", "polyline", "geojson":
	default:
		fieldErrors["format"] = append(fieldErrors["format"], `format must be one of "points", "polyline", "geojson"`)
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	points := geodesy.GreatCirclePath(from, to, segments)
	entry := models.PathEntry{
		Format: format,
		Length: from.DistanceTo(to),
	}

	switch format {
	case "polyline":
		entry.Polyline = geodesy.EncodePolyline(points)
	case "geojson":
		geoJSON, err := geodesy.PathGeoJSON(points)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		entry.GeoJSON = geoJSON
	default:
		entry.Format = "points"
		entry.Points = points
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
