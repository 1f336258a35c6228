package restapi

import (
	"errors"
	"net/http"
	"net/url"

	"wayfinder.app/internal/catalog"
	"wayfinder.app/internal/geodesy"
	"wayfinder.app/internal/models"
	"wayfinder.app/internal/utils"
)

const (
	defaultMaxCount = 100
	maxMaxCount     = 1000
)

func parseMaxCount(params url.Values, fieldErrors map[string][]string) (int, map[string][]string) {
	maxCount, fieldErrors := utils.ParseIntParamDefault(params, "maxCount", defaultMaxCount, fieldErrors)
	if maxCount < 1 || maxCount > maxMaxCount {
		fieldErrors["maxCount"] = append(fieldErrors["maxCount"], "maxCount must be between 1 and 1000")
	}
	return maxCount, fieldErrors
}

func (api *RestAPI) targetsHandler(w http.ResponseWriter, r *http.Request) {
	maxCount, fieldErrors := parseMaxCount(r.URL.Query(), nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	targets := []catalog.Target{}
	if c := api.Catalog(); c != nil {
		targets = c.List()
	}

	limitExceeded := len(targets) > maxCount
	if limitExceeded {
		targets = targets[:maxCount]
	}

	api.sendResponse(w, r, models.NewListResponse(targets, limitExceeded))
}

func (api *RestAPI) targetsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "lat", nil)
	lon, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "lon", fieldErrors)
	radius, fieldErrors := utils.ParseFloatParamDefault(queryParams, "radius", catalog.DefaultRadius, fieldErrors)
	maxCount, fieldErrors := parseMaxCount(queryParams, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if locationErrors := utils.ValidateLocationParams(lat, lon, radius); len(locationErrors) > 0 {
		api.validationErrorResponse(w, r, locationErrors)
		return
	}

	ctx := r.Context()
	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	results := []catalog.TargetWithDistance{}
	if c := api.Catalog(); c != nil {
		// Ask for one extra so truncation can be reported.
		results = c.Nearby(geodesy.GeoPoint{Lat: lat, Lon: lon}, radius, maxCount+1)
	}

	limitExceeded := len(results) > maxCount
	if limitExceeded {
		results = results[:maxCount]
	}

	api.sendResponse(w, r, models.NewListResponse(results, limitExceeded))
}

func (api *RestAPI) targetHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	target, err := api.lookupTarget(id)
	if errors.Is(err, catalog.ErrTargetNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(target))
}

func (api *RestAPI) lookupTarget(id string) (catalog.Target, error) {
	c := api.Catalog()
	if c == nil {
		return catalog.Target{}, catalog.ErrTargetNotFound
	}
	return c.Target(id)
}
