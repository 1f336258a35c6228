package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"wayfinder.app/internal/catalog"
	"wayfinder.app/internal/geodesy"
	"wayfinder.app/internal/models"
	"wayfinder.app/internal/projection"
	"wayfinder.app/internal/tracker"
	"wayfinder.app/internal/utils"
)

const maxBodyBytes = 1 << 20

// targetRequest names a target either by coordinates or by catalog ID.
type targetRequest struct {
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	TargetID string   `json:"targetId"`
}

type locationRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// headingRequest carries either a compass heading or a raw magnetometer reading.
type headingRequest struct {
	Heading *float64 `json:"heading"`
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
}

func (api *RestAPI) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"Invalid JSON body."}})
		return false
	}
	return true
}

func requirePoint(lat, lon *float64) (geodesy.GeoPoint, map[string][]string) {
	fieldErrors := make(map[string][]string)
	if lat == nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], `Missing required field "lat".`)
	}
	if lon == nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], `Missing required field "lon".`)
	}
	if len(fieldErrors) > 0 {
		return geodesy.GeoPoint{}, fieldErrors
	}
	return geodesy.GeoPoint{Lat: *lat, Lon: *lon}, utils.ValidatePointParams("lat", "lon", *lat, *lon, fieldErrors)
}

// resolveTarget turns a targetRequest into coordinates. It writes the error
// response itself and returns false on failure.
func (api *RestAPI) resolveTarget(w http.ResponseWriter, r *http.Request, req targetRequest) (geodesy.GeoPoint, bool) {
	if req.TargetID != "" {
		if err := utils.ValidateID(req.TargetID); err != nil {
			api.fieldErrorResponse(w, r, "targetId", err)
			return geodesy.GeoPoint{}, false
		}
		target, err := api.lookupTarget(req.TargetID)
		if errors.Is(err, catalog.ErrTargetNotFound) {
			api.sendNotFound(w, r)
			return geodesy.GeoPoint{}, false
		}
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return geodesy.GeoPoint{}, false
		}
		return target.Point(), true
	}

	point, fieldErrors := requirePoint(req.Lat, req.Lon)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return geodesy.GeoPoint{}, false
	}
	return point, true
}

// sessionFromRequest looks up the :id session, writing 400/404 responses as needed.
func (api *RestAPI) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*tracker.Session, bool) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return nil, false
	}

	session, err := api.Sessions.Get(id)
	if errors.Is(err, tracker.ErrSessionNotFound) {
		api.sendNotFound(w, r)
		return nil, false
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return nil, false
	}
	return session, true
}

func (api *RestAPI) viewportFromRequest(w http.ResponseWriter, r *http.Request) (projection.Viewport, bool) {
	defaults := api.DefaultViewport()
	queryParams := r.URL.Query()

	width, fieldErrors := utils.ParseFloatParamDefault(queryParams, "width", defaults.Width, nil)
	height, fieldErrors := utils.ParseFloatParamDefault(queryParams, "height", defaults.Height, fieldErrors)
	if len(fieldErrors) == 0 {
		fieldErrors = utils.ValidateViewportParams(width, height, fieldErrors)
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return projection.Viewport{}, false
	}
	return projection.Viewport{Width: width, Height: height}, true
}

func (api *RestAPI) sendOverlay(w http.ResponseWriter, r *http.Request, session *tracker.Session, vp projection.Viewport) {
	api.sendResponse(w, r, models.NewEntryResponse(session.Overlay(vp)))
}

func (api *RestAPI) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	vp, ok := api.viewportFromRequest(w, r)
	if !ok {
		return
	}

	var req targetRequest
	if !api.decodeBody(w, r, &req) {
		return
	}

	target, ok := api.resolveTarget(w, r, req)
	if !ok {
		return
	}

	session, err := api.Sessions.Create(target, req.TargetID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendOverlay(w, r, session, vp)
}

func (api *RestAPI) sessionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := api.sessionFromRequest(w, r)
	if !ok {
		return
	}
	vp, ok := api.viewportFromRequest(w, r)
	if !ok {
		return
	}
	api.sendOverlay(w, r, session, vp)
}

func (api *RestAPI) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.Sessions.Delete(id); err != nil {
		if errors.Is(err, tracker.ErrSessionNotFound) {
			api.sendNotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(nil))
}

func (api *RestAPI) sessionLocationHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := api.sessionFromRequest(w, r)
	if !ok {
		return
	}
	vp, ok := api.viewportFromRequest(w, r)
	if !ok {
		return
	}

	var req locationRequest
	if !api.decodeBody(w, r, &req) {
		return
	}

	point, fieldErrors := requirePoint(req.Lat, req.Lon)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := session.UpdateLocation(point); err != nil {
		api.fieldErrorResponse(w, r, "location", err)
		return
	}

	api.sendOverlay(w, r, session, vp)
}

func (api *RestAPI) sessionHeadingHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := api.sessionFromRequest(w, r)
	if !ok {
		return
	}
	vp, ok := api.viewportFromRequest(w, r)
	if !ok {
		return
	}

	var req headingRequest
	if !api.decodeBody(w, r, &req) {
		return
	}

	var err error
	switch {
	case req.Heading != nil:
		err = session.UpdateHeading(*req.Heading)
	case req.X != nil && req.Y != nil:
		err = session.UpdateMagnetometer(*req.X, *req.Y)
	default:
		api.validationErrorResponse(w, r, map[string][]string{
			"heading": {`Provide "heading" or both "x" and "y".`},
		})
		return
	}
	if err != nil {
		api.fieldErrorResponse(w, r, "heading", err)
		return
	}

	api.sendOverlay(w, r, session, vp)
}

func (api *RestAPI) sessionTargetHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := api.sessionFromRequest(w, r)
	if !ok {
		return
	}
	vp, ok := api.viewportFromRequest(w, r)
	if !ok {
		return
	}

	var req targetRequest
	if !api.decodeBody(w, r, &req) {
		return
	}

	target, ok := api.resolveTarget(w, r, req)
	if !ok {
		return
	}

	if err := session.SetTarget(target, req.TargetID); err != nil {
		api.fieldErrorResponse(w, r, "target", err)
		return
	}

	api.sendOverlay(w, r, session, vp)
}
