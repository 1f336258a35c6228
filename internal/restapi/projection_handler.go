package restapi

import (
	"net/http"

	"wayfinder.app/internal/models"
	"wayfinder.app/internal/projection"
	"wayfinder.app/internal/utils"
)

func (api *RestAPI) projectionHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	defaults := api.DefaultViewport()

	heading, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "heading", nil)
	bearing, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "bearing", fieldErrors)
	width, fieldErrors := utils.ParseFloatParamDefault(queryParams, "width", defaults.Width, fieldErrors)
	height, fieldErrors := utils.ParseFloatParamDefault(queryParams, "height", defaults.Height, fieldErrors)
	fov, fieldErrors := utils.ParseFloatParamDefault(queryParams, "fov", api.FOV(), fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := utils.ValidateFinite(heading); err != nil {
		fieldErrors["heading"] = append(fieldErrors["heading"], err.Error())
	}
	if err := utils.ValidateFinite(bearing); err != nil {
		fieldErrors["bearing"] = append(fieldErrors["bearing"], err.Error())
	}
	if err := utils.ValidateFOV(fov); err != nil {
		fieldErrors["fov"] = append(fieldErrors["fov"], err.Error())
	}
	fieldErrors = utils.ValidateViewportParams(width, height, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	vp := projection.Viewport{Width: width, Height: height}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewProjectionEntry(heading, bearing, fov, vp)))
}
