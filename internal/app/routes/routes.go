package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/estudiantes/internal/app/controllers"
)

// Route binds one method and path to a handler
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// StudentRoutes returns the HTML and JSON student routes
func StudentRoutes(view *controllers.StudentViewController, api *controllers.StudentAPIController) []Route {
	return []Route{
		// HTML views
		{http.MethodGet, "/estudiantes", view.Index},
		{http.MethodGet, "/estudiantes/new", view.NewForm},
		{http.MethodPost, "/estudiantes/new", view.Create},
		{http.MethodGet, "/estudiantes/update/:id", view.EditForm},
		{http.MethodPost, "/estudiantes/update/:id", view.Update},
		{http.MethodGet, "/estudiantes/delete/:id", view.Delete},

		// JSON API
		{http.MethodPost, "/estudiantes", api.CreateStudent},
		{http.MethodPut, "/estudiantes/:id", api.UpdateStudent},
	}
}

// HealthRoutes returns the probe routes
func HealthRoutes(health *controllers.HealthController) []Route {
	return []Route{
		{http.MethodGet, "/ping", health.Ping},
		{http.MethodGet, "/health", health.Health},
	}
}

// Register adds every route to the router
func Register(router gin.IRoutes, routes ...[]Route) {
	for _, group := range routes {
		for _, r := range group {
			router.Handle(r.Method, r.Path, r.Handler)
		}
	}
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	viewController *controllers.StudentViewController,
	apiController *controllers.StudentAPIController,
	healthController *controllers.HealthController,
) {
	Register(router,
		StudentRoutes(viewController, apiController),
		HealthRoutes(healthController),
	)
}
