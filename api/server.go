package api

import (
	"github.com/gin-gonic/gin"

	"scenescribe/store"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(projects store.ProjectStore) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterHealthRoutes(r)
	RegisterProjectRoutes(r, projects)
	RegisterSceneRoutes(r, projects)
	RegisterExportRoutes(r, projects)
	return r
}
