package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scenescribe/srt"
	"scenescribe/store"
	"scenescribe/types"
)

// RegisterExportRoutes registers subtitle export endpoints.
func RegisterExportRoutes(r *gin.Engine, projects store.ProjectStore) {
	g := r.Group("/api/projects/:name/export")
	g.GET("/srt", func(c *gin.Context) { handleExportSRT(c, projects, false) })
	g.GET("/talking-srt", func(c *gin.Context) { handleExportSRT(c, projects, true) })
}

// handleExportSRT renders either the description track (non-TALKING scenes)
// or the talking track (TALKING intervals only).
func handleExportSRT(c *gin.Context, projects store.ProjectStore, talking bool) {
	project, err := projects.Load(c.Request.Context(), c.Param("name"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var track []types.Scene
	for _, s := range project.Scenes {
		if s.IsTalking() == talking {
			track = append(track, s)
		}
	}

	filename := project.Name + ".srt"
	if talking {
		filename = project.Name + "_talking.srt"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/x-subrip", []byte(srt.Format(track)))
}
