package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scenescribe/store"
	"scenescribe/types"
)

// RegisterProjectRoutes registers project persistence endpoints.
func RegisterProjectRoutes(r *gin.Engine, projects store.ProjectStore) {
	g := r.Group("/api/projects")
	g.GET("", func(c *gin.Context) { handleListProjects(c, projects) })
	g.GET("/:name", func(c *gin.Context) { handleGetProject(c, projects) })
	g.PUT("/:name", func(c *gin.Context) { handlePutProject(c, projects) })
	g.DELETE("/:name", func(c *gin.Context) { handleDeleteProject(c, projects) })
}

// PutProjectRequest is the save/replace payload. Scenes may be empty for a
// freshly created project.
type PutProjectRequest struct {
	VideoName  string           `json:"video_name"`
	Thumbnail  string           `json:"thumbnail"`
	Scenes     []types.Scene    `json:"scenes"`
	OutputURLs types.OutputURLs `json:"output_urls"`
}

func handleListProjects(c *gin.Context, projects store.ProjectStore) {
	names, err := projects.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": names})
}

func handleGetProject(c *gin.Context, projects store.ProjectStore) {
	project, err := projects.Load(c.Request.Context(), c.Param("name"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, project)
}

func handlePutProject(c *gin.Context, projects store.ProjectStore) {
	var req PutProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !types.NonOverlapping(req.Scenes) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scenes overlap"})
		return
	}

	name := c.Param("name")
	project := &types.Project{
		Name:       name,
		VideoName:  req.VideoName,
		Thumbnail:  req.Thumbnail,
		Scenes:     req.Scenes,
		OutputURLs: req.OutputURLs,
	}
	types.SortByStart(project.Scenes)

	// Keep a stable id across replaces.
	if existing, err := projects.Load(c.Request.Context(), name); err == nil {
		project.ID = existing.ID
	} else {
		project.ID = uuid.NewString()
	}

	if err := projects.Save(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, project)
}

func handleDeleteProject(c *gin.Context, projects store.ProjectStore) {
	if err := projects.Delete(c.Request.Context(), c.Param("name")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
