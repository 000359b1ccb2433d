package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"scenescribe/session"
	"scenescribe/srt"
	"scenescribe/store"
	"scenescribe/types"
)

// RegisterSceneRoutes registers the scene mutation endpoints. Every mutation
// runs through a session so the interval rules hold; a change the session
// refuses comes back as applied:false with the unchanged scene set.
func RegisterSceneRoutes(r *gin.Engine, projects store.ProjectStore) {
	g := r.Group("/api/projects/:name/scenes")
	g.POST("/replace", func(c *gin.Context) {
		var req struct {
			Scenes []types.Scene `json:"scenes" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mutateScenes(c, projects, 0, session.ReplaceAll{Scenes: req.Scenes})
	})

	g.POST("/text", func(c *gin.Context) {
		var req struct {
			StartTime *int   `json:"start_time" binding:"required"`
			Text      string `json:"text"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mutateScenes(c, projects, 0, session.UpdateText{StartTime: *req.StartTime, Text: req.Text})
	})

	g.POST("/delete", func(c *gin.Context) {
		var req struct {
			StartTime *int `json:"start_time" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mutateScenes(c, projects, 0, session.Remove{StartTime: *req.StartTime})
	})

	g.POST("/retime", func(c *gin.Context) {
		var req struct {
			StartTime *int `json:"start_time" binding:"required"`
			NewStart  *int `json:"new_start" binding:"required"`
			NewEnd    *int `json:"new_end" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mutateScenes(c, projects, 0, session.Retime{
			StartTime: *req.StartTime,
			NewStart:  *req.NewStart,
			NewEnd:    *req.NewEnd,
		})
	})

	g.POST("/insert", func(c *gin.Context) {
		var req struct {
			CurrentTimeMs *int `json:"current_time_ms" binding:"required"`
			DurationMs    int  `json:"duration_ms"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mutateScenes(c, projects, req.DurationMs, session.InsertAt{CurrentTimeMs: *req.CurrentTimeMs})
	})

	g.POST("/import-srt", func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, 16<<20))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		scenes := srt.Parse(string(body))
		if len(scenes) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no valid subtitle entries"})
			return
		}
		mutateScenes(c, projects, 0, session.ReplaceAll{Scenes: scenes})
	})

	g.POST("/audio", func(c *gin.Context) {
		var req struct {
			Splices []types.AudioSplice `json:"splices" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mutateScenes(c, projects, 0, session.SpliceAudio{Splices: req.Splices})
	})
}

// MutationResponse reports whether the session accepted the change and the
// resulting scene set either way.
type MutationResponse struct {
	Applied   bool          `json:"applied"`
	Scenes    []types.Scene `json:"scenes"`
	CanEncode bool          `json:"can_encode"`
}

// mutateScenes loads the project, applies one command through a session, and
// persists only when the command changed something. durationMs extends the
// timeline beyond the last scene (0 means last scene end).
func mutateScenes(c *gin.Context, projects store.ProjectStore, durationMs int, cmd session.Command) {
	ctx := c.Request.Context()
	project, err := projects.Load(ctx, c.Param("name"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if durationMs == 0 {
		for _, s := range project.Scenes {
			if s.EndTime > durationMs {
				durationMs = s.EndTime
			}
		}
	}

	sess := session.New(project.Scenes, durationMs, session.DefaultPolicy())
	sess.Apply(cmd)
	updated := sess.Scenes()

	applied := !scenesEqual(project.Scenes, updated)
	if applied {
		project.Scenes = updated
		if err := projects.Save(ctx, project); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, MutationResponse{
		Applied:   applied,
		Scenes:    updated,
		CanEncode: sess.CanEncode(),
	})
}

func scenesEqual(a, b []types.Scene) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
