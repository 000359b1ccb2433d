package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"scenescribe/store"
	"scenescribe/types"
)

// AnalysisResult is the message the video backend publishes when an analysis
// run finishes: the project it belongs to plus the parallel scene arrays.
type AnalysisResult struct {
	Project      string   `json:"project"`
	VideoName    string   `json:"video_name"`
	Timestamps   [][2]int `json:"timestamps"`
	Descriptions []string `json:"descriptions"`
	AudioFiles   []string `json:"audio_files"`
}

// ResultHandler maps finished analysis payloads into scenes and replace-saves
// the project. Malformed payloads are marked and skipped rather than retried,
// since they will never become valid.
type ResultHandler struct {
	store store.ProjectStore
}

func NewResultHandler(s store.ProjectStore) *ResultHandler {
	return &ResultHandler{store: s}
}

func (h *ResultHandler) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var result AnalysisResult
	if err := json.Unmarshal(message, &result); err != nil {
		log.Printf("skipping malformed analysis payload: %v", err)
		return true, nil
	}
	if result.Project == "" || len(result.Timestamps) == 0 {
		log.Printf("skipping analysis payload with no project or scenes")
		return true, nil
	}

	scenes, err := types.ScenesFromAnalysis(&types.AnalysisData{
		Timestamps:   result.Timestamps,
		Descriptions: result.Descriptions,
		AudioFiles:   result.AudioFiles,
	})
	if err != nil {
		log.Printf("skipping analysis payload for %q: %v", result.Project, err)
		return true, nil
	}

	project := &types.Project{
		Name:      result.Project,
		VideoName: result.VideoName,
		Scenes:    scenes,
	}
	if err := h.store.Save(ctx, project); err != nil {
		// Store trouble is transient; leave the message for retry.
		return false, fmt.Errorf("save project %q: %w", result.Project, err)
	}
	log.Printf("saved analysis for project %q (%d scenes)", result.Project, len(scenes))
	return true, nil
}
