package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scenescribe/backend"
	"scenescribe/common"
	"scenescribe/config"
	"scenescribe/store"
	"scenescribe/types"
)

// frameTick schedules the next playback frame.
func frameTick() tea.Cmd {
	return tea.Tick(config.FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}

// analyzeVideo runs the full analysis flow. Progress events arrive through
// the program's Send hook, set up in NewModel.
func analyzeVideo(client *backend.Client, videoPath string, onProgress backend.ProgressFunc) tea.Cmd {
	return func() tea.Msg {
		data, err := client.AnalyzeVideo(context.Background(), videoPath, "new_gemini", onProgress)
		return AnalysisCompleteMsg{Data: data, Err: err}
	}
}

// reanalyzeScenes requests fresh analysis for the changed ranges.
func reanalyzeScenes(client *backend.Client, videoName string, old []types.Scene, changed []types.TimeRange) tea.Cmd {
	return func() tea.Msg {
		scenes, err := client.Reanalyze(context.Background(), videoName, old, changed)
		return ReanalysisCompleteMsg{Scenes: scenes, Err: err}
	}
}

// regenerateAudio requests narration for the selected ranges.
func regenerateAudio(client *backend.Client, videoName string, ranges []types.TimeRange, onProgress backend.ProgressFunc) tea.Cmd {
	return func() tea.Msg {
		splices, err := client.RegenerateAudio(context.Background(), videoName, ranges, onProgress)
		return AudioRegeneratedMsg{Splices: splices, Err: err}
	}
}

// encodeVideo asks the backend for the final render.
func encodeVideo(client *backend.Client, scenes []types.Scene, videoName string) tea.Cmd {
	descriptions := make([]string, 0, len(scenes))
	timestamps := make([][2]int, 0, len(scenes))
	var audioFiles []string
	for _, s := range scenes {
		descriptions = append(descriptions, s.Description)
		timestamps = append(timestamps, [2]int{s.StartTime, s.EndTime})
		if !s.IsTalking() && s.AudioFile != "" {
			audioFiles = append(audioFiles, s.AudioFile)
		}
	}
	return func() tea.Msg {
		urls, err := client.Encode(context.Background(), descriptions, timestamps, audioFiles, videoName)
		return EncodeCompleteMsg{URLs: urls, Err: err}
	}
}

// archiveExports downloads each encode artifact and copies it to S3.
func archiveExports(client *backend.Client, archiver *common.Archiver, projectName string, urls types.OutputURLs) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		archived := 0
		for _, artifactURL := range []string{urls.Video, urls.SRT, urls.TalkingSRT, urls.MP3} {
			if artifactURL == "" {
				continue
			}
			dest := filepath.Join(os.TempDir(), filepath.Base(artifactURL))
			if err := client.DownloadExport(ctx, artifactURL, dest); err != nil {
				return ExportsArchivedMsg{Archived: archived, Err: err}
			}
			file, err := os.Open(dest)
			if err != nil {
				return ExportsArchivedMsg{Archived: archived, Err: err}
			}
			_, err = archiver.ArchiveExport(ctx, projectName, dest, file)
			file.Close()
			os.Remove(dest)
			if err != nil {
				return ExportsArchivedMsg{Archived: archived, Err: err}
			}
			archived++
		}
		return ExportsArchivedMsg{Archived: archived}
	}
}

// saveProject persists the working set under the project name.
func saveProject(projects store.ProjectStore, project *types.Project) tea.Cmd {
	return func() tea.Msg {
		return ProjectSavedMsg{Err: projects.Save(context.Background(), project)}
	}
}

// loadProject fetches a saved project by name.
func loadProject(projects store.ProjectStore, name string) tea.Cmd {
	return func() tea.Msg {
		project, err := projects.Load(context.Background(), name)
		return ProjectLoadedMsg{Project: project, Err: err}
	}
}
