package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"scenescribe/types"
)

// ProgressFunc receives intermediate events from a streaming backend call.
// It is never called after the final payload has been decoded.
type ProgressFunc func(progress int, message string)

// AnalyzeVideo uploads a video for scene analysis. The backend may reply with
// a single JSON object or with a newline-delimited stream of progress events
// terminating in the event that carries the analysis data. Malformed stream
// chunks are skipped.
func (c *Client) AnalyzeVideo(ctx context.Context, videoPath, action string, onProgress ProgressFunc) (*types.AnalysisData, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("video", filepath.Base(videoPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read video: %w", err)
	}
	if err := writer.WriteField("action", action); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process-video", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}
	return decodeAnalysisStream(resp.Body, onProgress)
}

// decodeAnalysisStream handles both response shapes: a plain AnalysisData
// object and a line-delimited progress stream ending in a final event.
func decodeAnalysisStream(body io.Reader, onProgress ProgressFunc) (*types.AnalysisData, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var event types.ProgressEvent
		if err := json.Unmarshal(line, &event); err != nil {
			// Skip the chunk, keep reading.
			continue
		}
		if event.Final() {
			return event.Data, nil
		}
		// A non-streaming backend returns the data object directly.
		var data types.AnalysisData
		if err := json.Unmarshal(line, &data); err == nil && len(data.Timestamps) > 0 {
			return &data, nil
		}
		if onProgress != nil {
			onProgress(event.Progress, event.Message)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read analysis stream: %w", err)
	}
	return nil, fmt.Errorf("analysis stream ended without data")
}

// Reanalyze submits old scene data plus the changed ranges and returns the
// merged replacement scenes, sorted by start time.
func (c *Client) Reanalyze(ctx context.Context, videoName string, oldScenes []types.Scene, changed []types.TimeRange) ([]types.Scene, error) {
	oldData := make([]map[string]interface{}, 0, len(oldScenes))
	for _, s := range oldScenes {
		oldData = append(oldData, map[string]interface{}{
			"start":       s.StartTime,
			"end":         s.EndTime,
			"description": s.Description,
		})
	}
	oldRaw, err := json.Marshal(oldData)
	if err != nil {
		return nil, err
	}

	ranges := make([]string, 0, len(changed))
	for _, r := range changed {
		ranges = append(ranges, fmt.Sprintf("%d-%d", r.Start, r.End))
	}

	form := url.Values{
		"video_name":    {videoName},
		"old_data":      {string(oldRaw)},
		"new_timestamp": {strings.Join(ranges, ",")},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze-timestamps",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	var result struct {
		Descriptions []struct {
			Start       int    `json:"start"`
			End         int    `json:"end"`
			Description string `json:"description"`
			AudioFile   string `json:"audio_file"`
		} `json:"descriptions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode reanalysis: %w", err)
	}

	scenes := make([]types.Scene, 0, len(result.Descriptions))
	for _, d := range result.Descriptions {
		if d.End <= d.Start {
			continue
		}
		scenes = append(scenes, types.Scene{
			StartTime:   d.Start,
			EndTime:     d.End,
			Description: d.Description,
			AudioFile:   d.AudioFile,
		})
	}
	types.SortByStart(scenes)
	return scenes, nil
}

// RegenerateAudio requests fresh narration for the given scene ranges. The
// backend streams progress events and finishes with the list of generated
// clips keyed by exact start/end.
func (c *Client) RegenerateAudio(ctx context.Context, videoName string, ranges []types.TimeRange, onProgress ProgressFunc) ([]types.AudioSplice, error) {
	payload := map[string]interface{}{
		"video_name": videoName,
		"ranges":     ranges,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/regenerate-audio", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '[' {
			var splices []types.AudioSplice
			if err := json.Unmarshal(line, &splices); err != nil {
				continue
			}
			return splices, nil
		}
		var event types.ProgressEvent
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}
		if onProgress != nil {
			onProgress(event.Progress, event.Message)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}
	return nil, fmt.Errorf("audio stream ended without clips")
}
