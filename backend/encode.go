package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"scenescribe/types"
)

// Encode asks the backend to render the final video with subtitles and mixed
// narration. Descriptions and timestamps are index-aligned; audioFiles covers
// only the non-TALKING scenes, in order.
func (c *Client) Encode(ctx context.Context, descriptions []string, timestamps [][2]int, audioFiles []string, videoFileName string) (*types.OutputURLs, error) {
	payload := map[string]interface{}{
		"descriptions":  descriptions,
		"timestamps":    timestamps,
		"audioFiles":    audioFiles,
		"videoFileName": videoFileName,
	}

	var result struct {
		OutputVideoURL      string `json:"output_video_url"`
		OutputSRTURL        string `json:"output_srt_url"`
		OutputTalkingSRTURL string `json:"output_talking_srt_url"`
		OutputMP3URL        string `json:"output_mp3_url"`
	}
	if err := c.doJSONRequest(ctx, http.MethodPost, "/encode-video-with-subtitles", payload, &result); err != nil {
		return nil, err
	}
	return &types.OutputURLs{
		Video:      result.OutputVideoURL,
		SRT:        result.OutputSRTURL,
		TalkingSRT: result.OutputTalkingSRTURL,
		MP3:        result.OutputMP3URL,
	}, nil
}

// DownloadExport fetches an artifact URL (relative URLs resolve against the
// backend base) and writes it to destPath.
func (c *Client) DownloadExport(ctx context.Context, artifactURL, destPath string) error {
	if len(artifactURL) > 0 && artifactURL[0] == '/' {
		artifactURL = c.baseURL + artifactURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artifactURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download %s: unexpected status %d", artifactURL, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return out.Close()
}

// TextToSpeech renders a description into an MP3 clip and returns the bytes.
func (c *Client) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	payload, err := jsonBody(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/text-to-speech", payload)
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
	return io.ReadAll(resp.Body)
}
