package worker

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

var previewClient = &http.Client{Timeout: 15 * time.Second}

// analyzePreview fetches the synth service's rendered MP3 for a
// composition and measures its RMS energy, normalized to [0,1]. The synth
// renders asynchronously, so a fetch may race the render and fail; the
// pool logs and drops such jobs.
func analyzePreview(url string) (float64, error) {
	resp, err := previewClient.Get(url)
	if err != nil {
		return 0, fmt.Errorf("render fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("render not available, status %d", resp.StatusCode)
	}

	decoder, err := mp3.NewDecoder(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("render decode failed: %w", err)
	}

	var sumSquares float64
	var samples float64
	buf := make([]byte, 8192)
	for {
		n, err := decoder.Read(buf)
		for i := 0; i+1 < n; i += 2 {
			sample := float64(int16(buf[i]) | int16(buf[i+1])<<8)
			sumSquares += sample * sample
			samples++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("render read failed: %w", err)
		}
	}

	if samples == 0 {
		return 0, fmt.Errorf("render contains no samples")
	}

	energy := math.Sqrt(sumSquares/samples) / 32768.0
	if energy > 1 {
		energy = 1
	}
	return energy, nil
}

// AnalyzePreviewFunc allows tests to override the analyzer implementation.
var AnalyzePreviewFunc = analyzePreview
