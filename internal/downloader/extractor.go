package downloader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

const (
	videoFormat = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/bestvideo+bestaudio/best"
	audioFormat = "bestaudio[ext=m4a]/bestaudio[ext=mp3]/bestaudio/best"
)

type extractRequest struct {
	URL       string
	OutputDir string
	Audio     bool
}

type extractResult struct {
	Filename string
	Title    string
}

// extractFunc is the seam between the orchestrator and yt-dlp; tests swap it
// for a stub.
type extractFunc func(ctx context.Context, req extractRequest, onProgress func(Progress)) (extractResult, error)

// ytdlpExtract invokes yt-dlp with the requested format selection and output
// template, forwarding progress ticks to the callback.
func ytdlpExtract(ctx context.Context, req extractRequest, onProgress func(Progress)) (extractResult, error) {
	dl := ytdlp.New().
		RestrictFilenames().
		WindowsFilenames().
		NoPlaylist().
		Output(filepath.Join(req.OutputDir, "%(id)s.%(ext)s"))

	if req.Audio {
		dl = dl.Format(audioFormat).
			ExtractAudio().
			AudioFormat("mp3").
			AudioQuality("192K")
	} else {
		dl = dl.Format(videoFormat).
			MergeOutputFormat("mp4")
	}

	dl.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
		p := Progress{
			DownloadedBytes: int64(update.DownloadedBytes),
			TotalBytes:      int64(update.TotalBytes),
		}
		if !update.Started.IsZero() {
			elapsed := time.Since(update.Started)
			if elapsed.Seconds() > 0 {
				p.Speed = float64(update.DownloadedBytes) / elapsed.Seconds()
			}
		}
		if eta := update.ETA(); eta > 0 {
			p.ETA = eta
		}
		onProgress(p)
	})

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return extractResult{}, err
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return extractResult{}, err
	}
	if len(info) == 0 || info[0].Filename == nil {
		return extractResult{}, fmt.Errorf("extractor returned no file for %s", req.URL)
	}

	res := extractResult{Filename: *info[0].Filename}
	if info[0].Title != nil {
		res.Title = *info[0].Title
	}

	// The audio postprocessor rewrites the container; the reported filename
	// still carries the pre-processing extension.
	if req.Audio {
		ext := filepath.Ext(res.Filename)
		res.Filename = strings.TrimSuffix(res.Filename, ext) + ".mp3"
	}

	return res, nil
}
