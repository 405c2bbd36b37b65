package downloader

import "strings"

// SourceKind identifies which media source a URL belongs to.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceYouTube
	SourceSnapchat
)

func (k SourceKind) String() string {
	switch k {
	case SourceYouTube:
		return "youtube"
	case SourceSnapchat:
		return "snapchat"
	}
	return "unknown"
}

var youtubeDomains = []string{"youtube.com", "youtu.be"}

// Classify matches the URL against the known source domains by substring.
func Classify(url string) SourceKind {
	lower := strings.ToLower(url)
	for _, d := range youtubeDomains {
		if strings.Contains(lower, d) {
			return SourceYouTube
		}
	}
	if strings.Contains(lower, "snapchat.com") {
		return SourceSnapchat
	}
	return SourceUnknown
}

// NormalizeYouTubeURL rewrites a Shorts link into a plain watch URL, which
// the extractor handles more reliably.
func NormalizeYouTubeURL(url string) string {
	if !strings.Contains(url, "shorts") {
		return url
	}
	parts := strings.Split(url, "/")
	videoID := parts[len(parts)-1]
	if i := strings.Index(videoID, "?"); i >= 0 {
		videoID = videoID[:i]
	}
	return "https://www.youtube.com/watch?v=" + videoID
}
