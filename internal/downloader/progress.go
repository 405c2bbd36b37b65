package downloader

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const progressBarWidth = 20

// Progress carries one tick of extractor progress. Speed is in bytes per
// second; zero values mean the extractor could not report the figure.
type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
	Speed           float64
	ETA             time.Duration
}

// Percent returns the completion percentage rounded to one decimal, or -1
// when the total is unknown.
func (p Progress) Percent() float64 {
	if p.TotalBytes <= 0 {
		return -1
	}
	pct := float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
	return float64(int(pct*10+0.5)) / 10
}

// InitialProgressText is the first rendering of the progress message, shown
// before any extractor tick arrives.
func InitialProgressText() string {
	return "📥 جاري التحميل...\n" +
		strings.Repeat("▱", progressBarWidth) + " 0%\n" +
		"⚡️ السرعة: -- MB/s\n" +
		"⏳ الوقت المتبقي: -- ثانية\n" +
		"📊 0/-- MB"
}

// RenderProgress formats one progress tick. When the total byte count is
// unknown the render is skipped entirely for that tick and the empty string
// is returned.
func RenderProgress(p Progress) string {
	pct := p.Percent()
	if pct < 0 {
		return ""
	}

	filled := int(progressBarWidth * pct / 100)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", progressBarWidth-filled)

	speedStr := "-- MB/s"
	if p.Speed > 0 {
		speedStr = fmt.Sprintf("%.1f MB/s", p.Speed/1024/1024)
	}

	etaStr := "-- ثانية"
	if p.ETA > 0 {
		secs := int(p.ETA.Seconds())
		if secs > 60 {
			etaStr = fmt.Sprintf("%d دقيقة و %d ثانية", secs/60, secs%60)
		} else {
			etaStr = fmt.Sprintf("%d ثانية", secs)
		}
	}

	downloadedMB := float64(p.DownloadedBytes) / 1024 / 1024
	totalMB := float64(p.TotalBytes) / 1024 / 1024

	return fmt.Sprintf(
		"📥 جاري التحميل...\n%s %.1f%%\n⚡️ السرعة: %s\n⏳ الوقت المتبقي: %s\n📊 %.1f/%.1f MB",
		bar, pct, speedStr, etaStr, downloadedMB, totalMB,
	)
}

// progressReporter throttles progress edits for one in-flight download: at
// most one edit per interval, and only when the rendered text changed. The
// state lives here rather than in package-level variables so concurrent
// downloads do not share it.
type progressReporter struct {
	api       Transport
	chatID    int64
	messageID int
	interval  time.Duration

	lastRender time.Time
	lastText   string

	now func() time.Time
}

func newProgressReporter(api Transport, chatID int64, messageID int) *progressReporter {
	return &progressReporter{
		api:       api,
		chatID:    chatID,
		messageID: messageID,
		interval:  time.Second,
		now:       time.Now,
	}
}

func (r *progressReporter) Report(p Progress) {
	now := r.now()
	if !r.lastRender.IsZero() && now.Sub(r.lastRender) < r.interval {
		return
	}
	r.lastRender = now

	text := RenderProgress(p)
	if text == "" || text == r.lastText {
		return
	}

	edit := tgbotapi.NewEditMessageText(r.chatID, r.messageID, text)
	if _, err := r.api.Request(edit); err != nil {
		// Edit failures are tolerated; the next tick will try again.
		return
	}
	r.lastText = text
}
