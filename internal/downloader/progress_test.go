package downloader

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdualzizsm/telegram-bot/internal/testutil"
)

func TestProgress_Percent(t *testing.T) {
	assert.Equal(t, 50.0, Progress{DownloadedBytes: 50, TotalBytes: 100}.Percent())
	assert.Equal(t, 33.3, Progress{DownloadedBytes: 1, TotalBytes: 3}.Percent())
	assert.Equal(t, 100.0, Progress{DownloadedBytes: 100, TotalBytes: 100}.Percent())
	assert.Equal(t, -1.0, Progress{DownloadedBytes: 50}.Percent())
}

func TestRenderProgress_UnknownTotal(t *testing.T) {
	assert.Equal(t, "", RenderProgress(Progress{DownloadedBytes: 1024}))
}

func TestRenderProgress_Bar(t *testing.T) {
	text := RenderProgress(Progress{DownloadedBytes: 50, TotalBytes: 100})
	assert.Contains(t, text, strings.Repeat("▰", 10)+strings.Repeat("▱", 10))
	assert.Contains(t, text, "50.0%")
	assert.Contains(t, text, "📊 0.0/0.0 MB")
}

func TestRenderProgress_Placeholders(t *testing.T) {
	text := RenderProgress(Progress{DownloadedBytes: 0, TotalBytes: 100})
	assert.Contains(t, text, "⚡️ السرعة: -- MB/s")
	assert.Contains(t, text, "⏳ الوقت المتبقي: -- ثانية")
}

func TestRenderProgress_SpeedAndETA(t *testing.T) {
	text := RenderProgress(Progress{
		DownloadedBytes: 50,
		TotalBytes:      100,
		Speed:           2 * 1024 * 1024,
		ETA:             90 * time.Second,
	})
	assert.Contains(t, text, "2.0 MB/s")
	assert.Contains(t, text, "1 دقيقة و 30 ثانية")

	text = RenderProgress(Progress{
		DownloadedBytes: 50,
		TotalBytes:      100,
		ETA:             45 * time.Second,
	})
	assert.Contains(t, text, "45 ثانية")
}

func TestInitialProgressText(t *testing.T) {
	text := InitialProgressText()
	assert.Contains(t, text, strings.Repeat("▱", 20)+" 0%")
	assert.Contains(t, text, "📥 جاري التحميل...")
}

func TestProgressReporter_ThrottlesEdits(t *testing.T) {
	api := &testutil.MockTransport{}
	r := newProgressReporter(api, 1, 7)

	clock := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	r.Report(Progress{DownloadedBytes: 10, TotalBytes: 100})
	require.Len(t, api.RequestedEdits(), 1)

	// Within the interval nothing goes out, even with fresh figures.
	clock = clock.Add(500 * time.Millisecond)
	r.Report(Progress{DownloadedBytes: 20, TotalBytes: 100})
	assert.Len(t, api.RequestedEdits(), 1)

	clock = clock.Add(time.Second)
	r.Report(Progress{DownloadedBytes: 30, TotalBytes: 100})
	assert.Len(t, api.RequestedEdits(), 2)
}

func TestProgressReporter_SkipsUnchangedText(t *testing.T) {
	api := &testutil.MockTransport{}
	r := newProgressReporter(api, 1, 7)

	clock := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	p := Progress{DownloadedBytes: 10, TotalBytes: 100}
	r.Report(p)
	clock = clock.Add(2 * time.Second)
	r.Report(p)

	assert.Len(t, api.RequestedEdits(), 1)
}

func TestProgressReporter_SkipsUnknownTotal(t *testing.T) {
	api := &testutil.MockTransport{}
	r := newProgressReporter(api, 1, 7)

	r.Report(Progress{DownloadedBytes: 10})
	assert.Empty(t, api.RequestedEdits())
}
