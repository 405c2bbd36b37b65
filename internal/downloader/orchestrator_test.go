package downloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdualzizsm/telegram-bot/internal/models"
	"github.com/Abdualzizsm/telegram-bot/internal/services"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
	"github.com/Abdualzizsm/telegram-bot/internal/testutil"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *testutil.MockTransport, services.LedgerServiceInterface, *testutil.MockMetrics) {
	t.Helper()
	conf := &structures.Config{}
	conf.Downloads.Dir = t.TempDir()
	conf.Downloads.MaxParallel = 2
	conf.Persistence.FilePath = "ledger.json"

	logger := &testutil.MockLogger{}
	api := &testutil.MockTransport{}
	metrics := testutil.NewMockMetrics()
	service := services.NewLedgerService(conf, &testutil.MockLedgerStore{}, logger)
	require.NoError(t, service.Record(models.NewContactEvent(10, models.Identity{FirstName: "Sara"})))

	o := NewOrchestrator(conf, logger, metrics, service, api)
	return o, api, service, metrics
}

// stubExtract replaces the real extractor with one that drops a file into the
// output directory.
func stubExtract(title string) extractFunc {
	return func(_ context.Context, req extractRequest, report func(Progress)) (extractResult, error) {
		report(Progress{DownloadedBytes: 50, TotalBytes: 100})
		path := filepath.Join(req.OutputDir, "clip.mp4")
		if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
			return extractResult{}, err
		}
		return extractResult{Filename: path, Title: title}, nil
	}
}

func TestHandleURL_YouTubeOffersFormatChoice(t *testing.T) {
	o, api, _, _ := newTestOrchestrator(t)

	msg := &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 10},
		Text: "https://www.youtube.com/watch?v=abc",
	}
	assert.True(t, o.HandleURL(msg))

	sent := api.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, msgChooseFormat, sent[0].Text)

	keyboard, ok := sent[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, keyboard.InlineKeyboard, 1)
	require.Len(t, keyboard.InlineKeyboard[0], 2)
	assert.Equal(t, "video_https://www.youtube.com/watch?v=abc", *keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "audio_https://www.youtube.com/watch?v=abc", *keyboard.InlineKeyboard[0][1].CallbackData)
}

func TestHandleURL_UnknownSourceReturnsFalse(t *testing.T) {
	o, api, _, _ := newTestOrchestrator(t)

	msg := &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 10},
		Text: "https://vimeo.com/12345",
	}
	assert.False(t, o.HandleURL(msg))
	assert.Empty(t, api.Sent)
}

func TestHandleCallback_RejectsForeignPayloads(t *testing.T) {
	o, _, _, _ := newTestOrchestrator(t)

	assert.False(t, o.HandleCallback(&tgbotapi.CallbackQuery{Data: "list_users"}))
	assert.False(t, o.HandleCallback(&tgbotapi.CallbackQuery{Data: "nounderscore"}))
}

func TestRunSnapchat_Success(t *testing.T) {
	o, api, service, metrics := newTestOrchestrator(t)
	o.extract = stubExtract("Snap Clip")

	o.runSnapchat(1, 10, "https://www.snapchat.com/spotlight/xyz")

	p, ok := service.Profile(10)
	require.True(t, ok)
	assert.Equal(t, int64(1), p.Downloads)
	assert.Equal(t, int64(1), p.SnapchatDownloads)
	assert.Equal(t, int64(1), service.TotalDownloads())

	// Status message first, then the video.
	sent := api.Sent
	require.Len(t, sent, 2)
	video, ok := sent[1].(tgbotapi.VideoConfig)
	require.True(t, ok)
	assert.True(t, video.SupportsStreaming)
	assert.Contains(t, video.Caption, "Snap Clip")

	// Status message deleted, file cleaned up.
	var deleted bool
	for _, req := range api.Requested {
		if _, ok := req.(tgbotapi.DeleteMessageConfig); ok {
			deleted = true
		}
	}
	assert.True(t, deleted)
	_, err := os.Stat(filepath.Join(o.conf.Downloads.Dir, "1", "clip.mp4"))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, 1, metrics.Downloads["snapchat:success"])
	assert.Equal(t, 0, metrics.Active)
}

func TestRunSnapchat_RecordsBeforeSend(t *testing.T) {
	o, api, service, metrics := newTestOrchestrator(t)
	o.extract = stubExtract("Snap Clip")

	// The status message goes out; the video send fails.
	api.SendErr = func(c tgbotapi.Chattable) error {
		if _, ok := c.(tgbotapi.VideoConfig); ok {
			return errors.New("file too big")
		}
		return nil
	}

	o.runSnapchat(1, 10, "https://www.snapchat.com/spotlight/xyz")

	// Counters already bumped despite the failed send.
	p, _ := service.Profile(10)
	assert.Equal(t, int64(1), p.Downloads)
	assert.Equal(t, int64(1), p.SnapchatDownloads)
	assert.Equal(t, 1, metrics.Downloads["snapchat:error"])

	edits := api.RequestedEdits()
	require.NotEmpty(t, edits)
	assert.Equal(t, msgDownloadFailed, edits[len(edits)-1].Text)
}

func TestRunYouTube_VideoSuccess(t *testing.T) {
	o, api, service, metrics := newTestOrchestrator(t)
	o.extract = stubExtract("My Video")

	o.runYouTube(1, 10, 7, "https://www.youtube.com/watch?v=abc", false)

	p, _ := service.Profile(10)
	assert.Equal(t, int64(1), p.Downloads)
	assert.Equal(t, int64(1), p.YouTubeDownloads)

	require.Len(t, api.Sent, 1)
	video, ok := api.Sent[0].(tgbotapi.VideoConfig)
	require.True(t, ok)
	assert.Equal(t, "🎥 My Video", video.Caption)

	edits := api.RequestedEdits()
	require.NotEmpty(t, edits)
	assert.Equal(t, InitialProgressText(), edits[0].Text)
	assert.Equal(t, msgDownloadDone, edits[len(edits)-1].Text)

	assert.Equal(t, 1, metrics.Downloads["youtube:success"])
}

func TestRunYouTube_AudioCaption(t *testing.T) {
	o, api, _, _ := newTestOrchestrator(t)
	o.extract = stubExtract("My Track")

	o.runYouTube(1, 10, 7, "https://www.youtube.com/watch?v=abc", true)

	require.Len(t, api.Sent, 1)
	audio, ok := api.Sent[0].(tgbotapi.AudioConfig)
	require.True(t, ok)
	assert.Equal(t, "🎵 My Track", audio.Caption)
}

func TestRunYouTube_FailedSendRecordsNothing(t *testing.T) {
	o, api, service, metrics := newTestOrchestrator(t)
	o.extract = stubExtract("My Video")
	api.SendErr = func(tgbotapi.Chattable) error { return errors.New("file too big") }

	o.runYouTube(1, 10, 7, "https://www.youtube.com/watch?v=abc", false)

	// The two-choice source only records after a successful send.
	p, _ := service.Profile(10)
	assert.Equal(t, int64(0), p.Downloads)
	assert.Equal(t, int64(0), p.YouTubeDownloads)
	assert.Equal(t, int64(0), service.TotalDownloads())
	assert.Equal(t, 1, metrics.Downloads["youtube:error"])

	edits := api.RequestedEdits()
	require.NotEmpty(t, edits)
	assert.Equal(t, msgDownloadFailed, edits[len(edits)-1].Text)
}

func TestRunYouTube_ExtractFailure(t *testing.T) {
	o, api, _, metrics := newTestOrchestrator(t)
	o.extract = func(context.Context, extractRequest, func(Progress)) (extractResult, error) {
		return extractResult{}, errors.New("unavailable")
	}

	o.runYouTube(1, 10, 7, "https://www.youtube.com/watch?v=abc", false)

	assert.Empty(t, api.Sent)
	assert.Equal(t, 1, metrics.Downloads["youtube:error"])
	edits := api.RequestedEdits()
	require.NotEmpty(t, edits)
	assert.Equal(t, msgDownloadFailed, edits[len(edits)-1].Text)
}

func TestHandleCallback_StartsDownload(t *testing.T) {
	o, api, _, _ := newTestOrchestrator(t)
	o.extract = stubExtract("My Video")

	q := &tgbotapi.CallbackQuery{
		ID:   "cb1",
		Data: "video_https://www.youtube.com/watch?v=abc",
		From: &tgbotapi.User{ID: 10},
		Message: &tgbotapi.Message{
			MessageID: 7,
			Chat:      &tgbotapi.Chat{ID: 1},
		},
	}
	assert.True(t, o.HandleCallback(q))

	// The download runs on its own goroutine.
	require.Eventually(t, func() bool {
		edits := api.RequestedEdits()
		return len(edits) > 0 && edits[len(edits)-1].Text == msgDownloadDone
	}, 2*time.Second, 10*time.Millisecond)
}
