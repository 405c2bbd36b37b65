package downloader

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/Abdualzizsm/telegram-bot/internal/models"
	"github.com/Abdualzizsm/telegram-bot/internal/providers"
	"github.com/Abdualzizsm/telegram-bot/internal/services"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

const (
	msgChooseFormat    = "🎥 اختر نوع التحميل:"
	msgSnapchatStarted = "⏳ جاري تحميل الفيديو من سناب شات..."
	msgDownloadDone    = "✅ تم التحميل بنجاح!"
	msgDownloadFailed  = "❌ عذراً، حدث خطأ أثناء التحميل. الرجاء المحاولة مرة أخرى."
)

// Transport is the slice of the Telegram API the orchestrator needs.
// Satisfied by *tgbotapi.BotAPI.
type Transport interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Orchestrator drives one download request end to end: URL classification,
// format choice, extraction with progress edits, sending the file back and
// recording the activity. Downloads run on their own goroutines, bounded by
// a weighted semaphore.
type Orchestrator struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	service services.LedgerServiceInterface
	api     Transport
	sem     *semaphore.Weighted
	extract extractFunc
}

func NewOrchestrator(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, service services.LedgerServiceInterface, api Transport) *Orchestrator {
	return &Orchestrator{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		service: service,
		api:     api,
		sem:     semaphore.NewWeighted(int64(conf.Downloads.MaxParallel)),
		extract: ytdlpExtract,
	}
}

// HandleURL dispatches a recognized download-source URL. Returns false when
// the text is not a known source, leaving the router to reply generically.
func (o *Orchestrator) HandleURL(msg *tgbotapi.Message) bool {
	url := strings.TrimSpace(msg.Text)

	switch Classify(url) {
	case SourceSnapchat:
		go o.runSnapchat(msg.Chat.ID, msg.From.ID, url)
		return true
	case SourceYouTube:
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🎥 تحميل فيديو", "video_"+url),
				tgbotapi.NewInlineKeyboardButtonData("🎵 تحميل صوت", "audio_"+url),
			),
		)
		reply := tgbotapi.NewMessage(msg.Chat.ID, msgChooseFormat)
		reply.ReplyMarkup = keyboard
		if _, err := o.api.Send(reply); err != nil {
			o.logger.Errorf(providers.TypeDownload, "Failed to send format choice: %s", err)
		}
		return true
	}
	return false
}

// HandleCallback starts a YouTube download for a "video_<url>" or
// "audio_<url>" button press. Returns false for other callback payloads.
func (o *Orchestrator) HandleCallback(q *tgbotapi.CallbackQuery) bool {
	verb, url, found := strings.Cut(q.Data, "_")
	if !found || (verb != "video" && verb != "audio") {
		return false
	}

	if _, err := o.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		o.logger.Warnf(providers.TypeDownload, "Failed to answer callback: %s", err)
	}

	go o.runYouTube(q.Message.Chat.ID, q.From.ID, q.Message.MessageID, url, verb == "audio")
	return true
}

func (o *Orchestrator) runSnapchat(chatID, userID int64, url string) {
	taskID := uuid.NewString()
	o.logger.Infof(providers.TypeDownload, "Snapchat download %s started for chat %d", taskID, chatID)

	status, err := o.api.Send(tgbotapi.NewMessage(chatID, msgSnapchatStarted))
	if err != nil {
		o.logger.Errorf(providers.TypeDownload, "Failed to send status message: %s", err)
		return
	}

	o.acquireSlot()
	defer o.releaseSlot()

	start := time.Now()
	res, err := o.extract(context.Background(), extractRequest{
		URL:       url,
		OutputDir: o.chatDir(chatID),
	}, func(Progress) {})
	if err != nil {
		o.fail(SourceSnapchat, taskID, chatID, status.MessageID, err)
		return
	}

	// The single-step source records its events inside the orchestrator,
	// before the file goes out.
	o.record(models.NewDownloadEvent(userID))
	o.record(models.NewSnapchatEvent(userID))

	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(res.Filename))
	video.Caption = msgDownloadDone + "\n🎥 " + res.Title
	video.SupportsStreaming = true
	if _, err := o.api.Send(video); err != nil {
		o.fail(SourceSnapchat, taskID, chatID, status.MessageID, err)
		return
	}

	if _, err := o.api.Request(tgbotapi.NewDeleteMessage(chatID, status.MessageID)); err != nil {
		o.logger.Warnf(providers.TypeDownload, "Failed to delete status message: %s", err)
	}
	o.cleanup(res.Filename)

	o.metrics.IncDownloads(SourceSnapchat.String(), "success")
	o.metrics.ObserveDownloadDuration(SourceSnapchat.String(), time.Since(start))
	o.logger.Infof(providers.TypeDownload, "Snapchat download %s finished in %s", taskID, time.Since(start))
}

func (o *Orchestrator) runYouTube(chatID, userID int64, messageID int, url string, audio bool) {
	taskID := uuid.NewString()
	url = NormalizeYouTubeURL(url)
	o.logger.Infof(providers.TypeDownload, "YouTube download %s started for chat %d (audio=%t)", taskID, chatID, audio)

	o.edit(chatID, messageID, InitialProgressText())

	o.acquireSlot()
	defer o.releaseSlot()

	start := time.Now()
	reporter := newProgressReporter(o.api, chatID, messageID)
	res, err := o.extract(context.Background(), extractRequest{
		URL:       url,
		OutputDir: o.chatDir(chatID),
		Audio:     audio,
	}, reporter.Report)
	if err != nil {
		o.fail(SourceYouTube, taskID, chatID, messageID, err)
		return
	}

	var media tgbotapi.Chattable
	if audio {
		f := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(res.Filename))
		f.Caption = "🎵 " + res.Title
		media = f
	} else {
		f := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(res.Filename))
		f.Caption = "🎥 " + res.Title
		f.SupportsStreaming = true
		media = f
	}
	if _, err := o.api.Send(media); err != nil {
		o.fail(SourceYouTube, taskID, chatID, messageID, err)
		return
	}

	// The two-choice source records only after a successful send.
	o.record(models.NewDownloadEvent(userID))
	o.record(models.NewYouTubeEvent(userID))

	o.cleanup(res.Filename)
	o.edit(chatID, messageID, msgDownloadDone)

	o.metrics.IncDownloads(SourceYouTube.String(), "success")
	o.metrics.ObserveDownloadDuration(SourceYouTube.String(), time.Since(start))
	o.logger.Infof(providers.TypeDownload, "YouTube download %s finished in %s", taskID, time.Since(start))
}

func (o *Orchestrator) acquireSlot() {
	_ = o.sem.Acquire(context.Background(), 1)
	o.metrics.IncActiveDownloads()
}

func (o *Orchestrator) releaseSlot() {
	o.metrics.DecActiveDownloads()
	o.sem.Release(1)
}

// fail logs the error and surfaces a single generic retry message to the
// user. Partial temp files are left behind.
func (o *Orchestrator) fail(source SourceKind, taskID string, chatID int64, messageID int, err error) {
	o.logger.Errorf(providers.TypeDownload, "Download %s failed: %s", taskID, err)
	o.metrics.IncDownloads(source.String(), "error")
	o.edit(chatID, messageID, msgDownloadFailed)
}

func (o *Orchestrator) edit(chatID int64, messageID int, text string) {
	if _, err := o.api.Request(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		o.logger.Warnf(providers.TypeDownload, "Failed to edit message %d: %s", messageID, err)
	}
}

func (o *Orchestrator) record(ev models.Event) {
	if err := o.service.Record(ev); err != nil {
		o.logger.Errorf(providers.TypeDownload, "Failed to record %s event for %d: %s", ev.Kind, ev.UserID, err)
	}
}

func (o *Orchestrator) cleanup(filename string) {
	if err := os.Remove(filename); err != nil {
		o.logger.Warnf(providers.TypeDownload, "Failed to remove %s: %s", filename, err)
	}
}

func (o *Orchestrator) chatDir(chatID int64) string {
	dir := filepath.Join(o.conf.Downloads.Dir, strconv.FormatInt(chatID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		o.logger.Errorf(providers.TypeDownload, "Failed to create download dir %s: %s", dir, err)
	}
	return dir
}
