package bot

import (
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Abdualzizsm/telegram-bot/internal/downloader"
	"github.com/Abdualzizsm/telegram-bot/internal/models"
	"github.com/Abdualzizsm/telegram-bot/internal/providers"
	"github.com/Abdualzizsm/telegram-bot/internal/services"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

const (
	msgAdminOnly       = "⛔️ عذراً، هذا الأمر متاح للمشرفين فقط"
	msgBroadcastPrompt = "📢 *إرسال رسالة جماعية*\n\nأرسل الرسالة التي تريد إرسالها لجميع المستخدمين."
	msgSearchPrompt    = "⚠️ الرجاء إدخال معرف المستخدم أو اسم المستخدم للبحث"
	msgUserNotFound    = "❌ لم يتم العثور على المستخدم"
	msgSendLink        = "فقط أرسل لي رابط الفيديو وسأقوم بتحميله لك! 😊"

	buttonYouTube  = "📥 تحميل من يوتيوب"
	buttonSnapchat = "📥 تحميل من سناب شات"
	buttonMyInfo   = "ℹ️ معلوماتي"
)

// API is the slice of the Telegram client the router uses. Satisfied by
// *tgbotapi.BotAPI.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Router inspects each inbound message or button press and dispatches to the
// welcome flow, the admin dashboard, the broadcast flow, the download
// orchestrator or an informational reply.
type Router struct {
	conf         *structures.Config
	logger       providers.Logger
	service      services.LedgerServiceInterface
	orchestrator *downloader.Orchestrator
	sessions     *SessionStore
	cache        providers.CacheProviderInterface
	metrics      providers.MetricsProviderInterface
	api          API
}

func NewRouter(conf *structures.Config, logger providers.Logger, service services.LedgerServiceInterface, orchestrator *downloader.Orchestrator, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, api API) *Router {
	return &Router{
		conf:         conf,
		logger:       logger,
		service:      service,
		orchestrator: orchestrator,
		sessions:     NewSessionStore(),
		cache:        cache,
		metrics:      metrics,
		api:          api,
	}
}

func (r *Router) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		r.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		r.handleCallback(update.CallbackQuery)
	}
}

func (r *Router) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			r.handleStart(msg)
		case "search":
			r.handleSearch(msg)
		}
		return
	}

	existedBefore := r.hasProfile(userID)
	r.record(models.NewContactEvent(userID, identityOf(msg.From)))

	if strings.EqualFold(text, "4u") {
		r.handleDashboardCommand(msg)
		return
	}

	if r.isAdmin(userID) && r.sessions.Get(userID) == StateAwaitingBroadcastText {
		r.sessions.Set(userID, StateIdle)
		r.runBroadcast(msg.Chat.ID, text)
		return
	}

	if r.orchestrator.HandleURL(msg) {
		return
	}

	switch text {
	case buttonYouTube, buttonSnapchat:
		r.send(tgbotapi.NewMessage(msg.Chat.ID, msgSendLink))
		return
	case buttonMyInfo:
		r.handleMyInfo(msg)
		return
	}

	// Generic welcome only for first contacts; known users get silence.
	if !existedBefore {
		r.sendWelcome(msg.Chat.ID, msg.From.FirstName)
	}
}

func (r *Router) handleStart(msg *tgbotapi.Message) {
	userID := msg.From.ID
	existedBefore := r.hasProfile(userID)
	r.record(models.NewContactEvent(userID, identityOf(msg.From)))

	if !existedBefore {
		r.sendWelcome(msg.Chat.ID, msg.From.FirstName)
	}
}

func (r *Router) handleDashboardCommand(msg *tgbotapi.Message) {
	if !r.isAdmin(msg.From.ID) {
		r.send(tgbotapi.NewMessage(msg.Chat.ID, msgAdminOnly))
		return
	}
	reply := tgbotapi.NewMessage(msg.Chat.ID, dashboardTitle)
	reply.ReplyMarkup = dashboardKeyboard()
	r.send(reply)
}

func (r *Router) handleSearch(msg *tgbotapi.Message) {
	if !r.isAdmin(msg.From.ID) {
		r.send(tgbotapi.NewMessage(msg.Chat.ID, msgAdminOnly))
		return
	}

	term := strings.ToLower(strings.TrimSpace(msg.CommandArguments()))
	if term == "" {
		r.send(tgbotapi.NewMessage(msg.Chat.ID, msgSearchPrompt))
		return
	}

	now := time.Now()
	found := false
	for _, p := range r.service.Profiles() {
		if strconv.FormatInt(p.UserID, 10) == term ||
			strings.ToLower(p.Username) == strings.TrimPrefix(term, "@") ||
			strings.HasPrefix(strings.ToLower(p.FirstName), term) {
			r.send(tgbotapi.NewMessage(msg.Chat.ID, formatProfileInfo(p, now)))
			found = true
		}
	}
	if !found {
		r.send(tgbotapi.NewMessage(msg.Chat.ID, msgUserNotFound))
	}
}

func (r *Router) handleMyInfo(msg *tgbotapi.Message) {
	p, ok := r.service.Profile(msg.From.ID)
	if !ok {
		r.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ لم يتم العثور على معلومات المستخدم"))
		return
	}
	r.send(tgbotapi.NewMessage(msg.Chat.ID, formatProfileInfo(p, time.Now())))
}

func (r *Router) handleCallback(q *tgbotapi.CallbackQuery) {
	if q.Message == nil {
		return
	}

	if r.orchestrator.HandleCallback(q) {
		return
	}

	// Everything else on the callback surface is the admin dashboard. The
	// denial is a reply, not an error.
	if !r.isAdmin(q.From.ID) {
		r.request(tgbotapi.NewCallback(q.ID, msgAdminOnly))
		return
	}
	r.request(tgbotapi.NewCallback(q.ID, ""))

	chatID := q.Message.Chat.ID
	messageID := q.Message.MessageID

	switch q.Data {
	case "list_users":
		r.sendUserList(chatID, messageID)
	case "general_stats":
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, r.renderGeneralStats(), backKeyboard())
		r.request(edit)
	case "search_user":
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, msgSearchPrompt+"\n\nاستخدم: /search <المعرف>", backKeyboard())
		r.request(edit)
	case "broadcast":
		r.sessions.Set(q.From.ID, StateAwaitingBroadcastText)
		edit := tgbotapi.NewEditMessageText(chatID, messageID, msgBroadcastPrompt)
		edit.ParseMode = tgbotapi.ModeMarkdown
		r.request(edit)
	case "back_to_menu":
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, dashboardTitle, dashboardKeyboard())
		r.request(edit)
	}
}

func (r *Router) sendWelcome(chatID int64, firstName string) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonYouTube),
			tgbotapi.NewKeyboardButton(buttonSnapchat),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonMyInfo),
		),
	)
	keyboard.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(chatID,
		"👋 مرحباً "+firstName+"!\n"+
			"أنا بوت تحميل الفيديوهات 🎥\n"+
			"يمكنني تحميل الفيديوهات من:\n"+
			"• يوتيوب 📺\n"+
			"• سناب شات 👻\n\n"+
			msgSendLink)
	msg.ReplyMarkup = keyboard
	r.send(msg)
}

func (r *Router) isAdmin(userID int64) bool {
	return strconv.FormatInt(userID, 10) == r.conf.Telegram.AdminID
}

func (r *Router) hasProfile(userID int64) bool {
	_, ok := r.service.Profile(userID)
	return ok
}

func (r *Router) inactiveThreshold() time.Duration {
	return time.Duration(r.conf.Downloads.InactiveDays) * 24 * time.Hour
}

func (r *Router) record(ev models.Event) {
	if err := r.service.Record(ev); err != nil {
		r.logger.Errorf(providers.TypeBot, "Failed to record %s event for %d: %s", ev.Kind, ev.UserID, err)
	}
}

func (r *Router) send(c tgbotapi.Chattable) {
	if _, err := r.api.Send(c); err != nil {
		r.logger.Errorf(providers.TypeBot, "Failed to send message: %s", err)
	}
}

func (r *Router) request(c tgbotapi.Chattable) {
	if _, err := r.api.Request(c); err != nil {
		r.logger.Warnf(providers.TypeBot, "Request failed: %s", err)
	}
}

func (r *Router) edit(chatID int64, messageID int, text string) {
	r.request(tgbotapi.NewEditMessageText(chatID, messageID, text))
}

func identityOf(u *tgbotapi.User) models.Identity {
	return models.Identity{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.UserName,
		LanguageCode: u.LanguageCode,
	}
}
