package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Abdualzizsm/telegram-bot/internal/models"
	"github.com/Abdualzizsm/telegram-bot/internal/providers"
)

const (
	dashboardTitle = "🎛 لوحة تحكم المشرف\nاختر ما تريد عرضه:"

	// Telegram rejects messages above 4096 chars; user list chunks stay
	// below that with headroom.
	maxChunkLen = 4000

	statsCacheKey = "dashboard:stats"
)

func dashboardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("👥 قائمة المستخدمين", "list_users")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📊 إحصائيات عامة", "general_stats")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔍 بحث عن مستخدم", "search_user")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📢 رسالة جماعية", "broadcast")),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔄 رجوع", "back_to_menu")),
	)
}

// renderGeneralStats builds the aggregate statistics card. Results are cached
// briefly since every counter comes from a full ledger snapshot.
func (r *Router) renderGeneralStats() string {
	if cached, ok := r.cache.Get(statsCacheKey); ok {
		return string(cached)
	}

	snap := r.service.Snapshot()
	now := time.Now()
	threshold := r.inactiveThreshold()

	var youtube, snapchat int64
	active, inactive := 0, 0
	for _, p := range snap.Users {
		youtube += p.YouTubeDownloads
		snapchat += p.SnapchatDownloads
		if p.RecomputeStatus(now, threshold) == models.StatusActive {
			active++
		} else {
			inactive++
		}
	}

	text := fmt.Sprintf(
		"📊 إحصائيات عامة\n"+
			"━━━━━━━━━━━━━━\n"+
			"👥 المستخدمين:\n"+
			"• نشط: %d 🟢\n"+
			"• غير نشط: %d 🔴\n"+
			"• الإجمالي: %d\n\n"+
			"📥 التحميلات:\n"+
			"• المجموع: %d\n"+
			"• يوتيوب: %d\n"+
			"• سناب شات: %d\n",
		active, inactive, len(snap.Users), snap.TotalDownloads, youtube, snapchat,
	)

	r.cache.Set(statsCacheKey, []byte(text))
	return text
}

// sendUserList renders the full user list and sends it in chunks under the
// transport's message-size limit.
func (r *Router) sendUserList(chatID int64, messageID int) {
	profiles := r.service.Profiles()
	now := time.Now()
	threshold := r.inactiveThreshold()

	active, inactive := 0, 0
	for _, p := range profiles {
		if p.RecomputeStatus(now, threshold) == models.StatusActive {
			active++
		} else {
			inactive++
		}
	}

	header := fmt.Sprintf(
		"👥 إحصائيات المستخدمين:\n"+
			"━━━━━━━━━━━━━━\n"+
			"• المستخدمين النشطين: %d 🟢\n"+
			"• المستخدمين غير النشطين: %d 🔴\n"+
			"• الإجمالي: %d\n\n"+
			"قائمة جميع المستخدمين:\n",
		active, inactive, len(profiles),
	)
	r.edit(chatID, messageID, header)

	var chunk strings.Builder
	for i, p := range profiles {
		lastActive := "منذ لحظات"
		if p.LastActive != nil {
			lastActive = formatTimeAgo(now, *p.LastActive)
		}
		joined := now.Format("02-01-2006")
		if p.JoinedAt != nil {
			joined = p.JoinedAt.Format("02-01-2006")
		}

		entry := fmt.Sprintf(
			"%d. %s\n"+
				"↳ المعرف: %s\n"+
				"↳ ID: %d\n"+
				"↳ الحالة: %s\n"+
				"↳ التحميلات:\n"+
				"   • المجموع: %d\n"+
				"   • يوتيوب: %d\n"+
				"   • سناب شات: %d\n"+
				"↳ التفاعلات: %d\n"+
				"↳ آخر نشاط: %s\n"+
				"↳ تاريخ الانضمام: %s\n\n",
			i+1, p.DisplayName(), usernameDisplay(p.Username), p.UserID,
			statusLabel(p.Status), p.Downloads, p.YouTubeDownloads,
			p.SnapchatDownloads, p.TotalInteractions, lastActive, joined,
		)

		if chunk.Len()+len(entry) > maxChunkLen {
			r.send(tgbotapi.NewMessage(chatID, chunk.String()))
			chunk.Reset()
		}
		chunk.WriteString(entry)
	}

	if chunk.Len() > 0 {
		msg := tgbotapi.NewMessage(chatID, chunk.String())
		msg.ReplyMarkup = backKeyboard()
		r.send(msg)
	}
}

// runBroadcast delivers the admin's text to every profile in the ledger and
// reports the sent/failed tally. Per-recipient failures are logged and
// counted, never fatal.
func (r *Router) runBroadcast(chatID int64, text string) {
	r.send(tgbotapi.NewMessage(chatID, "جاري إرسال الرسالة للمستخدمين..."))

	snap := r.service.Snapshot()
	sent, failed := 0, 0
	for uid := range snap.Users {
		msg := tgbotapi.NewMessage(uid, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := r.api.Send(msg); err != nil {
			failed++
			r.metrics.IncBroadcastFailed()
			r.logger.Errorf(providers.TypeBot, "Error sending broadcast to %d: %s", uid, err)
			continue
		}
		sent++
		r.metrics.IncBroadcastSent()
	}

	r.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"✅ تم إرسال الرسالة بنجاح!\n\n📤 تم الإرسال: %d\n❌ فشل الإرسال: %d",
		sent, failed,
	)))
}
