package bot

import (
	"fmt"
	"time"

	"github.com/Abdualzizsm/telegram-bot/internal/models"
)

// formatTimeAgo renders the elapsed time since t in the bot's locale.
func formatTimeAgo(now, t time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "منذ لحظات"
	case diff < time.Hour:
		return fmt.Sprintf("منذ %d دقيقة", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("منذ %d ساعة", int(diff.Hours()))
	default:
		return fmt.Sprintf("منذ %d يوم", int(diff.Hours()/24))
	}
}

// statusLabel renders the 7-day activity status with its glyph.
func statusLabel(status string) string {
	if status == models.StatusActive {
		return "نشط 🟢"
	}
	return "غير نشط 🔴"
}

// usernameDisplay renders a handle or the no-handle placeholder.
func usernameDisplay(username string) string {
	if username == "" {
		return "لا يوجد معرف"
	}
	return "@" + username
}

// formatProfileInfo renders one profile's full info card.
func formatProfileInfo(p *models.UserProfile, now time.Time) string {
	joined := "غير متوفر"
	if p.JoinedAt != nil {
		joined = p.JoinedAt.Format("02-01-2006")
	}
	lastActive := "غير متوفر"
	if p.LastActive != nil {
		lastActive = formatTimeAgo(now, *p.LastActive)
	}
	premium := "لا"
	if p.IsPremium {
		premium = "نعم"
	}
	return fmt.Sprintf(
		"📱 معلومات المستخدم\n"+
			"━━━━━━━━━━━━━━\n"+
			"🆔 المعرف: %d\n"+
			"👤 الاسم: %s\n"+
			"🌐 المعرف: %s\n"+
			"📅 تاريخ الانضمام: %s\n"+
			"⭐️ مستخدم مميز: %s\n"+
			"🗣 اللغة: %s\n"+
			"⏱ آخر نشاط: %s\n"+
			"📊 إحصائيات التحميل:\n"+
			"   • إجمالي التحميلات: %d\n"+
			"   • تحميلات يوتيوب: %d\n"+
			"   • تحميلات سناب شات: %d\n",
		p.UserID, p.DisplayName(), usernameDisplay(p.Username), joined, premium,
		p.LanguageCode, lastActive, p.Downloads, p.YouTubeDownloads, p.SnapchatDownloads,
	)
}
