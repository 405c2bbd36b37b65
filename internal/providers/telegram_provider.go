package providers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

func NewTelegramProvider(conf *structures.Config, logger Logger) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(conf.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	api.Debug = conf.Debug

	logger.Infof(TypeBot, "Authorized on account %s", api.Self.UserName)
	return api, nil
}
