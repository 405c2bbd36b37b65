//go:build wireinject
// +build wireinject

package di

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	wire "github.com/google/wire"

	"github.com/Abdualzizsm/telegram-bot/internal"
	"github.com/Abdualzizsm/telegram-bot/internal/bot"
	"github.com/Abdualzizsm/telegram-bot/internal/controllers"
	"github.com/Abdualzizsm/telegram-bot/internal/downloader"
	"github.com/Abdualzizsm/telegram-bot/internal/ledger"
	"github.com/Abdualzizsm/telegram-bot/internal/providers"
	"github.com/Abdualzizsm/telegram-bot/internal/services"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewTelegramProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		ledger.NewZstdCompressor,
		ledger.NewFileManager,
		wire.Bind(new(services.LedgerStore), new(*ledger.FileManager)),
		services.NewLedgerService,
		ledger.NewBackupManager,
		ledger.NewScheduler,

		wire.Bind(new(downloader.Transport), new(*tgbotapi.BotAPI)),
		wire.Bind(new(bot.API), new(*tgbotapi.BotAPI)),
		downloader.NewOrchestrator,
		bot.NewRouter,

		controllers.NewStatsController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
