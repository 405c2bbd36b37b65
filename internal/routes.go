package internal

import (
	"net/http"

	"github.com/Abdualzizsm/telegram-bot/internal/controllers"
	"github.com/Abdualzizsm/telegram-bot/internal/providers"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

func InitRoutes(statsController *controllers.StatsController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/stats", http.HandlerFunc(statsController.GetStats))
	routers.Get("/users", http.HandlerFunc(statsController.GetUsers))
	return routers
}
