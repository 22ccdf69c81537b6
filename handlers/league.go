package handlers

import (
	"poker-league-system/middleware"
	"poker-league-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupLeagueRoutes registers the full league surface. Everything is
// behind the gateway token; authenticated routes additionally require the
// user-context headers the gateway sets. Staff-only endpoints enforce
// their own role check.
func SetupLeagueRoutes(
	app *fiber.App,
	tournamentService *services.TournamentService,
	eliminationService *services.EliminationService,
	rankingService *services.RankingService,
	winnerService *services.WinnerService,
	playerService *services.PlayerService,
) {
	// Public reads (standings pages, hall of champions)
	app.Get("/tournaments", tournamentService.ListTournaments)
	app.Get("/tournaments/number/:number", tournamentService.GetTournamentByNumber)
	app.Get("/tournaments/:id", tournamentService.GetTournamentByID)
	app.Get("/tournaments/:id/ranking", rankingService.RankingEndpoint)
	app.Get("/winners", winnerService.AllWinnersEndpoint)
	app.Get("/winners/:number", winnerService.WinnerByNumberEndpoint)
	app.Get("/players", playerService.SearchPlayers)
	app.Get("/players/:id", playerService.GetPlayer)

	// Authenticated routes
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Live scorekeeping
	secured.Get("/game-dates/:id", tournamentService.GetGameDate)
	secured.Get("/game-dates/:id/eliminations", eliminationService.ListEliminationsEndpoint)
	secured.Post("/game-dates/:id/eliminations", eliminationService.RecordEliminationEndpoint)

	// Player profile
	secured.Post("/players/:id/avatar", playerService.UploadAvatar)

	// Staff-only lifecycle & curation
	admin := secured.Group("/admin")
	admin.Post("/tournaments", tournamentService.CreateTournament)
	admin.Patch("/tournaments/:id/status", tournamentService.UpdateTournamentStatus)
	admin.Post("/tournaments/:id/dates", tournamentService.CreateGameDate)
	admin.Post("/game-dates/:id/configure", tournamentService.ConfigureGameDate)
	admin.Post("/game-dates/:id/start", tournamentService.StartGameDate)
	admin.Post("/game-dates/:id/complete", tournamentService.CompleteGameDate)
	admin.Delete("/game-dates/:id/eliminations", eliminationService.PurgeEliminationsEndpoint)
	admin.Post("/winner-overrides", winnerService.CreateOverrideEndpoint)
}
