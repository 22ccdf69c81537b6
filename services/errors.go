package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Domain error taxonomy. Every way an operation can fail has its own
// named kind so callers and tests can branch on why, never on message
// text. The transport methods below translate kind → HTTP status; the
// services themselves never recover.
var (
	// Elimination recording
	ErrGameDateNotInProgress   = errors.New("game date is not in progress")
	ErrInvalidPosition         = errors.New("position is outside the roster range")
	ErrPlayerAlreadyEliminated = errors.New("player is already eliminated in this game date")
	ErrPositionAlreadyTaken    = errors.New("position is already taken in this game date")
	ErrInvalidEliminator       = errors.New("eliminator is not a valid roster player")

	// Ranking & winners
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrNoCompletedDates   = errors.New("tournament has no game dates with recorded eliminations")
	ErrPlayerNotInRanking = errors.New("no champion resolvable from the tournament ranking")
)

// statusForError maps a domain error kind to its HTTP response class.
// Validation failures are the client's fault (400), unresolvable
// identities are 404, anything unclassified is a server error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrGameDateNotInProgress),
		errors.Is(err, ErrInvalidPosition),
		errors.Is(err, ErrPlayerAlreadyEliminated),
		errors.Is(err, ErrPositionAlreadyTaken),
		errors.Is(err, ErrInvalidEliminator),
		errors.Is(err, ErrNoCompletedDates):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrTournamentNotFound),
		errors.Is(err, ErrPlayerNotInRanking):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// errorJSON writes the standard error body. Unclassified failures get a
// generic message so internals never leak; the caller is expected to have
// logged the underlying error with context already.
func errorJSON(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
