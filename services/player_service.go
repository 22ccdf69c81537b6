package services

import (
	"errors"
	"log"
	"path/filepath"
	"strconv"

	"poker-league-system/repositories"
	"poker-league-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PlayerService exposes the local player mirror. Players are written by
// the sync worker; this service only reads, except for avatar uploads.
type PlayerService struct {
	Store repositories.LeagueStore
}

func NewPlayerService(store repositories.LeagueStore) *PlayerService {
	return &PlayerService{Store: store}
}

// SearchPlayers handles GET /players with optional q, role and limit.
func (s *PlayerService) SearchPlayers(c *fiber.Ctx) error {
	query := c.Query("q", "")
	role := c.Query("role", "")
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	players, err := s.Store.ListPlayers(c.UserContext(), query, role, limit)
	if err != nil {
		log.Printf("[PLAYER] search %q failed: %v", query, err)
		return errorJSON(c, err)
	}
	return c.JSON(players)
}

// GetPlayer handles GET /players/:id.
func (s *PlayerService) GetPlayer(c *fiber.Ctx) error {
	p, err := s.Store.GetPlayer(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "player not found"})
		}
		log.Printf("[PLAYER] get %s failed: %v", c.Params("id"), err)
		return errorJSON(c, err)
	}
	return c.JSON(p)
}

// UploadAvatar handles POST /players/:id/avatar (multipart). The image
// goes to R2; the player row keeps only the public URL.
func (s *PlayerService) UploadAvatar(c *fiber.Ctx) error {
	playerID := c.Params("id")
	if _, err := s.Store.GetPlayer(c.UserContext(), playerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "player not found"})
		}
		log.Printf("[PLAYER] get %s failed: %v", playerID, err)
		return errorJSON(c, err)
	}

	avatar, err := c.FormFile("avatar")
	if err != nil || avatar.Size == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "avatar file is required"})
	}
	ext := filepath.Ext(avatar.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "players/avatars/" + uuid.NewString() + ext
	url, err := utils.UploadFileToR2(avatar, key)
	if err != nil {
		log.Printf("[PLAYER] avatar upload for %s failed: %v", playerID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to upload avatar"})
	}
	if err := s.Store.UpdatePlayerAvatar(c.UserContext(), playerID, url); err != nil {
		log.Printf("[PLAYER] save avatar url for %s failed: %v", playerID, err)
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}
