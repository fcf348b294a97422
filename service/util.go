package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"go-tycoon/entities"
)

// newGameID 8 位短 id，和房间号一样方便口头传
func newGameID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func newPlayerID() string {
	return "player_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

func parseKind(kind string) (entities.PlayerKind, error) {
	switch entities.PlayerKind(kind) {
	case "", entities.PlayerHuman:
		return entities.PlayerHuman, nil
	case entities.PlayerRuleBasedAI, entities.PlayerRemoteAI:
		return entities.PlayerKind(kind), nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidPlayerKind, kind)
}
