package services

import (
	"errors"

	"github.com/Dosada05/swiss-tournament/brackets"
)

var (
	// Validation
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrInvalidPlayerID    = errors.New("player id must be a positive integer")
	ErrSamePlayer         = errors.New("winner and loser must be different players")
	ErrInvalidOrder       = errors.New("standings order must be 'asc' or 'desc'")

	// Store-level conditions surfaced to callers
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchAlreadyPlayed = errors.New("players have already been paired")

	// Pairing dead end; the caller may reset history or adjust the field and try again.
	ErrNoValidPairing = brackets.ErrNoValidPairing

	// Auth and archive
	ErrAuthInvalidCredentials = errors.New("invalid organizer password")
	ErrAuthDisabled           = errors.New("organizer authentication is not configured")
	ErrArchiveDisabled        = errors.New("standings archive storage is not configured")
)
