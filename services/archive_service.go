package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/storage"
)

const snapshotContentType = "application/json"

// ArchiveService publishes JSON snapshots of the tournament to object storage.
type ArchiveService interface {
	Snapshot(ctx context.Context) (*storage.UploadResult, error)
}

type archiveService struct {
	tournament TournamentService
	uploader   storage.FileUploader
	logger     *slog.Logger
}

// NewArchiveService accepts a nil uploader; Snapshot then reports ErrArchiveDisabled.
func NewArchiveService(tournament TournamentService, uploader storage.FileUploader, logger *slog.Logger) ArchiveService {
	return &archiveService{
		tournament: tournament,
		uploader:   uploader,
		logger:     orDefaultLogger(logger),
	}
}

func (s *archiveService) Snapshot(ctx context.Context) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrArchiveDisabled
	}

	overview, err := s.tournament.Overview(ctx)
	if err != nil {
		return nil, err
	}
	body, err := json.MarshalIndent(overview, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := storage.SnapshotKey(overview.TakenAt)
	result, err := s.uploader.Upload(ctx, key, snapshotContentType, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}
	s.logger.InfoContext(ctx, "standings snapshot archived",
		slog.String("key", result.Key),
		slog.Int("players", overview.PlayerCount),
		slog.Int("matches", len(overview.Matches)))
	return result, nil
}
