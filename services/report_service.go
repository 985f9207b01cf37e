package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/bowen700/fantasy-workplace/repositories"
	"github.com/bowen700/fantasy-workplace/storage"
	"github.com/google/uuid"
)

type ReportService interface {
	// ExportStandings renders the season's current standings as a CSV
	// snapshot, uploads it to object storage and returns the result with
	// a shareable URL.
	ExportStandings(ctx context.Context, seasonID int) (*storage.UploadResult, error)
}

type reportService struct {
	seasonRepo repositories.SeasonRepository
	standings  StandingsService
	uploader   storage.FileUploader
}

func NewReportService(
	seasonRepo repositories.SeasonRepository,
	standings StandingsService,
	uploader storage.FileUploader,
) ReportService {
	return &reportService{
		seasonRepo: seasonRepo,
		standings:  standings,
		uploader:   uploader,
	}
}

func (s *reportService) ExportStandings(ctx context.Context, seasonID int) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrReportingNotConfigured
	}
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season %d: %w", seasonID, err)
	}
	entries, err := s.standings.GetStandings(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive standings for season %d: %w", seasonID, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	records := [][]string{{"rank", "competitor", "wins", "losses", "total_points"}}
	for _, e := range entries {
		name := strconv.Itoa(e.CompetitorID)
		if e.Competitor != nil {
			name = e.Competitor.DisplayName()
		}
		records = append(records, []string{
			strconv.Itoa(e.Rank),
			name,
			strconv.Itoa(e.Wins),
			strconv.Itoa(e.Losses),
			strconv.FormatFloat(e.TotalPoints, 'f', 2, 64),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to render standings CSV: %w", err)
	}

	key := fmt.Sprintf("reports/season_%d/standings_%s.csv", season.ID, uuid.New().String())
	result, err := s.uploader.Upload(ctx, key, "text/csv", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to upload standings report: %w", err)
	}
	return result, nil
}
