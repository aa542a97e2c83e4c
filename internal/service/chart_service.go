package service

import (
	"context"
	"fmt"
	"log"

	"trackclash/internal/charts"
	"trackclash/internal/models"
	"trackclash/internal/repository"
	"trackclash/internal/validation"
)

// ChartService maintains the local chart archive that quick play samples
type ChartService struct {
	chartRepo *repository.ChartRepository
	client    *charts.Client
}

// NewChartService creates a new chart service
func NewChartService(chartRepo *repository.ChartRepository, client *charts.Client) *ChartService {
	return &ChartService{
		chartRepo: chartRepo,
		client:    client,
	}
}

// ArchivedWeeks lists the locally imported weeks for a chart
func (s *ChartService) ArchivedWeeks(slug string) ([]string, error) {
	if err := validation.ValidateChartSlug(slug); err != nil {
		return nil, err
	}
	return s.chartRepo.ListWeeks(slug)
}

// ArchivedWeek returns one imported week's entries in rank order. An empty
// result means the week was never imported.
func (s *ChartService) ArchivedWeek(slug, week string) ([]models.ChartEntry, error) {
	if err := validation.ValidateChartSlug(slug); err != nil {
		return nil, err
	}
	if err := validation.ValidateChartWeek(week); err != nil {
		return nil, err
	}
	return s.chartRepo.GetWeek(slug, week)
}

// ImportWeek fetches one chart week from the data source and stores it in
// the archive
func (s *ChartService) ImportWeek(ctx context.Context, slug, week string) error {
	if err := validation.ValidateChartSlug(slug); err != nil {
		return err
	}
	if err := validation.ValidateChartWeek(week); err != nil {
		return err
	}
	if !charts.IsKnownChart(slug) {
		return ErrUnknownChart
	}

	entries, err := s.client.FetchWeek(ctx, slug, week)
	if err != nil {
		return fmt.Errorf("fetch %s/%s: %w", slug, week, err)
	}

	if err := s.chartRepo.InsertWeek(slug, week, entries); err != nil {
		return fmt.Errorf("store %s/%s: %w", slug, week, err)
	}

	log.Printf("Imported chart week %s/%s (%d entries)", slug, week, len(entries))
	return nil
}

// ImportChart fetches and stores every available week of a chart. Errors on
// individual weeks are logged and skipped so one bad week doesn't abort a
// long import.
func (s *ChartService) ImportChart(ctx context.Context, slug string) (int, error) {
	if !charts.IsKnownChart(slug) {
		return 0, ErrUnknownChart
	}

	weeks, err := s.client.ValidWeeks(ctx, slug)
	if err != nil {
		return 0, fmt.Errorf("list weeks for %s: %w", slug, err)
	}

	imported := 0
	for _, week := range weeks {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		if err := s.ImportWeek(ctx, slug, week); err != nil {
			log.Printf("Skipping week %s/%s: %v", slug, week, err)
			continue
		}
		imported++
	}

	return imported, nil
}
