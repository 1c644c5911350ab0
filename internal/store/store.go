// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/Renotrader31/options-calculator/internal/models"
)

// AnalysisRecord is one saved strategy analysis in the journal.
type AnalysisRecord struct {
	ID        int64
	CreatedAt time.Time
	Label     string
	Context   models.PricingContext
	Legs      []models.OptionLeg
	Summary   models.StrategySummary
}

// AnalysisFilter represents filters for querying the journal.
type AnalysisFilter struct {
	Label     string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// DataStore defines the interface for analysis persistence.
type DataStore interface {
	SaveAnalysis(ctx context.Context, record *AnalysisRecord) (int64, error)
	GetAnalysis(ctx context.Context, id int64) (*AnalysisRecord, error)
	ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]AnalysisRecord, error)
	DeleteAnalysis(ctx context.Context, id int64) error
	Close() error
}
