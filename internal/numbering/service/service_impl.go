package service

import (
	"context"
	"errors"

	"github.com/mrossi-dev/gestionale/internal/config"
	numberingdomain "github.com/mrossi-dev/gestionale/internal/numbering/domain"
	"github.com/mrossi-dev/gestionale/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    numberingdomain.Repository
	Config  *config.NumberingConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    numberingdomain.Repository
	config  *config.NumberingConfigHolder
	metrics *metrics.Metrics
}

func NewService(p Params) numberingdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("numbering.service"),
		repo:    p.Repo,
		config:  p.Config,
		metrics: p.Metrics,
	}
}

func (s *Service) Next(ctx context.Context, db *gorm.DB, docType string, year int) (numberingdomain.Allocation, error) {
	if db == nil {
		db = s.db
	}

	counter, err := s.repo.Next(ctx, db, docType, year, s.defaultsFor(docType))
	if err != nil {
		return numberingdomain.Allocation{}, err
	}

	s.metrics.RecordNumberAllocated(docType)
	s.log.Debug("number allocated",
		zap.String("document_type", docType),
		zap.Int("year", year),
		zap.Int64("number", counter.LastNumber),
	)

	return numberingdomain.Allocation{
		Number:    counter.LastNumber,
		Year:      year,
		Formatted: counter.Format(counter.LastNumber),
	}, nil
}

func (s *Service) Peek(ctx context.Context, docType string, year int) (numberingdomain.Allocation, error) {
	counter, err := s.repo.Find(ctx, s.db, docType, year)
	if errors.Is(err, numberingdomain.ErrCounterNotFound) {
		defaults := s.defaultsFor(docType)
		counter = &numberingdomain.Counter{
			DocumentType: docType,
			Year:         year,
			Prefix:       defaults.Prefix,
			Suffix:       defaults.Suffix,
			PadWidth:     defaults.PadWidth,
		}
	} else if err != nil {
		return numberingdomain.Allocation{}, err
	}

	next := counter.LastNumber + 1
	return numberingdomain.Allocation{
		Number:    next,
		Year:      year,
		Formatted: counter.Format(next),
	}, nil
}

func (s *Service) List(ctx context.Context) ([]numberingdomain.Counter, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Configure(ctx context.Context, docType string, year int, defaults numberingdomain.Defaults) (*numberingdomain.Counter, error) {
	counter, err := s.repo.Configure(ctx, s.db, docType, year, defaults)
	if err != nil {
		return nil, err
	}
	s.log.Info("counter configured",
		zap.String("document_type", docType),
		zap.Int("year", year),
		zap.String("prefix", defaults.Prefix),
		zap.Int("pad_width", defaults.PadWidth),
	)
	return counter, nil
}

func (s *Service) defaultsFor(docType string) numberingdomain.Defaults {
	d := s.config.DefaultsFor(docType)
	return numberingdomain.Defaults{
		Prefix:   d.Prefix,
		Suffix:   d.Suffix,
		PadWidth: d.PadWidth,
	}
}
