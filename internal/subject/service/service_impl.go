package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	documentdomain "github.com/mrossi-dev/gestionale/internal/document/domain"
	"github.com/mrossi-dev/gestionale/internal/subject/domain"
	"github.com/mrossi-dev/gestionale/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  repository.Repository[domain.Subject]
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Subject]
}

func NewService(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("subject.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Subject, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, documentdomain.NewValidationError("name", "must not be blank")
	}

	role := req.Role
	if role == "" {
		role = domain.RoleClient
	}
	if !role.Valid() {
		return nil, documentdomain.NewValidationError("role", "unknown role "+string(role))
	}

	now := time.Now().UTC()
	subject := &domain.Subject{
		ID:         s.genID.Generate(),
		Name:       name,
		Role:       role,
		VATNumber:  req.VATNumber,
		FiscalCode: req.FiscalCode,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Province:   req.Province,
		Email:      req.Email,
		Phone:      req.Phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.log.Info("subject created", zap.Int64("id", int64(subject.ID)), zap.String("role", string(role)))
	return subject, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Subject, error) {
	subject, err := s.repo.FindOne(ctx, &domain.Subject{ID: id})
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, domain.ErrNotFound
	}
	return subject, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]*domain.Subject, error) {
	query := &domain.Subject{}
	if req.Role != nil {
		query.Role = *req.Role
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		query.Name = name
	}
	return s.repo.Find(ctx, query)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.CreateRequest) (*domain.Subject, error) {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, documentdomain.NewValidationError("name", "must not be blank")
	}
	if req.Role != "" && !req.Role.Valid() {
		return nil, documentdomain.NewValidationError("role", "unknown role "+string(req.Role))
	}

	subject.Name = name
	if req.Role != "" {
		subject.Role = req.Role
	}
	subject.VATNumber = req.VATNumber
	subject.FiscalCode = req.FiscalCode
	subject.Address = req.Address
	subject.City = req.City
	subject.PostalCode = req.PostalCode
	subject.Province = req.Province
	subject.Email = req.Email
	subject.Phone = req.Phone
	subject.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
