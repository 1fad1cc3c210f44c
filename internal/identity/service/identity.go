package service

import (
	"context"

	"pipid/pkg/identity"
	"pipid/pkg/ingester"
	"pipid/pkg/logger"
)

// Loader abstracts the fetch pipeline so tests can substitute a stub for
// the real HTTPS ingester.
type Loader interface {
	Load(ctx context.Context, url string, opts ingester.LoadOptions) (identity.Document, error)
}

type IdentityService interface {
	Validate(doc any) identity.Result
	Normalize(doc any) (identity.Document, error)
	Ingest(ctx context.Context, url string, opts ingester.LoadOptions) (identity.Document, error)
}

type identityService struct {
	validator *identity.Validator
	loader    Loader
	log       *logger.Logger
}

func NewIdentityService(validator *identity.Validator, loader Loader, log *logger.Logger) IdentityService {
	return &identityService{
		validator: validator,
		loader:    loader,
		log:       log,
	}
}

func (s *identityService) Validate(doc any) identity.Result {
	result := s.validator.Validate(doc)
	if !result.Valid {
		s.log.Debug("Identity document failed validation",
			"error_count", len(result.Errors),
		)
	}
	return result
}

func (s *identityService) Normalize(doc any) (identity.Document, error) {
	normalized, err := identity.Normalize(doc)
	if err != nil {
		s.log.Debug("Identity document could not be normalized", "error", err)
		return nil, err
	}
	return normalized, nil
}

func (s *identityService) Ingest(ctx context.Context, url string, opts ingester.LoadOptions) (identity.Document, error) {
	doc, err := s.loader.Load(ctx, url, opts)
	if err != nil {
		s.log.Warn("Identity ingest failed", "error", err)
		return nil, err
	}
	return doc, nil
}
