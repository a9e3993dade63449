package service

import (
	"context"
	"errors"

	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/lib/lookup"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/rs/zerolog"
)

// CEPLookup resolves postal codes.
type CEPLookup interface {
	Lookup(ctx context.Context, cep string) (*lookup.Endereco, error)
}

// CNPJLookup resolves company tax IDs.
type CNPJLookup interface {
	Lookup(ctx context.Context, cnpj string) (*lookup.Empresa, error)
}

// LookupService exposes the address and company lookups with localized failures.
type LookupService struct {
	base
	cep  CEPLookup
	cnpj CNPJLookup
}

func NewLookupService(cep CEPLookup, cnpj CNPJLookup, logger *zerolog.Logger) *LookupService {
	return &LookupService{
		base: base{logger: logger},
		cep:  cep,
		cnpj: cnpj,
	}
}

// CEP returns nil, nil for input that is not a postal code.
func (s *LookupService) CEP(ctx context.Context, cep string) (*lookup.Endereco, error) {
	endereco, err := s.cep.Lookup(ctx, cep)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityCEP, notify.ActionLookup, lookupError(err, "CEP não encontrado"))
	}
	return endereco, nil
}

// CNPJ returns nil, nil for input that is not a CNPJ.
func (s *LookupService) CNPJ(ctx context.Context, cnpj string) (*lookup.Empresa, error) {
	empresa, err := s.cnpj.Lookup(ctx, cnpj)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityCNPJ, notify.ActionLookup, lookupError(err, "CNPJ não encontrado"))
	}
	return empresa, nil
}

func lookupError(err error, notFound string) error {
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		return errs.NewNotFoundError(notFound, true, nil)
	case errors.Is(err, lookup.ErrUnavailable):
		return errs.NewServiceUnavailableError("Serviço de consulta temporariamente indisponível", true)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return errs.NewBadGatewayError("Falha na consulta externa: "+err.Error(), true)
	}
}
