package domain

import (
	"context"
	"errors"
)

type CreateCompanyRequest struct {
	Name         string
	RNC          string
	Address      string
	AdvanceITBIS float64
}

type UpdateCompanyRequest struct {
	ID           string
	Name         string
	RNC          string
	Address      string
	AdvanceITBIS float64
}

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (Company, error)
	Update(ctx context.Context, req UpdateCompanyRequest) (Company, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Company, error)
	List(ctx context.Context) ([]Company, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidRNC   = errors.New("invalid_rnc")
	ErrInvalidID    = errors.New("invalid_id")
	ErrDuplicateRNC = errors.New("duplicate_rnc")
	ErrNotFound     = errors.New("not_found")
)
