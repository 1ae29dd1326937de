package demand

import (
	"context"

	"github.com/diewo77/supplier-demand/internal/apperr"
)

// Report is the payload of GET /supplier-demand/{supplierCode}.
type Report struct {
	SupplierCode   string `json:"supplierCode"`
	SupplierName   string `json:"supplierName"`
	TotalMaterials int    `json:"totalMaterials"`
	Demand         []Line `json:"demand"`
}

// Service assembles demand reports.
type Service struct {
	repo     Repository
	resolver *Resolver
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, resolver: NewResolver(repo)}
}

// SupplierDemand returns the demand of code across every allocated material
// with a forecast. A blank code is a validation error, an unknown supplier is
// a not-found error and a known supplier without allocations yields an empty
// report.
func (s *Service) SupplierDemand(ctx context.Context, code string) (*Report, error) {
	if code == "" {
		return nil, &apperr.ValidationError{Violations: map[string]string{"supplierCode": "required"}}
	}
	sup, err := s.repo.GetSupplierByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	rows, err := s.resolver.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	lines, err := ComputeDemand(rows)
	if err != nil {
		return nil, apperr.Storage("compute demand", err)
	}
	return &Report{
		SupplierCode:   sup.SupplierCode,
		SupplierName:   sup.SupplierName,
		TotalMaterials: len(lines),
		Demand:         lines,
	}, nil
}
