package store

import (
	"context"
	"errors"

	"charitydash/pkg/types"

	"github.com/sirupsen/logrus"
)

const partnersFileName = "partners.json"

type PartnerRepository struct {
	partners *Collection[types.Partner, *types.Partner]
}

func NewPartnerRepository(logger *logrus.Logger, dataDir string, opts ...Option) *PartnerRepository {
	return &PartnerRepository{
		partners: NewCollection[types.Partner](logger, dataDir, partnersFileName, opts...),
	}
}

// Partners returns every stored partner, oldest first.
func (r *PartnerRepository) Partners(ctx context.Context) []*types.Partner {
	return r.partners.List(ctx)
}

func (r *PartnerRepository) Partner(ctx context.Context, partnerID string) (*types.Partner, error) {
	partner, err := r.partners.Get(ctx, partnerID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, types.ErrPartnerNotFound
	}

	return partner, err
}

func (r *PartnerRepository) CreatePartner(ctx context.Context, partner *types.Partner) (*types.Partner, error) {
	return r.partners.Add(ctx, partner)
}

// UpdatePartner merges patch (JSON field names) into the stored partner.
func (r *PartnerRepository) UpdatePartner(ctx context.Context, partnerID string, patch map[string]any) (*types.Partner, error) {
	partner, err := r.partners.Update(ctx, partnerID, patch)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, types.ErrPartnerNotFound
	}

	return partner, err
}

func (r *PartnerRepository) DeletePartner(ctx context.Context, partnerID string) error {
	return r.partners.Delete(ctx, partnerID)
}
