package seed

import (
	"context"
	"fmt"

	"charitydash/internal/store"
	"charitydash/pkg/types"
)

// SeedAddedBy marks records created by the seed commands so they can be reset.
const SeedAddedBy = "seed"

// SeedPartners adds the partner definitions below. A partner whose name is
// already on file is left alone, so the seed can run repeatedly.
func SeedPartners(ctx context.Context, repo *store.PartnerRepository) (int, error) {
	partners := []types.Partner{
		{
			Name:            "Saudi Red Crescent Authority",
			Type:            "Government",
			Description:     "Emergency medical response and relief supplies during campaigns.",
			Phone:           "0551234567",
			Email:           "relief@example.org",
			Website:         "https://www.srca.org.sa",
			Location:        "Riyadh",
			Services:        "First aid, ambulances, volunteers",
			ContactPerson:   "Khalid Al-Harbi",
			ContactPosition: "Volunteer coordinator",
		},
		{
			Name:            "Al Bir Food Bank",
			Type:            "NGO",
			Description:     "Collects surplus food and prepares weekly baskets for families.",
			Phone:           "0569876543",
			Email:           "contact@foodbank.example.org",
			Location:        "Jeddah",
			Services:        "Food baskets, Ramadan iftar meals",
			ContactPerson:   "Noura Al-Qahtani",
			ContactPosition: "Operations manager",
		},
		{
			Name:        "Hope Orphan Care",
			Type:        "Charity",
			Description: "Sponsors education and health care for orphaned children.",
			Email:       "info@hope.example.org",
			Location:    "Dammam",
			Services:    "School supplies, tutoring, health checks",
			Notes:       "Prefers joint events during school holidays.",
		},
		{
			Name:        "Tech For Good Company",
			Type:        "Private sector",
			Description: "Donates refurbished laptops and runs digital skills workshops.",
			Website:     "https://techforgood.example.com",
			Location:    "Riyadh",
			Services:    "Equipment donations, training",
		},
	}

	existing := make(map[string]bool)
	for _, partner := range repo.Partners(ctx) {
		existing[partner.Name] = true
	}

	created := 0
	for _, partner := range partners {
		if existing[partner.Name] {
			continue
		}

		partner.AddedBy = SeedAddedBy
		if _, err := repo.CreatePartner(ctx, &partner); err != nil {
			return created, fmt.Errorf("failed to seed partner %s: %w", partner.Name, err)
		}
		created++
	}

	return created, nil
}
