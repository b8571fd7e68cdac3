package memory

import (
	"time"

	"github.com/goalcard/console-api/internal/domain/card"
	"github.com/goalcard/console-api/internal/domain/marketplace"
)

const (
	OwnerIDDemoManager  = "mgr-demo-0001"
	OwnerIDRivalManager = "mgr-rival-0002"

	CardIDDemoKeeper   = "card-gk-0001"
	CardIDDemoStriker  = "card-fw-0001"
	CardIDDemoWinger   = "card-fw-0002"
	CardIDRivalDefence = "card-df-0001"

	LotIDStrikerAuction = "lot-fw-0001"
)

func SeedCards() []card.Card {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	return []card.Card{
		{
			ID:         CardIDDemoKeeper,
			OwnerID:    OwnerIDDemoManager,
			PlayerName: "Emil Korhonen",
			Quality:    card.QualityGold,
			Stats:      map[string]int64{"reflexes": 88, "handling": 84, "kicking": 71},
			CreatedAt:  createdAt,
		},
		{
			ID:         CardIDDemoStriker,
			OwnerID:    OwnerIDDemoManager,
			PlayerName: "Rafael Duarte",
			Quality:    card.QualityDiamond,
			Stats:      map[string]int64{"finishing": 94, "pace": 91, "dribbling": 87},
			CreatedAt:  createdAt,
		},
		{
			ID:         CardIDDemoWinger,
			OwnerID:    OwnerIDDemoManager,
			PlayerName: "Tomas Vacek",
			Quality:    card.QualitySilver,
			Stats:      map[string]int64{"pace": 89, "crossing": 78, "stamina": 82},
			CreatedAt:  createdAt,
		},
		{
			ID:         CardIDRivalDefence,
			OwnerID:    OwnerIDRivalManager,
			PlayerName: "Janek Olsen",
			Quality:    card.QualityWood,
			Stats:      map[string]int64{"tackling": 66, "marking": 70, "strength": 74},
			CreatedAt:  createdAt,
		},
	}
}

func SeedLots() []marketplace.Lot {
	listedAt := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	return []marketplace.Lot{
		{
			ID:           LotIDStrikerAuction,
			CardID:       CardIDDemoWinger,
			SellerID:     OwnerIDDemoManager,
			StartPrice:   250,
			MaxPrice:     1200,
			CurrentPrice: 250,
			StartTime:    listedAt,
			EndTime:      listedAt.Add(48 * time.Hour),
			Period:       48,
			Status:       marketplace.StatusActive,
			CreatedAt:    listedAt,
			UpdatedAt:    listedAt,
		},
	}
}
