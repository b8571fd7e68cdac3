package card

import "time"

// Quality buckets mirror the drop rarities minted on chain.
type Quality string

const (
	QualityWood    Quality = "wood"
	QualitySilver  Quality = "silver"
	QualityGold    Quality = "gold"
	QualityDiamond Quality = "diamond"
)

var AllQualities = map[Quality]struct{}{
	QualityWood:    {},
	QualitySilver:  {},
	QualityGold:    {},
	QualityDiamond: {},
}

// Card is an owned football-player asset. Stats is an opaque payload from
// the card generator; the console never interprets it beyond identity.
type Card struct {
	ID         string
	OwnerID    string
	PlayerName string
	Quality    Quality
	Stats      map[string]int64
	TokenID    int64
	MintedAt   *time.Time
	CreatedAt  time.Time
}

// Minted reports whether the card already exists as an on-chain token.
func (c Card) Minted() bool {
	return c.MintedAt != nil
}
