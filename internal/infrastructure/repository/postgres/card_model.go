package postgres

import (
	"database/sql"
	"time"
)

type cardTableModel struct {
	ID         int64         `db:"id"`
	PublicID   string        `db:"public_id"`
	OwnerID    string        `db:"owner_id"`
	PlayerName string        `db:"player_name"`
	Quality    string        `db:"quality"`
	Stats      []byte        `db:"stats"`
	TokenID    sql.NullInt64 `db:"token_id"`
	MintedAt   *time.Time    `db:"minted_at"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	DeletedAt  *time.Time    `db:"deleted_at"`
}
