// Package model holds the GORM table mappings for the postgres ledger driver.
package model

import "time"

// LedgerEntryModel mirrors the 'ledger_entries' table, the keyed half of the
// ledger. One row per key; Put overwrites in place.
type LedgerEntryModel struct {
	Key       string `gorm:"type:text;primaryKey"`
	Value     []byte `gorm:"type:bytea;not null"`
	TxRef     string `gorm:"type:varchar(130);not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// LedgerItemModel mirrors the 'ledger_items' table, the ordered half of the
// ledger. Rows are append-only; (collection, idx) is dense from zero.
type LedgerItemModel struct {
	Collection string `gorm:"type:text;primaryKey"`
	Idx        uint64 `gorm:"primaryKey;autoIncrement:false"`
	Value      []byte `gorm:"type:bytea;not null"`
	TxRef      string `gorm:"type:varchar(130);not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (LedgerItemModel) TableName() string {
	return "ledger_items"
}

// LedgerCollectionModel mirrors the 'ledger_collections' table. The counter
// row is locked during append so concurrent appends receive distinct
// consecutive indexes.
type LedgerCollectionModel struct {
	Collection string `gorm:"type:text;primaryKey"`
	Count      uint64 `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (LedgerCollectionModel) TableName() string {
	return "ledger_collections"
}
