// =============================================================================
// Sales Reporter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (decoding)
//   - stream (producing transactions)
//   - report (aggregating transactions)
//   - render (serializing full dumps)
//
// =============================================================================

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents a single point-of-sale record from the input file.
// A Transaction is a plain value: it has no identity beyond its fields.
type Transaction struct {
	// ShopName is the name of the shop that made the sale.
	ShopName string `json:"shopName" yaml:"shopName"`

	// City is the city the shop is located in.
	City string `json:"city" yaml:"city"`

	// Street is the street address of the shop.
	Street string `json:"street" yaml:"street"`

	// Item is the name of the item that was sold.
	Item string `json:"item" yaml:"item"`

	// Timestamp is the point in time the sale occurred.
	// The offset from the source is kept as-is, it is never normalized to UTC.
	Timestamp time.Time `json:"dateTime" yaml:"dateTime"`

	// Price is the exact sale amount.
	Price decimal.Decimal `json:"price" yaml:"price"`
}

// FieldCount is the number of fields every input record must carry.
const FieldCount = 6

// Field names, in input column order. Used in parse error messages.
const (
	FieldShopName  = "shopName"
	FieldCity      = "city"
	FieldStreet    = "street"
	FieldItem      = "item"
	FieldTimestamp = "dateTime"
	FieldPrice     = "price"
)

// TimestampLayout is the layout used when a transaction timestamp is rendered.
// Fractional seconds are written only when present.
const TimestampLayout = time.RFC3339Nano
