// Package domain contains the gap-free numbering counters.
package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Counter holds the last number handed out for one (document type,
// year) pair. A new year never resets an old counter: a fresh row is
// created instead, so closed years keep their sequence intact.
type Counter struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	DocumentType string       `gorm:"type:text;not null;uniqueIndex:ux_numbering_type_year" json:"document_type"`
	Year         int          `gorm:"not null;uniqueIndex:ux_numbering_type_year" json:"year"`
	LastNumber   int64        `gorm:"not null;default:0" json:"last_number"`

	Prefix   string `gorm:"type:text;not null;default:''" json:"prefix"`
	Suffix   string `gorm:"type:text;not null;default:''" json:"suffix"`
	PadWidth int    `gorm:"not null;default:0" json:"pad_width"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Counter) TableName() string { return "numbering_counters" }

// Format renders n with the counter's prefix, zero padding and suffix.
// A PadWidth of zero or less leaves the number unpadded. Numbers wider
// than PadWidth are never truncated.
func (c Counter) Format(n int64) string {
	num := strconv.FormatInt(n, 10)
	if c.PadWidth > 0 {
		num = fmt.Sprintf("%0*d", c.PadWidth, n)
	}
	return c.Prefix + num + c.Suffix
}
