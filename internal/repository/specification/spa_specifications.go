package specification

import (
	"gorm.io/gorm"
)

// Category is a public display classification. It is derived from stored
// flags at query time and never stored itself.
type Category string

const (
	CategoryVerified    Category = "verified"
	CategoryUnverified  Category = "unverified"
	CategoryBlacklisted Category = "blacklisted"
)

// SpaCategory translates a display category into its predicate:
//
//	blacklisted: blacklist_reason present, regardless of status or fee flags
//	verified:    status = verified, annual fee paid, not blacklisted
//	unverified:  status = verified, annual fee unpaid, not blacklisted
//
// Anything else is excluded from all public categories.
type SpaCategory struct {
	Category Category
}

func (s SpaCategory) Apply(db *gorm.DB) *gorm.DB {
	switch s.Category {
	case CategoryBlacklisted:
		return db.Where("blacklist_reason IS NOT NULL")
	case CategoryVerified:
		return db.Where("status = ? AND annual_fee_paid = ? AND blacklist_reason IS NULL", "verified", true)
	case CategoryUnverified:
		return db.Where("status = ? AND annual_fee_paid = ? AND blacklist_reason IS NULL", "verified", false)
	default:
		// Unknown category matches nothing.
		return db.Where("1 = 0")
	}
}

// PubliclyListable restricts to spas that appear in any public category.
type PubliclyListable struct{}

func (s PubliclyListable) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ? OR blacklist_reason IS NOT NULL", "verified")
}

// SpaSearchQuery filters spas by name, address or region (case-insensitive).
type SpaSearchQuery struct {
	Query string
}

func (s SpaSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("name ILIKE ? OR address ILIKE ? OR region ILIKE ?", pattern, pattern, pattern)
}

// ByRegion filters by exact region.
type ByRegion struct {
	Region string
}

func (s ByRegion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("region = ?", s.Region)
}

// OwnedBySpa filters rows by their owning spa.
type OwnedBySpa struct {
	SpaId uint
}

func (s OwnedBySpa) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("spa_id = ?", s.SpaId)
}

// ByIdentityNumber filters therapists by identity document number.
type ByIdentityNumber struct {
	IdentityNumber string
}

func (s ByIdentityNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("identity_number = ?", s.IdentityNumber)
}

// TargetIs filters activity-log rows by their target.
type TargetIs struct {
	TargetType string
	TargetId   uint
}

func (s TargetIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("target_type = ? AND target_id = ?", s.TargetType, s.TargetId)
}

// RecipientMatch selects notification rows addressed to a principal: direct
// spa/user rows plus any role rows for the principal's role.
type RecipientMatch struct {
	RecipientType string
	RecipientId   uint
	Role          string
}

func (s RecipientMatch) Apply(db *gorm.DB) *gorm.DB {
	if s.Role != "" {
		return db.Where(
			"(recipient_type = ? AND recipient_id = ?) OR (recipient_type = ? AND recipient_role = ?)",
			s.RecipientType, s.RecipientId, "role", s.Role,
		)
	}
	return db.Where("recipient_type = ? AND recipient_id = ?", s.RecipientType, s.RecipientId)
}
