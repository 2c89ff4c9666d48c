package models

import "strings"

// Placeholder is shown for any blank profile field.
const Placeholder = "—"

// BusinessProfile is the merchant record owned by the users service.
type BusinessProfile struct {
	ID           string  `gorm:"column:id;primaryKey" json:"id"`
	BusinessName *string `gorm:"column:business_name" json:"business_name"`
	FirstName    *string `gorm:"column:first_name" json:"first_name"`
	LastName     *string `gorm:"column:last_name" json:"last_name"`
	Location     *string `gorm:"column:location" json:"location"`
	Phone        *string `gorm:"column:phone" json:"phone"`
}

func (BusinessProfile) TableName() string {
	return "business_users"
}

// DisplayName falls back from the business name to the owner's full name.
func (p *BusinessProfile) DisplayName() string {
	if name := trimmed(p.BusinessName); name != "" {
		return name
	}
	full := strings.TrimSpace(trimmed(p.FirstName) + " " + trimmed(p.LastName))
	if full != "" {
		return full
	}
	return Placeholder
}

func (p *BusinessProfile) DisplayLocation() string {
	return orPlaceholder(p.Location)
}

func (p *BusinessProfile) DisplayPhone() string {
	return orPlaceholder(p.Phone)
}

func orPlaceholder(s *string) string {
	if v := trimmed(s); v != "" {
		return v
	}
	return Placeholder
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
