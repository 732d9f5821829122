// Package models defines client-side data models: the entities held in the
// local mirror and the queue entries describing pending mutations.
package models

import "time"

// Team is a subscription team owned by a single user.
type Team struct {
	// ID is a globally unique identifier, immutable once created.
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"userId"`

	// Name is the display name shown on the team card.
	Name string `json:"name"`

	// AdminContact is an optional contact for the team admin.
	AdminContact string `json:"adminContact,omitempty"`

	// Logo is an optional logo tag.
	Logo string `json:"logo,omitempty"`

	// CreatedAt is the creation time in UTC.
	CreatedAt time.Time `json:"createdAt"`

	// LastBackupAt is set after a successful snapshot backup.
	LastBackupAt *time.Time `json:"lastBackupAt,omitempty"`

	// IsYearly marks a yearly subscription.
	IsYearly bool `json:"isYearly"`

	// IsPlus marks the plus tier.
	IsPlus bool `json:"isPlus"`
}

// TeamPatch carries field-level updates; nil fields are left unchanged.
type TeamPatch struct {
	Name         *string    `json:"name,omitempty"`
	AdminContact *string    `json:"adminContact,omitempty"`
	Logo         *string    `json:"logo,omitempty"`
	LastBackupAt *time.Time `json:"lastBackupAt,omitempty"`
	IsYearly     *bool      `json:"isYearly,omitempty"`
	IsPlus       *bool      `json:"isPlus,omitempty"`
}

// Apply copies the set fields of p onto t.
func (p TeamPatch) Apply(t *Team) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.AdminContact != nil {
		t.AdminContact = *p.AdminContact
	}
	if p.Logo != nil {
		t.Logo = *p.Logo
	}
	if p.LastBackupAt != nil {
		lb := *p.LastBackupAt
		t.LastBackupAt = &lb
	}
	if p.IsYearly != nil {
		t.IsYearly = *p.IsYearly
	}
	if p.IsPlus != nil {
		t.IsPlus = *p.IsPlus
	}
}
