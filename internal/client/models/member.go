package models

import "time"

// Member belongs to exactly one Team; deleting the team cascades to its
// members. Secret fields hold sealed ciphertext when sealing is enabled.
type Member struct {
	ID     string `json:"id"`
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`

	// Email is the only required contact field.
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Telegram string `json:"telegram,omitempty"`

	// Secret fields (sealed at rest when a sealer is configured).
	TwoFactorCode string `json:"twoFactorCode,omitempty"`
	Password      string `json:"password,omitempty"`
	CredentialOne string `json:"credentialOne,omitempty"`
	CredentialTwo string `json:"credentialTwo,omitempty"`

	// JoinedAt is the join date in UTC.
	JoinedAt time.Time `json:"joinedAt"`

	// Paid/PaidAmount track the latest payment; DueAmount is what is still
	// pending.
	Paid       bool    `json:"paid"`
	PaidAmount float64 `json:"paidAmount"`
	DueAmount  float64 `json:"dueAmount"`

	// Tags is an optional subscription tag list.
	Tags []string `json:"tags,omitempty"`

	// Pushed marks that a notification for this member went out.
	Pushed bool `json:"pushed"`

	// ActiveTeamID is an optional cross-reference to the member's active team.
	ActiveTeamID string `json:"activeTeamId,omitempty"`
}

// MemberPatch carries field-level updates; nil fields are left unchanged.
type MemberPatch struct {
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Telegram      *string    `json:"telegram,omitempty"`
	TwoFactorCode *string    `json:"twoFactorCode,omitempty"`
	Password      *string    `json:"password,omitempty"`
	CredentialOne *string    `json:"credentialOne,omitempty"`
	CredentialTwo *string    `json:"credentialTwo,omitempty"`
	JoinedAt      *time.Time `json:"joinedAt,omitempty"`
	Paid          *bool      `json:"paid,omitempty"`
	PaidAmount    *float64   `json:"paidAmount,omitempty"`
	DueAmount     *float64   `json:"dueAmount,omitempty"`
	Tags          *[]string  `json:"tags,omitempty"`
	Pushed        *bool      `json:"pushed,omitempty"`
	ActiveTeamID  *string    `json:"activeTeamId,omitempty"`
}

// Apply copies the set fields of p onto m.
func (p MemberPatch) Apply(m *Member) {
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.Telegram != nil {
		m.Telegram = *p.Telegram
	}
	if p.TwoFactorCode != nil {
		m.TwoFactorCode = *p.TwoFactorCode
	}
	if p.Password != nil {
		m.Password = *p.Password
	}
	if p.CredentialOne != nil {
		m.CredentialOne = *p.CredentialOne
	}
	if p.CredentialTwo != nil {
		m.CredentialTwo = *p.CredentialTwo
	}
	if p.JoinedAt != nil {
		m.JoinedAt = *p.JoinedAt
	}
	if p.Paid != nil {
		m.Paid = *p.Paid
	}
	if p.PaidAmount != nil {
		m.PaidAmount = *p.PaidAmount
	}
	if p.DueAmount != nil {
		m.DueAmount = *p.DueAmount
	}
	if p.Tags != nil {
		m.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Pushed != nil {
		m.Pushed = *p.Pushed
	}
	if p.ActiveTeamID != nil {
		m.ActiveTeamID = *p.ActiveTeamID
	}
}
