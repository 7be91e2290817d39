package model

// RecipientRole distinguishes the patient owner from accepted caregivers.
type RecipientRole string

const (
	RoleOwner     RecipientRole = "owner"
	RoleCaregiver RecipientRole = "caregiver"
)

// Recipient is a resolved notification target. Recomputed on every detector
// run from the ownership and sharing relations; never cached.
type Recipient struct {
	UserID string        `boil:"user_id"`
	Email  string        `boil:"email"`
	Name   string        `boil:"name"`
	Role   RecipientRole `boil:"role"`
}
