package requests

// ReasonRequest is the body of moderation calls that need nothing beyond a
// justification: unsuspend, unban, soft delete, restore, permanent delete,
// course archive/unarchive/delete and group delete.
type ReasonRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type SuspendRequest struct {
	// Days of suspension; zero or negative means indefinite
	Days   int    `json:"days"`
	Reason string `json:"reason" validate:"required"`
}

type BanRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type RoleUpdateRequest struct {
	Role   string `json:"role" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type StatusUpdateRequest struct {
	Active *bool  `json:"active" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type CourseUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Reason      string  `json:"reason" validate:"required"`
}

type RemoveMemberRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Reason string `json:"reason" validate:"required"`
}
