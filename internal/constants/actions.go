package constants

// ActionType identifies an admin action in the audit ledger.
type ActionType string

const (
	ActionSuspend         ActionType = "SUSPEND"
	ActionUnsuspend       ActionType = "UNSUSPEND"
	ActionBan             ActionType = "BAN"
	ActionUnban           ActionType = "UNBAN"
	ActionSoftDelete      ActionType = "SOFT_DELETE"
	ActionRestore         ActionType = "RESTORE"
	ActionPermanentDelete ActionType = "PERMANENT_DELETE"
	ActionRoleChange      ActionType = "ROLE_CHANGE"
	ActionDisableLogin    ActionType = "DISABLE_LOGIN"
	ActionEnableLogin     ActionType = "ENABLE_LOGIN"

	ActionCourseUpdate       ActionType = "COURSE_UPDATE"
	ActionCourseArchive      ActionType = "COURSE_ARCHIVE"
	ActionCourseUnarchive    ActionType = "COURSE_UNARCHIVE"
	ActionCourseDelete       ActionType = "COURSE_DELETE"
	ActionCourseRemoveMember ActionType = "COURSE_REMOVE_MEMBER"
	ActionGroupDelete        ActionType = "GROUP_DELETE"
)

// TargetType identifies what kind of record an admin action applied to.
type TargetType string

const (
	TargetUser   TargetType = "USER"
	TargetCourse TargetType = "COURSE"
	TargetGroup  TargetType = "GROUP"
)
