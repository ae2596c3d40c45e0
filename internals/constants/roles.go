package constants

// Roles carried in the JWT per school (tenant). Authorization inside the
// engine re-derives resource-level checks (teacher-of-record etc.) and only
// uses these as capability claims.
const (
	RoleOwner       = "owner"
	RoleAdmin       = "admin"
	RoleDirector    = "director"
	RoleCoordinator = "coordinator"
	RoleTeacher     = "teacher"
	RoleStudent     = "student"
	RoleParent      = "parent"
)
