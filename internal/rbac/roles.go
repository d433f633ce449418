package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleAnalyst    = "analyst"
	RoleSOCLead    = "soc_lead"
	RoleAuditor    = "auditor"
	RoleSuperAdmin = "super_admin"
	RoleResponder  = "responder" // hidden role
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsHiddenRole(role string) bool { return role == RoleResponder }
