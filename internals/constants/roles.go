package constants

import "fmt"

// Role yang dikenal aplikasi
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleMember,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
