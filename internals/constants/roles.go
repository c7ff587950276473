package constants

import "fmt"

// Role pengguna (satu user tepat satu role)
const (
	RoleAdmin     = "admin"
	RoleGuru      = "guru"
	RoleWaliKelas = "wali_kelas"
	RoleAlumni    = "alumni"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyGuruCanAccess      = "❌ Hanya guru yang boleh mengakses fitur %s."
	ErrOnlyWaliKelasCanAccess = "❌ Hanya wali kelas yang boleh mengakses fitur %s."
	ErrOnlyAlumniCanAccess    = "❌ Hanya alumni yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorGuru(feature string) string {
	return fmt.Sprintf(ErrOnlyGuruCanAccess, feature)
}

func RoleErrorWaliKelas(feature string) string {
	return fmt.Sprintf(ErrOnlyWaliKelasCanAccess, feature)
}

func RoleErrorAlumni(feature string) string {
	return fmt.Sprintf(ErrOnlyAlumniCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleGuru,
		RoleWaliKelas,
		RoleAlumni,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
