// internals/helpers/auth/actor.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// Actor adalah konteks pelaku request yang di-resolve SEKALI dari klaim JWT
// (via locals yang diisi AuthMiddleware) lalu dioper eksplisit ke policy &
// service. Tidak ada "current user" global.
//
// Field scope mengikuti role:
//   - guru       → SubjectID (mapel yang diampu)
//   - wali_kelas → Class (misal "X-1")
//   - alumni     → AlumniNIM
//   - admin      → ketiganya nil
type Actor struct {
	UserID    uuid.UUID
	Role      string
	SubjectID *uuid.UUID
	Class     *string
	AlumniNIM *string
}

func (a Actor) IsAdmin() bool     { return a.Role == constants.RoleAdmin }
func (a Actor) IsGuru() bool      { return a.Role == constants.RoleGuru }
func (a Actor) IsWaliKelas() bool { return a.Role == constants.RoleWaliKelas }
func (a Actor) IsAlumni() bool    { return a.Role == constants.RoleAlumni }

// ActorFromLocals membaca identitas pelaku dari fiber locals.
// Locals diisi oleh AuthMiddleware; kalau kosong berarti request belum
// terautentikasi → 401 (bukan 403).
func ActorFromLocals(c *fiber.Ctx) (Actor, error) {
	idStr, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user identity")
	}

	role, _ := c.Locals("user_role").(string)
	if !constants.IsValidRole(role) {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role information")
	}

	actor := Actor{UserID: userID, Role: role}

	if s, _ := c.Locals("subject_id").(string); strings.TrimSpace(s) != "" {
		if sid, err := uuid.Parse(s); err == nil {
			actor.SubjectID = &sid
		}
	}
	if s, _ := c.Locals("class").(string); strings.TrimSpace(s) != "" {
		v := strings.TrimSpace(s)
		actor.Class = &v
	}
	if s, _ := c.Locals("alumni_nim").(string); strings.TrimSpace(s) != "" {
		v := strings.TrimSpace(s)
		actor.AlumniNIM = &v
	}

	return actor, nil
}
