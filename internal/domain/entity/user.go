package entity

import "time"

// Roles válidos para User. El rol decide la estrategia de alcance de datos.
const (
	RoleMember     = "member"
	RoleAdmin      = "admin"
	RoleOwner      = "owner"
	RoleSuperAdmin = "super_admin"
)

// User representa un usuario del sistema. CompanyID vacío solo para super_admin.
// Un usuario también es anfitrión de reservas: Slug y Timezone definen su agenda pública.
type User struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"` // active, inactive, suspended
	Slug         string    `json:"slug"`
	Timezone     string    `json:"timezone"` // IANA, ej. America/Bogota
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) Attributes() map[string]string {
	return map[string]string{
		"id":         u.ID,
		"company_id": u.CompanyID,
		"email":      u.Email,
		"slug":       u.Slug,
		"role":       u.Role,
		"status":     u.Status,
	}
}

func (u *User) SetID(id string) { u.ID = id }

func (u *User) Stamp(companyID, _ string) {
	if companyID != "" {
		u.CompanyID = companyID
	}
}

// KeepOwnership conserva empresa, rol, estado, credenciales y slug del registro existente.
// El rol solo cambia por ChangeRole. Timezone vacío conserva la zona anterior.
func (u *User) KeepOwnership(prev *User) {
	u.ID = prev.ID
	u.CompanyID = prev.CompanyID
	u.Role = prev.Role
	u.Status = prev.Status
	u.PasswordHash = prev.PasswordHash
	u.Slug = prev.Slug
	u.CreatedAt = prev.CreatedAt
	if u.Timezone == "" {
		u.Timezone = prev.Timezone
	}
}

func (u *User) Touch(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// IsActive informa si el usuario puede operar.
func (u User) IsActive() bool { return u.Status == "active" }
