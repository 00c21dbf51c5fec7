package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Bizops-api/internal/application/auth"
	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/jhoicas/Bizops-api/internal/application/gateway"
	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/memory"
	"github.com/jhoicas/Bizops-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-prueba"

func newAuth(t *testing.T) (*auth.AuthUseCase, repository.Stores) {
	t.Helper()
	store := memory.Open()
	s := store.Stores()
	uc := auth.NewAuthUseCase(gateway.New(s, nil), store, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "bizops"}, "America/Bogota")
	return uc, s
}

func signup(t *testing.T, uc *auth.AuthUseCase, email string) *dto.LoginResponse {
	t.Helper()
	out, err := uc.Signup(context.Background(), dto.SignupRequest{
		CompanyName: "Acme", Email: email, Password: "clave-segura", Name: "Ana Pérez",
	})
	require.NoError(t, err)
	return out
}

func principalOf(u dto.UserResponse) access.Principal {
	return access.Principal{ID: u.ID, TenantID: u.CompanyID, Role: u.Role}
}

func TestSignup_CreaEmpresaOwnerYModulos(t *testing.T) {
	ctx := context.Background()
	uc, s := newAuth(t)
	out := signup(t, uc, "  Ana@Acme.io ")

	assert.Equal(t, "ana@acme.io", out.User.Email)
	assert.Equal(t, entity.RoleOwner, out.User.Role)
	assert.Equal(t, "ana-perez", out.User.Slug)
	assert.Equal(t, "America/Bogota", out.User.Timezone)
	assert.NotEmpty(t, out.User.CompanyID)

	userID, companyID, role, err := jwt.Parse(secret, out.Token, "bizops")
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, out.User.CompanyID, companyID)
	assert.Equal(t, entity.RoleOwner, role)

	company, err := s.Companies.FindOne(ctx, repository.Filter{"id": out.User.CompanyID})
	require.NoError(t, err)
	require.NotNil(t, company)
	mods, err := s.CompanyModules.FindMany(ctx, repository.Filter{"company_id": company.ID}, repository.ListOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, mods)

	// Mismo nombre, otro email: slug con sufijo.
	other := signup(t, uc, "ana@globex.io")
	assert.Equal(t, "ana-perez-2", other.User.Slug)
	assert.NotEqual(t, out.User.CompanyID, other.User.CompanyID)
}

func TestSignup_EmailDuplicadoYZonaInvalida(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth(t)
	signup(t, uc, "ana@acme.io")

	_, err := uc.Signup(ctx, dto.SignupRequest{CompanyName: "Otra", Email: "ANA@acme.io", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Signup(ctx, dto.SignupRequest{CompanyName: "Otra", Email: "x@acme.io", Password: "clave-segura", Timezone: "Nowhere/City"})
	assert.ErrorIs(t, err, domain.ErrTimezoneConversion)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth(t)
	signup(t, uc, "ana@acme.io")

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@acme.io", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@acme.io", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@acme.io", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateMemberYChangeRole(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth(t)
	owner := principalOf(signup(t, uc, "ana@acme.io").User)

	admin, err := uc.CreateMember(ctx, owner, dto.CreateUserRequest{Email: "admin@acme.io", Password: "clave-segura", Name: "Admin", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, owner.TenantID, admin.CompanyID)
	adminP := principalOf(*admin)

	member, err := uc.CreateMember(ctx, adminP, dto.CreateUserRequest{Email: "m@acme.io", Password: "clave-segura", Name: "Miembro"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, member.Role)
	memberP := principalOf(*member)

	// Un admin no crea owners; un miembro no crea a nadie.
	_, err = uc.CreateMember(ctx, adminP, dto.CreateUserRequest{Email: "o2@acme.io", Password: "clave-segura", Name: "O2", Role: entity.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.CreateMember(ctx, memberP, dto.CreateUserRequest{Email: "m2@acme.io", Password: "clave-segura", Name: "M2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.CreateMember(ctx, owner, dto.CreateUserRequest{Email: "M@acme.io", Password: "clave-segura", Name: "Dup"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	promoted, err := uc.ChangeRole(ctx, owner, member.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)

	_, err = uc.ChangeRole(ctx, adminP, owner.ID, entity.RoleMember)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.ChangeRole(ctx, owner, owner.ID, entity.RoleMember)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Otra empresa no ve a los usuarios de acme.
	rival := principalOf(signup(t, uc, "boss@globex.io").User)
	_, err = uc.ChangeRole(ctx, rival, member.ID, entity.RoleMember)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
