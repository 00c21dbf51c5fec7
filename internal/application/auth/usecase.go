package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/jhoicas/Bizops-api/internal/application/gateway"
	"github.com/jhoicas/Bizops-api/internal/application/usecase"
	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
	"github.com/jhoicas/Bizops-api/internal/domain/scheduling"
	"github.com/jhoicas/Bizops-api/pkg/jwt"
	"github.com/jhoicas/Bizops-api/pkg/slug"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y equipo: registro, login, altas y roles.
type AuthUseCase struct {
	gw        *gateway.Gateway
	tx        repository.TxRunner
	jwtCfg    JWTConfig
	defaultTZ string
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. defaultTZ se asigna a los usuarios que no indican zona.
func NewAuthUseCase(gw *gateway.Gateway, tx repository.TxRunner, jwtCfg JWTConfig, defaultTZ string) *AuthUseCase {
	return &AuthUseCase{gw: gw, tx: tx, jwtCfg: jwtCfg, defaultTZ: defaultTZ, now: time.Now}
}

// Signup crea una empresa, su usuario owner y los módulos por defecto en una sola transacción.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.LoginResponse, error) {
	tz, err := uc.timezone(in.Timezone)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	if err := uc.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	company := &entity.Company{
		ID:        uuid.NewString(),
		Name:      in.CompanyName,
		TaxID:     in.TaxID,
		Email:     email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         displayName(in.Name, email),
		Role:         entity.RoleOwner,
		Status:       "active",
		Timezone:     tz,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(s repository.Stores) error {
		if err := s.Companies.Create(ctx, company); err != nil {
			return fmt.Errorf("crear empresa: %w", err)
		}
		hostSlug, err := uniqueSlug(ctx, s.Users, slugBase(user))
		if err != nil {
			return err
		}
		user.Slug = hostSlug
		if err := s.Users.Create(ctx, user); err != nil {
			return uc.mapUserErr(err)
		}
		for _, name := range usecase.DefaultModules() {
			m := &entity.CompanyModule{
				ID:          uuid.NewString(),
				CompanyID:   company.ID,
				ModuleName:  name,
				IsActive:    true,
				ActivatedAt: now,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := s.CompanyModules.Create(ctx, m); err != nil {
				return fmt.Errorf("activar módulo %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.gw.Stores().Users.FindOne(ctx, repository.Filter{"email": normalizeEmail(in.Email)})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	return uc.issue(user)
}

// CreateMember da de alta un usuario en la empresa del principal.
// Solo un owner (o super_admin) puede crear otro owner.
func (uc *AuthUseCase) CreateMember(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if p.TenantID == "" {
		return nil, fmt.Errorf("el principal no pertenece a una empresa: %w", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleMember
	}
	if !canAssign(p, role) {
		return nil, domain.ErrForbidden
	}
	tz, err := uc.timezone(in.Timezone)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	if err := uc.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         displayName(in.Name, email),
		Role:         role,
		Status:       "active",
		Timezone:     tz,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.Stamp(p.TenantID, p.ID)
	if !uc.gw.AuthorizeFor(p, user, access.KindUser, access.OpWrite) {
		return nil, domain.ErrForbidden
	}
	users := uc.gw.Scoped(p).Users
	if user.Slug, err = uniqueSlug(ctx, uc.gw.Stores().Users, slugBase(user)); err != nil {
		return nil, err
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, uc.mapUserErr(err)
	}
	return ToUserResponse(user), nil
}

// ChangeRole cambia el rol de otro usuario visible para el principal.
func (uc *AuthUseCase) ChangeRole(ctx context.Context, p access.Principal, userID, role string) (*dto.UserResponse, error) {
	if userID == p.ID {
		return nil, domain.ErrForbidden
	}
	if !canAssign(p, role) {
		return nil, domain.ErrForbidden
	}
	users := uc.gw.Scoped(p).Users
	user, err := users.FindOne(ctx, repository.Filter{"id": userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Role == entity.RoleOwner && !isOwnerOrSuper(p) {
		return nil, domain.ErrForbidden
	}
	user.Role = role
	user.Touch(uc.now())
	n, err := users.Update(ctx, repository.Filter{"id": userID}, user)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return ToUserResponse(user), nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) timezone(name string) (string, error) {
	if name == "" {
		name = uc.defaultTZ
	}
	if _, err := scheduling.LoadZone(name); err != nil {
		return "", err
	}
	return name, nil
}

func (uc *AuthUseCase) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := uc.gw.Stores().Users.FindOne(ctx, repository.Filter{"email": email})
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

// mapUserErr traduce la unicidad del email (carrera entre dos altas) al error de dominio.
func (uc *AuthUseCase) mapUserErr(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.ErrEmailAlreadyExists
	}
	return fmt.Errorf("crear usuario: %w", err)
}

func canAssign(p access.Principal, role string) bool {
	switch role {
	case entity.RoleMember, entity.RoleAdmin:
		return p.IsSuperAdmin() || p.Role == entity.RoleOwner || p.Role == entity.RoleAdmin
	case entity.RoleOwner:
		return isOwnerOrSuper(p)
	default:
		return false
	}
}

func isOwnerOrSuper(p access.Principal) bool {
	return p.IsSuperAdmin() || p.Role == entity.RoleOwner
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func displayName(name, email string) string {
	if strings.TrimSpace(name) == "" {
		return email
	}
	return name
}

func slugBase(u *entity.User) string {
	if s := slug.Make(u.Name); s != "" && u.Name != u.Email {
		return s
	}
	if s := slug.FromEmail(u.Email); s != "" {
		return s
	}
	return "host"
}

// uniqueSlug agrega un sufijo numérico hasta encontrar un slug libre.
func uniqueSlug(ctx context.Context, users repository.Repository[entity.User], base string) (string, error) {
	candidate := base
	for i := 2; i < 1000; i++ {
		existing, err := users.FindOne(ctx, repository.Filter{"slug": candidate})
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return base + "-" + uuid.NewString()[:8], nil
}

// ToUserResponse convierte la entidad a su DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		Slug:      u.Slug,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
