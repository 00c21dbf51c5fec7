package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
)

// ModuleService verifica qué módulos SaaS tiene activos una empresa.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	repo repository.Repository[entity.CompanyModule]
	now  func() time.Time
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(repo repository.Repository[entity.CompanyModule]) *ModuleService {
	return &ModuleService{repo: repo, now: time.Now}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Devuelve false (sin error) si la empresa no tiene el módulo contratado.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	m, err := s.repo.FindOne(ctx, repository.Filter{"company_id": companyID, "module_name": moduleName})
	if err != nil {
		return false, err
	}
	return m != nil && m.Enabled(s.now()), nil
}

// ListModules devuelve los módulos contratados por la empresa.
func (s *ModuleService) ListModules(ctx context.Context, companyID string) ([]*entity.CompanyModule, error) {
	return s.repo.FindMany(ctx, repository.Filter{"company_id": companyID}, repository.ListOptions{})
}

// Activate activa (o reactiva) un módulo para la empresa. expiresAt nil = sin vencimiento.
func (s *ModuleService) Activate(ctx context.Context, companyID, moduleName string, expiresAt *time.Time) (*entity.CompanyModule, error) {
	if companyID == "" || !isKnownModule(moduleName) {
		return nil, fmt.Errorf("módulo %q: %w", moduleName, domain.ErrInvalidInput)
	}
	now := s.now()
	m, err := s.repo.FindOne(ctx, repository.Filter{"company_id": companyID, "module_name": moduleName})
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.IsActive = true
		m.ActivatedAt = now
		m.ExpiresAt = expiresAt
		m.UpdatedAt = now
		if _, err := s.repo.Update(ctx, repository.Filter{"company_id": companyID}, m); err != nil {
			return nil, err
		}
		return m, nil
	}
	m = &entity.CompanyModule{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		ModuleName:  moduleName,
		IsActive:    true,
		ActivatedAt: now,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Deactivate desactiva el módulo sin borrar su historial.
func (s *ModuleService) Deactivate(ctx context.Context, companyID, moduleName string) error {
	m, err := s.repo.FindOne(ctx, repository.Filter{"company_id": companyID, "module_name": moduleName})
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	m.IsActive = false
	m.UpdatedAt = s.now()
	_, err = s.repo.Update(ctx, repository.Filter{"company_id": companyID}, m)
	return err
}

func isKnownModule(name string) bool {
	switch name {
	case entity.ModuleInvoicing, entity.ModuleCRM, entity.ModuleProposals,
		entity.ModuleScheduling, entity.ModuleTeam, entity.ModuleReporting:
		return true
	}
	return false
}

// DefaultModules son los módulos que recibe una empresa al registrarse.
func DefaultModules() []string {
	return []string{
		entity.ModuleInvoicing, entity.ModuleCRM, entity.ModuleProposals,
		entity.ModuleScheduling, entity.ModuleTeam, entity.ModuleReporting,
	}
}
