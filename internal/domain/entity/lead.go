package entity

import "time"

// Estados de un lead.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

// Lead representa un prospecto comercial asignado a un miembro de la empresa.
type Lead struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	AssignedToID string    `json:"assigned_to_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Source       string    `json:"source,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (l Lead) Attributes() map[string]string {
	return map[string]string{
		"id":             l.ID,
		"company_id":     l.CompanyID,
		"assigned_to_id": l.AssignedToID,
		"status":         l.Status,
		"email":          l.Email,
	}
}

func (l *Lead) SetID(id string) { l.ID = id }

func (l *Lead) Stamp(companyID, userID string) {
	if companyID != "" {
		l.CompanyID = companyID
	}
	if l.AssignedToID == "" {
		l.AssignedToID = userID
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
}

func (l *Lead) KeepOwnership(prev *Lead) {
	l.ID = prev.ID
	l.CompanyID = prev.CompanyID
	l.CreatedAt = prev.CreatedAt
	if l.AssignedToID == "" {
		l.AssignedToID = prev.AssignedToID
	}
}

func (l *Lead) Touch(now time.Time) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
}
