package entity

import "time"

// Client representa un cliente de la empresa. AssignedToID es el miembro responsable.
type Client struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	AssignedToID string    `json:"assigned_to_id"`
	Name         string    `json:"name"`
	TaxID        string    `json:"tax_id,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c Client) Attributes() map[string]string {
	return map[string]string{
		"id":             c.ID,
		"company_id":     c.CompanyID,
		"assigned_to_id": c.AssignedToID,
		"tax_id":         c.TaxID,
		"email":          c.Email,
	}
}

func (c *Client) SetID(id string) { c.ID = id }

// Stamp fija la empresa y, si no viene asignado, asigna el cliente a quien lo crea.
func (c *Client) Stamp(companyID, userID string) {
	if companyID != "" {
		c.CompanyID = companyID
	}
	if c.AssignedToID == "" {
		c.AssignedToID = userID
	}
}

func (c *Client) KeepOwnership(prev *Client) {
	c.ID = prev.ID
	c.CompanyID = prev.CompanyID
	c.CreatedAt = prev.CreatedAt
	if c.AssignedToID == "" {
		c.AssignedToID = prev.AssignedToID
	}
}

func (c *Client) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
