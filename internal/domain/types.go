package domain

// Pagination carries paging params for list endpoints.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Normalize clamps limit and offset into the accepted range.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// RequestContext carries the authenticated caller when available.
type RequestContext struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}
