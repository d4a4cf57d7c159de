package models

type Role string

const (
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// Principal - аутентифицированный пользователь, полученный из учетных данных запроса
type Principal struct {
	ID       string `json:"id"`
	Callsign string `json:"callsign"`
	Role     Role   `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) Authenticated() bool {
	return p.ID != ""
}
