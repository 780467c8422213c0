package dto

// CreateRoleReq is the body of POST /roles.
type CreateRoleReq struct {
	Name string `json:"name" binding:"required,max=256"`
}

// RoleRes describes a role.
type RoleRes struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
}

// ListRolesQuery holds the paging parameters of GET /roles.
type ListRolesQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=0,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// ClaimDTO is a claim type/value pair.
type ClaimDTO struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// AssignRoleReq is the body of POST /users/:id/roles.
type AssignRoleReq struct {
	Role string `json:"role" binding:"required"`
}

// UserRolesRes lists the role names of a user.
type UserRolesRes struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}
