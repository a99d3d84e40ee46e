package team

type CreateMemberRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Title     string  `json:"title" validate:"required,max=100"`
	OABNumber *string `json:"oab_number,omitempty" validate:"omitempty,max=20"`
	Bio       *string `json:"bio,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty" validate:"omitempty,url"`
	SortOrder int     `json:"sort_order" validate:"gte=0"`
}

type UpdateMemberRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Title     *string `json:"title,omitempty" validate:"omitempty,max=100"`
	OABNumber *string `json:"oab_number,omitempty" validate:"omitempty,max=20"`
	Bio       *string `json:"bio,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty" validate:"omitempty,url"`
	SortOrder *int    `json:"sort_order,omitempty" validate:"omitempty,gte=0"`
	Active    *bool   `json:"active,omitempty"`
}
