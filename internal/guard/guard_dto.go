package guard

type CreateGuardRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Legajo   string  `json:"legajo" binding:"required"`
	Phone    *string `json:"phone"`
}

type GuardResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Legajo   string  `json:"legajo"`
	Phone    *string `json:"phone,omitempty"`
	Active   bool    `json:"active"`
}

type GuardOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Legajo   string `json:"legajo"`
}
