package dto

type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	// BirthDate is expected in YYYY-MM-DD format.
	BirthDate string `json:"birth_date" validate:"required"`
}

type RegisterOutput struct {
	UserUUID string `json:"user_uuid"`
}
