package domain

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetUser    = "success get user"
	MessageSuccessDeleteUser = "user deleted successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "invalid credentials"
	MessageFailedGetUser    = "failed to get user"
	MessageFailedDeleteUser = "failed to delete user"

	WelcomeMailSubject = "Bienvenido a Recipe Share"
)

const TokenTypeBearer = "bearer"

type (
	CreateUserRequest struct {
		Username string `json:"username" form:"username" validate:"required,max=64"`
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	LoginRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		UserID      string `json:"user_id"`
	}

	UserResponse struct {
		ID           string `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		ProfileImage string `json:"profile_image"`
	}

	UserPublic struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
)
