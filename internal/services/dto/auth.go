package dto

// RegisterRequest - форма регистрации
type RegisterRequest struct {
	Username  string `form:"username" json:"username" validate:"required,max=64,username"`
	Email     string `form:"email" json:"email" validate:"required,email,max=120"`
	Password  string `form:"password" json:"password" validate:"required"`
	Password2 string `form:"password2" json:"password2" validate:"required,eqfield=Password"`
}

// LoginRequest - форма входа.
// RememberMe - строка, т.к. браузер присылает для checkbox значение "y"/"on".
type LoginRequest struct {
	Username   string `form:"username" json:"username" validate:"required"`
	Password   string `form:"password" json:"password" validate:"required"`
	RememberMe string `form:"remember_me" json:"remember_me"`
}

func (r *LoginRequest) Remember() bool {
	switch r.RememberMe {
	case "", "0", "false", "off":
		return false
	}
	return true
}

// ResetPasswordRequest - запрос письма для сброса пароля
type ResetPasswordRequest struct {
	Email string `form:"email" json:"email" validate:"required,email"`
}

// ResetPasswordForm - новый пароль по токену из письма
type ResetPasswordForm struct {
	Password  string `form:"password" json:"password" validate:"required"`
	Password2 string `form:"password2" json:"password2" validate:"required,eqfield=Password"`
}
