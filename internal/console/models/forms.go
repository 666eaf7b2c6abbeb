package models

// SignInForm is posted to /users/signin.
type SignInForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterForm is posted to /users when a new account signs up.
// The backend expects the password under "pass".
type RegisterForm struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname"`
	INN       string `json:"inn" validate:"required,inn"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"pass" validate:"required,min=6"`
}

// ProfileForm is the editable part of the current user's profile.
type ProfileForm struct {
	Email     string `json:"email" validate:"required,email"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname"`
	INN       string `json:"inn" validate:"required,inn"`
	Phone     string `json:"phone" validate:"required,phone_ru"`
}

// ProfileFormFrom pre-fills the form with the current profile.
func ProfileFormFrom(u User) ProfileForm {
	return ProfileForm{Email: u.Email, Firstname: u.Firstname, Lastname: u.Lastname, INN: u.INN, Phone: u.Phone}
}

// EmployeeForm is used for both adding and editing an employee.
type EmployeeForm struct {
	Email     string `json:"email" validate:"required,email"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname"`
	Phone     string `json:"phone" validate:"required,phone_ru"`
	INN       string `json:"inn" validate:"required,inn"`
	Blocked   bool   `json:"blocked"`
	Avatar    string `json:"avatar,omitempty"`
}

// EmployeeFormFrom pre-fills the edit dialog.
func EmployeeFormFrom(u User) EmployeeForm {
	return EmployeeForm{
		Email: u.Email, Firstname: u.Firstname, Lastname: u.Lastname,
		Phone: u.Phone, INN: u.INN, Blocked: u.Blocked, Avatar: u.Avatar,
	}
}

// PasswordForm changes the password of the user with the given id.
// ConfirmPassword never leaves the console.
type PasswordForm struct {
	ID              int64  `json:"id" validate:"gt=0"`
	NewPassword     string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=NewPassword"`
}

// BlockRequest toggles the blocked flag of a user.
type BlockRequest struct {
	Blocked bool `json:"blocked"`
}
