package views

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"recipefinder/internal/models"
)

// MsgMissingCredentials is shown when login is submitted without email or password
const MsgMissingCredentials = "Please enter email and password"

// LoginForm is the login screen state
type LoginForm struct {
	Email    string
	Password string
	Error    string
	Loading  bool

	env Env
}

// NewLoginForm creates an empty login form
func NewLoginForm(env Env) *LoginForm {
	return &LoginForm{env: env}
}

// Begin validates the form and marks it loading. Nothing should be sent
// when it returns an error.
func (f *LoginForm) Begin() (models.Credentials, error) {
	if f.Loading {
		return models.Credentials{}, ErrBusy
	}

	creds := models.Credentials{
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
	if err := validate.Struct(creds); err != nil {
		f.Error = MsgMissingCredentials
		return models.Credentials{}, models.ErrMissingCredentials
	}

	f.Loading = true
	f.Error = ""
	return creds, nil
}

// Complete stores the issued token and routes to the dashboard, or keeps
// the user on the login form with the error text
func (f *LoginForm) Complete(auth *models.Auth, err error) (Route, error) {
	f.Loading = false
	if err == nil && (auth == nil || auth.Token == "") {
		err = models.ErrNoToken
	}
	if err != nil {
		f.Error = errorText(err)
		return RouteLogin, err
	}

	if err := f.env.Session.Login(auth.Token); err != nil {
		f.Error = errorText(err)
		return RouteLogin, err
	}

	f.env.logger().Info("logged in", zap.String("email", auth.Email))
	f.Password = ""
	return RouteDashboard, nil
}

// Submit logs in synchronously
func (f *LoginForm) Submit(ctx context.Context) (Route, error) {
	creds, err := f.Begin()
	if err != nil {
		return RouteLogin, err
	}
	auth, err := f.env.API.Login(ctx, creds.Email, creds.Password)
	return f.Complete(auth, err)
}

// RegisterForm is the registration screen state
type RegisterForm struct {
	Email    string
	Username string
	Password string
	Error    string
	Loading  bool

	env Env
}

// NewRegisterForm creates an empty registration form
func NewRegisterForm(env Env) *RegisterForm {
	return &RegisterForm{env: env}
}

// Begin validates the form and marks it loading
func (f *RegisterForm) Begin() (models.Registration, error) {
	if f.Loading {
		return models.Registration{}, ErrBusy
	}

	reg := models.Registration{
		Email:    strings.TrimSpace(f.Email),
		Username: strings.TrimSpace(f.Username),
		Password: f.Password,
	}
	if err := validate.Struct(reg); err != nil {
		f.Error = validationText(err)
		return models.Registration{}, fmt.Errorf("%w: %s", models.ErrInvalidRegistration, f.Error)
	}

	f.Loading = true
	f.Error = ""
	return reg, nil
}

// Complete routes to the login form on success. Registering does not log
// the user in.
func (f *RegisterForm) Complete(err error) (Route, error) {
	f.Loading = false
	if err != nil {
		f.Error = errorText(err)
		return RouteRegister, err
	}

	f.env.logger().Info("registered", zap.String("email", f.Email))
	f.Password = ""
	return RouteLogin, nil
}

// Submit registers synchronously
func (f *RegisterForm) Submit(ctx context.Context) (Route, error) {
	reg, err := f.Begin()
	if err != nil {
		return RouteRegister, err
	}
	return f.Complete(f.env.API.Register(ctx, reg))
}

// AuthMode selects which auth form is shown
type AuthMode string

const (
	ModeLogin    AuthMode = "login"
	ModeRegister AuthMode = "register"
)

// AuthScreen shows either the login or the register form
type AuthScreen struct {
	Mode     AuthMode
	Login    *LoginForm
	Register *RegisterForm
}

// NewAuthScreen starts on the login form
func NewAuthScreen(env Env) *AuthScreen {
	return &AuthScreen{
		Mode:     ModeLogin,
		Login:    NewLoginForm(env),
		Register: NewRegisterForm(env),
	}
}

// Toggle switches between the two forms
func (s *AuthScreen) Toggle() {
	if s.Mode == ModeLogin {
		s.Mode = ModeRegister
	} else {
		s.Mode = ModeLogin
	}
}

// Follow applies a route returned by one of the forms. It reports whether
// the route leaves the auth screen.
func (s *AuthScreen) Follow(route Route) bool {
	switch route {
	case RouteLogin:
		if s.Mode == ModeRegister {
			// carry the address over so the user only types the password
			s.Login.Email = s.Register.Email
		}
		s.Mode = ModeLogin
		return false
	case RouteRegister:
		s.Mode = ModeRegister
		return false
	default:
		return true
	}
}
