package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder/internal/api"
	"recipefinder/internal/models"
)

func TestLoginWithEmptyCredentialsIssuesNoCall(t *testing.T) {
	fake := newFakeAPI()
	session := &fakeSession{}
	form := NewLoginForm(newEnv(fake, session))

	route, err := form.Submit(context.Background())

	assert.ErrorIs(t, err, models.ErrMissingCredentials)
	assert.Equal(t, RouteLogin, route)
	assert.Equal(t, MsgMissingCredentials, form.Error)
	assert.False(t, form.Loading)
	assert.Zero(t, fake.logins)
	assert.False(t, session.Authenticated())
}

func TestLoginRequiresBothFields(t *testing.T) {
	fake := newFakeAPI()
	form := NewLoginForm(newEnv(fake, &fakeSession{}))

	form.Email = "cook@example.com"
	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, models.ErrMissingCredentials)

	form.Email = ""
	form.Password = "secret"
	_, err = form.Submit(context.Background())
	assert.ErrorIs(t, err, models.ErrMissingCredentials)

	assert.Zero(t, fake.logins)
}

func TestSuccessfulLoginPersistsTokenAndRoutesToDashboard(t *testing.T) {
	fake := newFakeAPI()
	fake.loginAuth = &models.Auth{Token: "tok-1", Email: "cook@example.com"}
	session := &fakeSession{}
	form := NewLoginForm(newEnv(fake, session))
	form.Email = "cook@example.com"
	form.Password = "secret"

	route, err := form.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RouteDashboard, route)
	assert.Equal(t, "tok-1", session.token)
	assert.Empty(t, form.Error)
	assert.Empty(t, form.Password, "password is not kept after login")
	assert.Equal(t, 1, fake.logins)
}

func TestLoginFailureShowsText(t *testing.T) {
	fake := newFakeAPI()
	fake.loginErr = &api.APIError{StatusCode: 401, Message: "Invalid credentials"}
	form := NewLoginForm(newEnv(fake, &fakeSession{}))
	form.Email = "cook@example.com"
	form.Password = "wrong"

	route, err := form.Submit(context.Background())

	assert.Error(t, err)
	assert.Equal(t, RouteLogin, route)
	assert.Equal(t, "Invalid credentials", form.Error)
	assert.False(t, form.Loading)
}

func TestLoginWhileLoadingIsRejected(t *testing.T) {
	fake := newFakeAPI()
	form := NewLoginForm(newEnv(fake, &fakeSession{}))
	form.Email = "cook@example.com"
	form.Password = "secret"

	_, err := form.Begin()
	require.NoError(t, err)
	assert.True(t, form.Loading)

	_, err = form.Begin()
	assert.ErrorIs(t, err, ErrBusy)
}

func TestLoginSessionFailureStaysOnForm(t *testing.T) {
	fake := newFakeAPI()
	fake.loginAuth = &models.Auth{Token: "tok"}
	form := NewLoginForm(newEnv(fake, &fakeSession{loginErr: errors.New("disk full")}))
	form.Email = "a@b.c"
	form.Password = "pw"

	route, err := form.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, RouteLogin, route)
	assert.Equal(t, "disk full", form.Error)
}

func TestRegisterValidates(t *testing.T) {
	fake := newFakeAPI()
	form := NewRegisterForm(newEnv(fake, &fakeSession{}))
	form.Email = "not-an-email"
	form.Username = "cook"
	form.Password = "pw"

	route, err := form.Submit(context.Background())

	assert.ErrorIs(t, err, models.ErrInvalidRegistration)
	assert.Equal(t, RouteRegister, route)
	assert.Equal(t, "email must be a valid email address", form.Error)
	assert.Empty(t, fake.registrations)

	form.Email = ""
	form.Username = ""
	_, err = form.Submit(context.Background())
	assert.ErrorIs(t, err, models.ErrInvalidRegistration)
	assert.Equal(t, "email is required, username is required", form.Error)
}

func TestRegisterSuccessSwitchesToLoginWithoutAuthenticating(t *testing.T) {
	fake := newFakeAPI()
	session := &fakeSession{}
	screen := NewAuthScreen(newEnv(fake, session))
	screen.Toggle()
	require.Equal(t, ModeRegister, screen.Mode)

	screen.Register.Email = "cook@example.com"
	screen.Register.Username = "cook"
	screen.Register.Password = "secret"

	route, err := screen.Register.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RouteLogin, route)
	assert.False(t, screen.Follow(route))

	assert.Equal(t, ModeLogin, screen.Mode)
	assert.Equal(t, "cook@example.com", screen.Login.Email)
	assert.False(t, session.Authenticated())
	require.Len(t, fake.registrations, 1)
	assert.Equal(t, "cook", fake.registrations[0].Username)
}

func TestRegisterServerErrorIsText(t *testing.T) {
	fake := newFakeAPI()
	fake.regErr = &api.APIError{StatusCode: 409, Message: "User already exists", Body: `{"statusCode":409}`}
	form := NewRegisterForm(newEnv(fake, &fakeSession{}))
	form.Email = "cook@example.com"
	form.Username = "cook"
	form.Password = "secret"

	_, err := form.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "User already exists", form.Error)
}

func TestAuthScreenFollow(t *testing.T) {
	screen := NewAuthScreen(newEnv(newFakeAPI(), &fakeSession{}))
	assert.False(t, screen.Follow(RouteRegister))
	assert.Equal(t, ModeRegister, screen.Mode)
	assert.True(t, screen.Follow(RouteDashboard))
}

func TestNavLinks(t *testing.T) {
	labels := func(links []Link) []string {
		out := make([]string, len(links))
		for i, l := range links {
			out[i] = l.Label
		}
		return out
	}

	assert.Equal(t, []string{"Search", "Favorites", "Logout"}, labels(NavLinks(true)))
	assert.Equal(t, []string{"Search", "Login", "Register"}, labels(NavLinks(false)))
}
