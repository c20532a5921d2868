// Package services contains the application services of the secondwear
// client. Services talk to the API only through client.Gateway and read or
// change authentication state only through session.Session.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/secondwear/internal/client/client"
	"github.com/dmitrijs2005/secondwear/internal/client/models"
	"github.com/dmitrijs2005/secondwear/internal/client/session"
	"github.com/dmitrijs2005/secondwear/internal/logging"
	"github.com/go-playground/validator/v10"
)

const MinPasswordLength = 6

const (
	loginFailed         = "Login failed"
	registrationFailed  = "Registration failed"
	profileUpdateFailed = "Profile update failed"
)

// AuthService defines the session operations offered to the CLI.
//
// Contract:
//   - Login/Register: anonymous call; on success the session becomes
//     authenticated and the credential is persisted. On failure the session
//     is unchanged and the server message is returned.
//   - UpdateProfile: requires an authenticated session; the returned user
//     replaces the snapshot.
//   - Logout: always succeeds in moving the session to anonymous.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, form RegistrationForm) (models.User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (models.User, error)
	Logout(ctx context.Context) error
}

// RegistrationForm is the sign-up form. ConfirmPassword is checked locally
// and never sent. Extra carries additional profile attributes forwarded
// unchanged; it cannot override the named fields.
type RegistrationForm struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Phone           string `json:"phone_number,omitempty"`
	Location        string `json:"location,omitempty"`

	Extra map[string]string `json:"-"`
}

// ProfileUpdate holds the fields to change. Nil fields are left out of the
// request.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone_number,omitempty"`
	Location  *string `json:"location,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Phone == nil && u.Location == nil && u.Bio == nil
}

type authService struct {
	gw       client.Gateway
	session  *session.Session
	validate *validator.Validate
	log      logging.Logger
}

func NewAuthService(gw client.Gateway, s *session.Session, log logging.Logger) AuthService {
	return &authService{
		gw:       gw,
		session:  s,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With("service", "auth"),
	}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, invalid("Please enter your email and password")
	}

	body := map[string]string{"email": email, "password": password}
	return a.authenticate(ctx, "/auth/login", body, loginFailed)
}

func (a *authService) Register(ctx context.Context, form RegistrationForm) (models.User, error) {
	if err := a.validateRegistration(form); err != nil {
		return models.User{}, err
	}

	body, err := registrationPayload(form)
	if err != nil {
		return models.User{}, err
	}
	return a.authenticate(ctx, "/auth/register", body, registrationFailed)
}

// authenticate runs one login or registration attempt. The attempt's
// generation is taken before the call, so a response that resolves after a
// newer attempt (or a logout) is dropped.
func (a *authService) authenticate(ctx context.Context, path string, body any, fallback string) (models.User, error) {
	gen := a.session.Begin()

	res := a.gw.Call(ctx, path, &client.RequestOptions{
		Method:        http.MethodPost,
		Body:          body,
		Anonymous:     true,
		FallbackError: fallback,
	})
	if !res.OK {
		return models.User{}, res.Err()
	}

	var resp models.AuthResponse
	if err := res.Decode(&resp); err != nil {
		return models.User{}, err
	}
	if resp.Token == "" {
		return models.User{}, &client.APIError{Status: res.Status, Message: fallback}
	}

	cred := models.Credential{Token: resp.Token, User: resp.User}
	if err := a.session.Establish(ctx, gen, cred); err != nil {
		if errors.Is(err, session.ErrStaleAttempt) {
			a.log.Info(ctx, "discarding stale auth response", "path", path)
		}
		return models.User{}, err
	}

	a.log.Info(ctx, "authenticated", "user_id", resp.User.ID, "path", path)
	return resp.User, nil
}

func (a *authService) validateRegistration(form RegistrationForm) error {
	if form.Password != form.ConfirmPassword {
		return invalid("Passwords do not match")
	}
	if utf8.RuneCountInString(form.Password) < MinPasswordLength {
		return invalid(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}

	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	if err := a.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return invalid(err.Error())
		}
		fe := verrs[0]
		switch {
		case fe.Field() == "Email" && fe.Tag() == "email":
			return invalid("Please enter a valid email address")
		case fe.Tag() == "required":
			return invalid(fe.Field() + " is required")
		default:
			return invalid(fe.Error())
		}
	}
	return nil
}

func registrationPayload(form RegistrationForm) (map[string]any, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	raw, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("encode registration: %w", err)
	}
	out := make(map[string]any, len(form.Extra)+8)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encode registration: %w", err)
	}
	for k, v := range form.Extra {
		if _, taken := out[k]; taken || k == "confirmPassword" || k == "confirm_password" {
			continue
		}
		out[k] = v
	}
	return out, nil
}

func (a *authService) UpdateProfile(ctx context.Context, update ProfileUpdate) (models.User, error) {
	if !a.session.IsAuthenticated() {
		return models.User{}, ErrNotAuthenticated
	}
	if update.Empty() {
		return models.User{}, invalid("Nothing to update")
	}

	res := a.gw.Call(ctx, "/users/profile", &client.RequestOptions{
		Method:        http.MethodPut,
		Body:          update,
		FallbackError: profileUpdateFailed,
	})

	u, err := decodeUser(res)
	if err != nil {
		return models.User{}, err
	}
	if err := a.session.ReplaceUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// decodeUser accepts both {"user": {...}} and a bare user object.
func decodeUser(res client.Result) (models.User, error) {
	var wrapped struct {
		User *models.User `json:"user"`
	}
	if err := res.Decode(&wrapped); err != nil {
		return models.User{}, err
	}
	if wrapped.User != nil {
		return *wrapped.User, nil
	}

	var u models.User
	if err := res.Decode(&u); err != nil {
		return models.User{}, err
	}
	if u.ID == 0 && u.Username == "" {
		return models.User{}, fmt.Errorf("decode user: empty response")
	}
	return u, nil
}
