package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrijs2005/secondwear/internal/client/services"
	"github.com/dmitrijs2005/secondwear/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the sign-up form. Optional profile attributes can be
// given as name=value lines; they are forwarded to the API as-is.
func (a *App) Register(ctx context.Context) error {
	if a.auth == nil {
		return errUnavailable
	}

	var form services.RegistrationForm
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter username", &form.Username},
		{"Enter email", &form.Email},
		{"Enter first name (optional)", &form.FirstName},
		{"Enter last name (optional)", &form.LastName},
		{"Enter phone number (optional)", &form.Phone},
		{"Enter location (optional)", &form.Location},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer clear(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer clear(confirm)
	form.Password = string(password)
	form.ConfirmPassword = string(confirm)

	extra, err := GetPairs(a.reader, "Additional profile attributes", a.out)
	if err != nil {
		return err
	}
	if len(extra) > 0 {
		form.Extra = extra
	}

	u, err := a.auth.Register(ctx, form)
	if err != nil {
		return err
	}
	a.printf("Welcome, %s!\n", u.DisplayName())
	return nil
}

// Login prompts for email and password. A failed attempt leaves the
// current session untouched.
func (a *App) Login(ctx context.Context) error {
	if a.auth == nil {
		return errUnavailable
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	u, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.printf("Signed in as %s\n", u.DisplayName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if a.auth == nil {
		return errUnavailable
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.printf("Signed out\n")
	return nil
}

// WhoAmI prints the session state and, when the token is a JWT, its expiry.
func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.session.User()
	if !ok {
		a.printf("Not signed in (%s)\n", a.session.State())
		return nil
	}
	a.printf("%s <%s> id=%d\n", u.DisplayName(), u.Email, u.ID)
	if exp, ok := session.TokenExpiry(a.session.Token()); ok {
		a.printf("Token expires %s (in %s)\n", exp.Format(time.RFC3339), time.Until(exp).Round(time.Second))
	}
	return nil
}

// Profile shows a user profile; without an argument, the signed-in user's.
func (a *App) Profile(ctx context.Context, args []string) error {
	if a.profiles == nil {
		return errUnavailable
	}
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	u, err := a.profiles.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s (@%s)\n", u.DisplayName(), u.Username)
	if u.Location != "" {
		a.printf("Location: %s\n", u.Location)
	}
	if u.Bio != "" {
		a.printf("Bio: %s\n", u.Bio)
	}
	if u.Rating > 0 {
		a.printf("Rating: %.1f (%d reviews)\n", u.Rating, u.ReviewsCount)
	}
	a.printf("Followers: %d, following: %d\n", u.FollowersCount, u.FollowingCount)

	items, err := a.profiles.Items(ctx, id)
	if err != nil {
		return err
	}
	a.printf("Listings: %d\n", len(items))
	for _, it := range items {
		a.printf("  %s\n", it)
	}
	return nil
}

// EditProfile prompts for each editable field; an empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	if a.auth == nil {
		return errUnavailable
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	current, _ := a.session.User()

	var update services.ProfileUpdate
	fields := []struct {
		label   string
		current string
		dst     **string
	}{
		{"First name", current.FirstName, &update.FirstName},
		{"Last name", current.LastName, &update.LastName},
		{"Phone number", current.Phone, &update.Phone},
		{"Location", current.Location, &update.Location},
		{"Bio", current.Bio, &update.Bio},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.label+" ["+strconv.Quote(f.current)+"]", a.out)
		if err != nil {
			return err
		}
		if v != "" && v != f.current {
			*f.dst = &v
		}
	}

	if update.Empty() {
		a.printf("Nothing to update\n")
		return nil
	}
	u, err := a.auth.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	a.printf("Profile updated for %s\n", u.DisplayName())
	return nil
}
