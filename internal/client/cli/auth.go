package cli

import (
	"context"
	"fmt"

	"github.com/mkalinina/salonbook/internal/client/models"
)

// showLogin prompts for credentials, signs in, and stores the session.
// On success it goes straight to the profile page.
func (a *App) showLogin(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Email or phone", a.out)
	if err != nil {
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return
	}

	token, err := a.api.SignIn(ctx, username, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Sign-in failed: %v\n", err)
		return
	}

	if err := a.store.SetLogin(ctx, token, &models.UserIdentity{Username: username}); err != nil {
		fmt.Fprintf(a.out, "Failed to save session: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "Signed in.")
	a.showProfile(ctx)
}

// showRegister prompts for the registration fields, creates the account,
// and signs in with the fresh credentials right away, as the web UI did.
func (a *App) showRegister(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Your name", a.out)
	if err != nil {
		return
	}
	lastname, err := GetOptionalText(a.reader, "Last name", a.out)
	if err != nil {
		return
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return
	}
	phone, err := GetOptionalText(a.reader, "Phone", a.out)
	if err != nil {
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return
	}

	req := models.SignUpRequest{
		Name:     name,
		Lastname: lastname,
		Email:    email,
		Phone:    phone,
		Password: string(password),
	}
	if err := a.api.SignUp(ctx, req); err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return
	}

	token, err := a.api.SignIn(ctx, email, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Account created, but sign-in failed: %v\n", err)
		return
	}

	if err := a.store.SetLogin(ctx, token, &models.UserIdentity{Username: email, Name: name}); err != nil {
		fmt.Fprintf(a.out, "Failed to save session: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "Account created, you are signed in.")
	a.showProfile(ctx)
}
