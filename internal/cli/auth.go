package cli

import (
	"context"

	"github.com/dmitrijs2005/doclocker/internal/common"
	"github.com/dmitrijs2005/doclocker/internal/services"
)

// register asks for the account fields. Taken usernames and emails are
// reported as soon as they are entered.
func (a *App) register(ctx context.Context) error {
	a.println()
	a.println("--- Register ---")

	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	taken, err := a.users.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return common.ErrUsernameTaken
	}

	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	taken, err = a.users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return common.ErrEmailTaken
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fullName, err := a.ask("Full name")
	if err != nil {
		return err
	}
	phone, err := a.ask("Phone (optional)")
	if err != nil {
		return err
	}

	if _, err := a.users.Register(ctx, services.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		FullName: fullName,
		Phone:    phone,
	}); err != nil {
		return err
	}

	a.println("Registration successful! You can now log in.")
	return nil
}

func (a *App) login(ctx context.Context) error {
	a.println()
	a.println("--- Login ---")

	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.users.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}

	a.sess.Login(*u)
	a.log.Info(ctx, "user logged in", "user_id", u.ID)
	a.println("Login successful!")
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.sess.Logout()
	a.println("You have been logged out.")
	return nil
}
