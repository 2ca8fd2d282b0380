package cli

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	userName, err := GetSimpleText(a.reader, "Enter user name (empty for default)", a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	password, err := a.password()
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	role, err := GetSimpleText(a.reader, "Enter role: user or admin (empty for user)", a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	msg, err := a.api.Register(ctx, models.Registration{
		UserName: userName,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		a.printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.printf("%s", msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	password, err := a.password()
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.token = token
	a.email = email
	a.printf("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.email = ""
	a.printf("Logged out")
	return nil
}
