package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/prince9318/smartcart-client/internal/api"
	"github.com/prince9318/smartcart-client/internal/session"
)

// Auth covers the register/login/logout screens.
type Auth struct {
	api     *api.Client
	session *session.Store
	out     io.Writer
}

func NewAuth(client *api.Client, sessionStore *session.Store, out io.Writer) *Auth {
	return &Auth{api: client, session: sessionStore, out: out}
}

// Register creates the account; the user still logs in afterwards,
// matching the backend's two-step handshake.
func (a *Auth) Register(ctx context.Context, name, email, password string) error {
	if err := a.api.Register(ctx, name, email, password); err != nil {
		if renderAPIError(a.out, err) {
			return nil
		}
		return err
	}
	fmt.Fprintln(a.out, "Registration successful. Log in to continue.")
	return nil
}

func (a *Auth) Login(ctx context.Context, email, password string) error {
	result, err := a.api.Login(ctx, email, password)
	if err != nil {
		if renderAPIError(a.out, err) {
			return nil
		}
		return err
	}

	if err := a.session.Begin(ctx, result.User, result.Token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s <%s>.\n", result.User.Name, result.User.Email)
	return nil
}

func (a *Auth) Logout(ctx context.Context) error {
	if err := a.session.End(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *Auth) Whoami(_ context.Context) error {
	identity := a.session.Current()
	if identity == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)
	return nil
}
