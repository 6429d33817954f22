package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/divyadrishti/internal/client/client"
	"github.com/dmitrijs2005/divyadrishti/internal/client/localstore"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/dmitrijs2005/divyadrishti/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login/Signup: try the backend, fall back to the local user directory
//     on any failure, including a refusal. Errors are *AuthFailedError.
//   - Restore: reload the session saved by a previous run.
//   - Logout: forget the session.
//   - DeleteAccount: delete the signed-in account where it lives, then log out.
//   - Ping: check server liveness.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Signup(ctx context.Context, req client.SignupRequest) (*models.Session, error)
	Restore(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Current() *models.Session
	Ping(ctx context.Context) error
}

type authService struct {
	d        *Deps
	validate *validator.Validate
}

func NewAuthService(d *Deps) AuthService {
	d.defaults()
	return &authService{d: d, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// noLocalMatch reports a failed local lookup. When the backend answered and
// refused, that refusal is the reason shown to the user.
func noLocalMatch(cause error) error {
	if errors.Is(cause, client.ErrUnauthorized) {
		return &AuthFailedError{Reason: ReasonServerRejected, Err: cause}
	}
	return &AuthFailedError{Reason: ReasonNoLocalMatch, Err: ErrNotFoundLocally}
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, &AuthFailedError{Reason: ReasonInvalidInput, Err: errors.New("username and password are required")}
	}

	sess, err := withFallback(ctx, a.d, call[*models.Session]{
		op: "login",
		remote: func(ctx context.Context) (*models.Session, error) {
			resp, err := a.d.Client.Login(ctx, username, password)
			if err != nil {
				return nil, err
			}
			return remoteSession(resp), nil
		},
		local: func(ctx context.Context, cause error) (*models.Session, error) {
			rec, err := a.d.Local.Authenticate(ctx, username, password)
			if errors.Is(err, localstore.ErrNotFound) || errors.Is(err, localstore.ErrInvalidCredentials) {
				return nil, noLocalMatch(cause)
			}
			if err != nil {
				return nil, fmt.Errorf("local login: %w", err)
			}
			return localSession(rec), nil
		},
	})
	if err != nil {
		return nil, err
	}
	return a.begin(ctx, sess), nil
}

func (a *authService) Signup(ctx context.Context, req client.SignupRequest) (*models.Session, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	if err := a.validate.Struct(req); err != nil {
		return nil, &AuthFailedError{Reason: ReasonInvalidInput, Err: describeValidation(err)}
	}

	sess, err := withFallback(ctx, a.d, call[*models.Session]{
		op: "signup",
		remote: func(ctx context.Context) (*models.Session, error) {
			resp, err := a.d.Client.Signup(ctx, req)
			if err != nil {
				return nil, err
			}
			return remoteSession(resp), nil
		},
		local: func(ctx context.Context, _ error) (*models.Session, error) {
			p := models.Profile{
				Username: req.Username,
				Name:     req.Name,
				DOB:      req.DOB,
				Time:     req.Time,
				Place:    req.Place,
			}
			rec, err := a.d.Local.CreateUser(ctx, p, req.Password)
			if errors.Is(err, localstore.ErrExists) {
				return nil, &AuthFailedError{Reason: ReasonExistsLocally, Err: ErrExistsLocally}
			}
			if err != nil {
				return nil, fmt.Errorf("local signup: %w", err)
			}
			return localSession(rec), nil
		},
	})
	if err != nil {
		return nil, err
	}

	if a.d.Names != nil {
		if _, err := a.d.Names.Add(ctx, req.Name); err != nil {
			a.d.Log.Warn(ctx, "failed to save name history", "error", err)
		}
	}
	return a.begin(ctx, sess), nil
}

// Restore loads the saved session. Remote JWTs whose exp has passed are
// dropped; the signature is not checked, the backend does that.
func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	sess, err := a.d.Sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	if !sess.IsLocal() && a.tokenExpired(sess.Token) {
		a.d.Log.Info(ctx, "saved session expired", "username", sess.User.Username)
		if err := a.d.Sessions.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	a.d.State.set(sess)
	a.d.Client.SetToken(sess.Token)
	return a.d.State.Session(), nil
}

func (a *authService) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// opaque tokens carry no expiry
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !a.d.Now().Before(exp.Time)
}

func (a *authService) Logout(ctx context.Context) error {
	a.d.State.set(nil)
	a.d.Client.SetToken("")
	return a.d.Sessions.Clear(ctx)
}

// DeleteAccount removes the signed-in account. Remote failures are returned
// as is: deleting is never faked locally for a server account.
func (a *authService) DeleteAccount(ctx context.Context) error {
	sess := a.d.State.Session()
	if sess == nil {
		return ErrNotSignedIn
	}

	if sess.IsLocal() {
		err := a.d.Local.DeleteUser(ctx, sess.User.Username)
		if err != nil && !errors.Is(err, localstore.ErrNotFound) {
			return fmt.Errorf("delete local account: %w", err)
		}
	} else {
		err := a.d.Client.DeleteAccount(ctx)
		a.d.Metrics.RemoteCall("delete_account", err)
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
	}
	return a.Logout(ctx)
}

func (a *authService) Current() *models.Session {
	return a.d.State.Session()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.d.Client.Ping(ctx)
}

func (a *authService) begin(ctx context.Context, sess *models.Session) *models.Session {
	if sess.User.Activities == nil {
		sess.User.Activities = []models.Activity{}
	}
	a.d.State.set(sess)
	a.d.Client.SetToken(sess.Token)
	if err := a.d.Sessions.Save(ctx, sess); err != nil {
		a.d.Log.Warn(ctx, "failed to persist session", "error", err)
	}
	a.d.Log.Info(ctx, "signed in", "username", sess.User.Username, "source", string(sess.Source))
	return a.d.State.Session()
}

func remoteSession(resp *client.AuthResponse) *models.Session {
	return &models.Session{User: resp.User, Token: resp.Token, Source: models.SessionRemote}
}

func localSession(rec *models.UserRecord) *models.Session {
	p := rec.Profile
	p.ID = models.Local(rec.Username)
	return &models.Session{User: p, Token: common.LocalTokenValue, Source: models.SessionLocal}
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, strings.ToLower(fe.Field())+" is required")
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must look like %s", strings.ToLower(fe.Field()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
