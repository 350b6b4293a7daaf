// internal/users/twofactor.go
package users

import (
	"context"
	"errors"

	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"

	"intrale/pkg/businesses"
	"intrale/pkg/functions"
)

const totpIssuer = "intrale"

const minCodeLength = 6

var (
	ErrNoSecret   = errors.New("no two-factor secret enrolled")
	ErrBadCode    = errors.New("two-factor code rejected")
	ErrCodeFormat = errors.New("two-factor code too short")
)

// TwoFactor validates TOTP codes against the per-user secret. It is a
// typed internal service, not a dispatchable operation; the setup and
// verify operations below are its public faces.
type TwoFactor struct {
	log   *zap.SugaredLogger
	users businesses.UserStore
}

func NewTwoFactor(log *zap.SugaredLogger, users businesses.UserStore) *TwoFactor {
	return &TwoFactor{log: log, users: users}
}

// Enroll generates a fresh secret for email and stores it, returning the
// secret and the otpauth provisioning URI.
func (t *TwoFactor) Enroll(ctx context.Context, email string) (secret, uri string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: totpIssuer, AccountName: email})
	if err != nil {
		return "", "", err
	}
	if err := t.users.Put(ctx, businesses.User{Email: email, TwoFactorSecret: key.Secret()}); err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// Verify checks code against email's enrolled secret.
func (t *TwoFactor) Verify(ctx context.Context, email, code string) error {
	if len(code) < minCodeLength {
		return ErrCodeFormat
	}
	user, err := t.users.Get(ctx, email)
	if err != nil {
		if errors.Is(err, businesses.ErrNotFound) {
			return ErrNoSecret
		}
		return err
	}
	if user.TwoFactorSecret == "" {
		return ErrNoSecret
	}
	if !totp.Validate(code, user.TwoFactorSecret) {
		return ErrBadCode
	}
	return nil
}

// TwoFactorSetup enrolls the caller and hands back the provisioning data.
type TwoFactorSetup struct {
	deps Deps
}

func NewTwoFactorSetup(deps Deps) *TwoFactorSetup {
	return &TwoFactorSetup{deps: deps}
}

func (f *TwoFactorSetup) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	email, resp, ok := callerEmail(ctx, f.deps.Provider, headers)
	if !ok {
		return resp
	}
	secret, uri, err := f.deps.TwoFactor.Enroll(ctx, email)
	if err != nil {
		f.deps.Log.Errorw("two-factor enroll", "err", err)
		return functions.Exception("Unable to enroll two-factor")
	}
	return functions.OKWith(map[string]any{"secret": secret, "otpauthUri": uri})
}

type twoFactorVerifyRequest struct {
	Code string `json:"code" validate:"required,min=6"`
}

// TwoFactorVerify checks a code for the caller without any side effect.
type TwoFactorVerify struct {
	deps Deps
}

func NewTwoFactorVerify(deps Deps) *TwoFactorVerify {
	return &TwoFactorVerify{deps: deps}
}

func (f *TwoFactorVerify) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	var req twoFactorVerifyRequest
	if resp, ok := parseBody(body, &req); !ok {
		return resp
	}
	email, resp, ok := callerEmail(ctx, f.deps.Provider, headers)
	if !ok {
		return resp
	}
	switch err := f.deps.TwoFactor.Verify(ctx, email, req.Code); {
	case err == nil:
		return functions.OKWith(map[string]any{"verified": true})
	case errors.Is(err, ErrCodeFormat), errors.Is(err, ErrBadCode), errors.Is(err, ErrNoSecret):
		return functions.Validation("Invalid two-factor code")
	default:
		f.deps.Log.Errorw("two-factor verify", "err", err)
		return functions.Exception("Unable to verify two-factor")
	}
}
