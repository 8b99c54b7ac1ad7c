package auth

import (
	internaljwt "blackarrow-backend/internal/jwt"
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type fakeIssuer struct {
	issued  []internaljwt.User
	revoked []string
}

func (f *fakeIssuer) CreateTokenWithRefresh(_ context.Context, user internaljwt.User, _ internaljwt.Role) (internaljwt.TokenResponse, error) {
	f.issued = append(f.issued, user)
	return internaljwt.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeIssuer) RefreshToken(_ context.Context, refreshToken string, _ internaljwt.Role) (internaljwt.TokenResponse, error) {
	if refreshToken != "refresh" {
		return internaljwt.TokenResponse{}, internaljwt.ErrInvalidRefreshToken
	}
	return internaljwt.TokenResponse{AccessToken: "access-2"}, nil
}

func (f *fakeIssuer) RevokeRefreshToken(_ context.Context, refreshToken string, _ internaljwt.Role) error {
	f.revoked = append(f.revoked, refreshToken)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeIssuer) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	issuer := &fakeIssuer{}
	return New(Account{Email: "Ops@BlackArrow.tech", PasswordHash: string(hash)}, issuer), issuer
}

func expectCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected service error, got %v", err)
	}
	if svcErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, svcErr.Code)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, issuer := newTestService(t)

	res, err := svc.Login(context.Background(), LoginParams{Email: " ops@blackarrow.tech ", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Tokens.AccessToken != "access" || res.Identity.Email != "ops@blackarrow.tech" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(issuer.issued) != 1 || issuer.issued[0].Id != adminUserID {
		t.Fatalf("expected tokens for the admin user, got %+v", issuer.issued)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, issuer := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginParams{Email: "ops@blackarrow.tech", Password: "wrong"})
	expectCode(t, err, ErrorCodeUnauthorized)

	_, err = svc.Login(ctx, LoginParams{Email: "someone@else.com", Password: "s3cret-pass"})
	expectCode(t, err, ErrorCodeUnauthorized)

	_, err = svc.Login(ctx, LoginParams{Email: "", Password: "x"})
	expectCode(t, err, ErrorCodeValidation)

	if len(issuer.issued) != 0 {
		t.Fatalf("expected no tokens issued")
	}

	unconfigured := New(Account{}, issuer)
	_, err = unconfigured.Login(ctx, LoginParams{Email: "a@b.c", Password: "x"})
	expectCode(t, err, ErrorCodeUnauthorized)
}

func TestRefreshAndLogout(t *testing.T) {
	svc, issuer := newTestService(t)
	ctx := context.Background()

	tokens, err := svc.Refresh(ctx, "refresh")
	if err != nil || tokens.AccessToken != "access-2" {
		t.Fatalf("refresh: %+v %v", tokens, err)
	}
	_, err = svc.Refresh(ctx, "stale")
	expectCode(t, err, ErrorCodeUnauthorized)
	_, err = svc.Refresh(ctx, " ")
	expectCode(t, err, ErrorCodeValidation)

	if err := svc.Logout(ctx, "refresh"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(issuer.revoked) != 1 {
		t.Fatalf("expected refresh token revoked")
	}
}
