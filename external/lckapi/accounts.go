package lckapi

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/junseong2im/Esports/internal/domain/session"
	"github.com/junseong2im/Esports/internal/usecase"
)

// loginSuccessMarker is the plain-text success body returned by backend
// builds that predate token issuance.
const loginSuccessMarker = "로그인 성공"

type credentialsRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type signupRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	TeamName string `json:"teamName"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

// Signup registers a new account. Validation of the credential shape happens
// in the usecase layer; the backend re-validates and its message is surfaced
// on rejection.
func (c *Client) Signup(ctx context.Context, loginID, password, teamName string) error {
	body, err := sonic.Marshal(signupRequest{LoginID: loginID, Password: password, TeamName: teamName})
	if err != nil {
		return fmt.Errorf("encode signup request: %w", err)
	}

	if _, err := c.do(ctx, http.MethodPost, "/api/users/signup", nil, session.None(), body); err != nil {
		var remote *RemoteError
		if stderrors.As(err, &remote) && remote.Status >= 400 && remote.Status < 500 {
			return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, remote.Message("signup rejected"))
		}
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

// Login exchanges credentials for a session. Token-issuing backends get a
// bearer session; older builds answer with a plain-text success marker and
// fall back to a basic credential.
func (c *Client) Login(ctx context.Context, loginID, password string) (session.Session, error) {
	body, err := sonic.Marshal(credentialsRequest{LoginID: loginID, Password: password})
	if err != nil {
		return session.None(), fmt.Errorf("encode login request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/api/users/login", nil, session.None(), body)
	if err != nil {
		var remote *RemoteError
		if stderrors.As(err, &remote) && (remote.Status == http.StatusUnauthorized || remote.Status == http.StatusBadRequest || remote.Status == http.StatusForbidden) {
			return session.None(), fmt.Errorf("%w: %s", usecase.ErrUnauthorized, remote.Message("login rejected"))
		}
		return session.None(), fmt.Errorf("login: %w", err)
	}

	var decoded loginResponse
	if sonic.Unmarshal(raw, &decoded) == nil {
		if token := strings.TrimSpace(decoded.Token); token != "" {
			return session.Bearer(loginID, token), nil
		}
		if token := strings.TrimSpace(decoded.AccessToken); token != "" {
			return session.Bearer(loginID, token), nil
		}
	}

	text := strings.TrimSpace(string(raw))
	if strings.Contains(text, loginSuccessMarker) {
		basic := base64.StdEncoding.EncodeToString([]byte(loginID + ":" + password))
		return session.LegacyBasic(loginID, basic), nil
	}

	return session.None(), fmt.Errorf("%w: unrecognized login response", usecase.ErrUnauthorized)
}
