package lckapi

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/junseong2im/Esports/internal/domain/session"
	"github.com/junseong2im/Esports/internal/usecase"
)

func TestLoginPrefersIssuedToken(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"loginId":"fan","password":"secret1"}` {
			t.Errorf("request body = %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc123","message":"ok"}`))
	}))

	sess, err := client.Login(context.Background(), "fan", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.Kind != session.KindBearer || sess.Token != "abc123" || sess.LoginID != "fan" {
		t.Fatalf("session = %+v", sess)
	}
}

func TestLoginFallsBackToLegacyMarker(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("로그인 성공"))
	}))

	sess, err := client.Login(context.Background(), "fan", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.Kind != session.KindBasic {
		t.Fatalf("session kind = %v, want legacy basic", sess.Kind)
	}
	want := base64.StdEncoding.EncodeToString([]byte("fan:secret1"))
	if sess.Token != want {
		t.Fatalf("session token = %q, want encoded credential", sess.Token)
	}
}

func TestLoginRejectionMapsToUnauthorized(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("잘못된 비밀번호"))
	}))

	_, err := client.Login(context.Background(), "fan", "wrong")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLoginUnrecognizedBodyFails(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("welcome"))
	}))

	_, err := client.Login(context.Background(), "fan", "secret1")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestSignupSendsFavoriteTeam(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"loginId":"fan","password":"secret1","teamName":"T1"}` {
			t.Errorf("request body = %s", body)
		}
		_, _ = w.Write([]byte("회원가입 성공"))
	}))

	if err := client.Signup(context.Background(), "fan", "secret1", "T1"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
}

func TestSignupSurfacesBackendRejection(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("이미 존재하는 아이디입니다"))
	}))

	err := client.Signup(context.Background(), "fan", "secret1", "T1")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
