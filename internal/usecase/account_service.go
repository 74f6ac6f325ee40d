package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/junseong2im/Esports/internal/domain/match"
	"github.com/junseong2im/Esports/internal/domain/session"
	"github.com/junseong2im/Esports/internal/platform/logging"
)

type signupPayload struct {
	LoginID  string `validate:"required,alpha"`
	Password string `validate:"required,min=6,letterdigit"`
}

// AccountService validates credentials locally before touching the backend,
// mirroring the backend's own rules so rejections are cheap and the error
// messages are consistent.
type AccountService struct {
	gateway  AccountGateway
	logger   *logging.Logger
	validate *validator.Validate
}

func NewAccountService(gateway AccountGateway, logger *logging.Logger) *AccountService {
	if logger == nil {
		logger = logging.Default()
	}
	v := validator.New()
	// Backend rule: a password needs at least one letter and one digit.
	_ = v.RegisterValidation("letterdigit", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		var hasLetter, hasDigit bool
		for _, r := range value {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasLetter && hasDigit
	})
	return &AccountService{gateway: gateway, logger: logger, validate: v}
}

func (s *AccountService) SignUp(ctx context.Context, loginID, password, teamName string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.SignUp")
	defer span.End()

	if s.gateway == nil {
		return fmt.Errorf("%w: account gateway is not configured", ErrDependencyUnavailable)
	}

	loginID = strings.TrimSpace(loginID)
	if err := s.validateCredentials(ctx, loginID, password); err != nil {
		return err
	}

	// The backend requires a favorite team from the valid set; spellings
	// are canonicalized before the request leaves.
	team, ok := match.ResolveTeam(teamName)
	if !ok {
		return fmt.Errorf("%w: favorite team must be one of %s", ErrInvalidInput, strings.Join(match.ValidTeams(), ", "))
	}

	if err := s.gateway.Signup(ctx, loginID, password, team); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "account registered", "login_id", loginID, "team", team)
	return nil
}

func (s *AccountService) SignIn(ctx context.Context, loginID, password string) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.SignIn")
	defer span.End()

	if s.gateway == nil {
		return session.None(), fmt.Errorf("%w: account gateway is not configured", ErrDependencyUnavailable)
	}

	loginID = strings.TrimSpace(loginID)
	if loginID == "" || password == "" {
		return session.None(), fmt.Errorf("%w: login id and password are required", ErrInvalidInput)
	}

	sess, err := s.gateway.Login(ctx, loginID, password)
	if err != nil {
		return session.None(), err
	}
	if !sess.Authenticated() {
		return session.None(), fmt.Errorf("%w: backend returned no usable credential", ErrUnauthorized)
	}
	if sess.Kind == session.KindBasic {
		s.logger.WarnContext(ctx, "backend issued legacy basic credential", "login_id", loginID)
	}
	return sess, nil
}

func (s *AccountService) validateCredentials(ctx context.Context, loginID, password string) error {
	err := s.validate.StructCtx(ctx, signupPayload{LoginID: loginID, Password: password})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch fieldErrs[0].StructField() {
	case "LoginID":
		return fmt.Errorf("%w: login id must contain letters only", ErrInvalidInput)
	default:
		return fmt.Errorf("%w: password needs 6+ characters including a letter and a digit", ErrInvalidInput)
	}
}
