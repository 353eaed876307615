package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/validation"
)

// Caller-facing messages.
const (
	MsgUsernameExists     = "Username already exists"
	MsgEmailExists        = "Email already registered"
	MsgPhoneExists        = "Phone number already registered"
	MsgInvalidCredentials = "Invalid username or password"
	MsgInvalidToken       = "Invalid or expired token"
)

var conflictMessages = map[accounts.Field]string{
	accounts.FieldUsername: MsgUsernameExists,
	accounts.FieldEmail:    MsgEmailExists,
	accounts.FieldPhone:    MsgPhoneExists,
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is a successful login. Token is empty when token issuance is
// disabled; Email and Phone carry common.NotProvided when absent.
type AuthResult struct {
	Token    string
	Username string
	Email    string
	Phone    string
}

type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type AccountService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      auth.TokenIssuer
	policy      validation.Policy
	metrics     *metrics.Metrics
	logger      logging.Logger
	tracer      trace.Tracer
}

func NewAccountService(
	db dbx.DBTX,
	m repomanager.RepositoryManager,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
	policy validation.Policy,
	met *metrics.Metrics,
	logger logging.Logger,
) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		policy:      policy,
		metrics:     met,
		logger:      logger.With("module", "services.accounts"),
		tracer:      otel.Tracer("github.com/dmitrijs2005/gophauth/internal/server/services"),
	}
}

// Policy returns the policy the service was built with.
func (s *AccountService) Policy() validation.Policy {
	return s.policy
}

// Register validates the request, checks username, email and phone for
// collisions in that order, then stores the account with a bcrypt hash.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (err error) {
	ctx, span := s.tracer.Start(ctx, "AccountService.Register")
	defer func() {
		s.metrics.RecordRegistration(err)
		s.endSpan(span, err)
	}()

	if err := validation.ValidateRegistration(s.policy, validation.Registration{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
	}); err != nil {
		return err
	}

	repo := s.repomanager.Accounts(s.db)

	checks := []struct {
		field accounts.Field
		value string
	}{
		{accounts.FieldUsername, req.Username},
		{accounts.FieldEmail, req.Email},
		{accounts.FieldPhone, req.Phone},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		exists, err := repo.Exists(ctx, c.field, c.value)
		if err != nil {
			return internalError("REGISTER_LOOKUP_FAILED", err, "field", string(c.field))
		}
		if exists {
			return common.NewConflictError(conflictMessages[c.field])
		}
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return common.NewValidationError(validation.MsgPasswordTooLong)
		}
		return internalError("REGISTER_HASH_FAILED", err)
	}

	_, err = repo.Create(ctx, &models.Account{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		var dup *accounts.DuplicateError
		if errors.As(err, &dup) {
			s.logger.Debug(ctx, "insert lost uniqueness race", "field", string(dup.Field))
			return common.NewConflictError(conflictMessages[dup.Field])
		}
		return internalError("REGISTER_INSERT_FAILED", err)
	}

	s.logger.Info(ctx, "account registered", "username", req.Username)
	return nil
}

// Authenticate verifies the credentials. Unknown usernames and wrong
// passwords fail with the same error after comparable work.
func (s *AccountService) Authenticate(ctx context.Context, c Credentials) (res *AuthResult, err error) {
	ctx, span := s.tracer.Start(ctx, "AccountService.Authenticate")
	defer func() {
		s.metrics.RecordAuthentication(err)
		s.endSpan(span, err)
	}()

	if err := validation.ValidateCredentials(c.Username, c.Password); err != nil {
		return nil, err
	}

	// no stored hash can match an input bcrypt would truncate
	if len(c.Password) > auth.MaxPasswordBytes {
		s.verifyDummy(c.Password)
		return nil, common.NewInvalidCredentialsError(MsgInvalidCredentials)
	}

	account, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, c.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.verifyDummy(c.Password)
			return nil, common.NewInvalidCredentialsError(MsgInvalidCredentials)
		}
		return nil, internalError("AUTH_LOOKUP_FAILED", err)
	}

	ok, err := s.verify(c.Password, account.PasswordHash)
	if err != nil {
		return nil, internalError("AUTH_VERIFY_FAILED", err)
	}
	if !ok {
		return nil, common.NewInvalidCredentialsError(MsgInvalidCredentials)
	}

	if !s.policy.IssueToken {
		return &AuthResult{}, nil
	}

	token, err := s.tokens.Issue(account.Username)
	if err != nil {
		return nil, internalError("AUTH_TOKEN_FAILED", err)
	}

	return &AuthResult{
		Token:    token,
		Username: account.Username,
		Email:    orNotProvided(account.Email),
		Phone:    orNotProvided(account.Phone),
	}, nil
}

// Profile resolves a bearer token to the account it was issued for.
func (s *AccountService) Profile(ctx context.Context, token string) (*Profile, error) {
	ctx, span := s.tracer.Start(ctx, "AccountService.Profile")

	username, err := s.tokens.Verify(token)
	if err != nil {
		err = common.NewInvalidCredentialsError(MsgInvalidToken)
		s.endSpan(span, err)
		return nil, err
	}

	account, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			err = common.NewInvalidCredentialsError(MsgInvalidToken)
		} else {
			err = internalError("PROFILE_LOOKUP_FAILED", err)
		}
		s.endSpan(span, err)
		return nil, err
	}

	s.endSpan(span, nil)
	return &Profile{
		Username: account.Username,
		Email:    orNotProvided(account.Email),
		Phone:    orNotProvided(account.Phone),
	}, nil
}

func (s *AccountService) hash(password string) (string, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHash(time.Since(start)) }()
	return s.hasher.Hash(password)
}

func (s *AccountService) verify(password, hash string) (bool, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHash(time.Since(start)) }()
	return s.hasher.Verify(password, hash)
}

func (s *AccountService) verifyDummy(password string) {
	start := time.Now()
	defer func() { s.metrics.ObserveHash(time.Since(start)) }()
	s.hasher.VerifyDummy(password)
}

func (s *AccountService) endSpan(span trace.Span, err error) {
	span.SetAttributes(attribute.String("outcome", metrics.Outcome(err)))
	if err != nil && metrics.Outcome(err) == metrics.OutcomeInternal {
		span.RecordError(err)
	}
	span.End()
}

// internalError tags err with an oops code. The result matches
// common.ErrorInternal and keeps err in its chain for logging.
func internalError(code string, err error, kv ...any) error {
	return oops.Code(code).With(kv...).Wrap(fmt.Errorf("%w: %w", common.ErrorInternal, err))
}

func orNotProvided(v string) string {
	if v == "" {
		return common.NotProvided
	}
	return v
}
