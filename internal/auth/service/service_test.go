package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/auth/otptoken"
	"backoffice_portal_backend/internal/auth/password"
	"backoffice_portal_backend/internal/auth/repository"
	"backoffice_portal_backend/internal/auth/transport"
	"backoffice_portal_backend/internal/events"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (testConfig) GetAccessTokenTTL() time.Duration { return time.Hour }
func (testConfig) GetOTPTTL() time.Duration         { return 10 * time.Minute }

type otpRecord struct {
	hash      string
	expiresAt time.Time
	used      bool
	createdAt time.Time
}

type fakeRepo struct {
	usersByEmail map[string]repository.User
	otps         map[uuid.UUID][]*otpRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		usersByEmail: make(map[string]repository.User),
		otps:         make(map[uuid.UUID][]*otpRecord),
	}
}

func (f *fakeRepo) CreateUser(_ context.Context, params repository.CreateUserParams) (repository.User, error) {
	if _, exists := f.usersByEmail[params.Email]; exists {
		return repository.User{}, apperr.Conflict("email or username already in use")
	}
	user := repository.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		RoleName:     params.RoleName,
		CreatedAt:    time.Now(),
	}
	f.usersByEmail[params.Email] = user
	return user, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, userID uuid.UUID) (repository.User, error) {
	for _, user := range f.usersByEmail {
		if user.ID == userID {
			return user, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeRepo) CountByRole(_ context.Context, roleName string) (int, error) {
	count := 0
	for _, user := range f.usersByEmail {
		if user.RoleName == roleName {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) error {
	user, ok := f.usersByEmail[email]
	if !ok {
		return apperr.NotFound("user not found")
	}
	user.PasswordHash = passwordHash
	f.usersByEmail[email] = user
	return nil
}

func (f *fakeRepo) CreateOTP(_ context.Context, userID uuid.UUID, otpHash string, expiresAt time.Time) error {
	f.otps[userID] = append(f.otps[userID], &otpRecord{hash: otpHash, expiresAt: expiresAt, createdAt: time.Now()})
	return nil
}

func (f *fakeRepo) ConsumeOTP(_ context.Context, userID uuid.UUID, otpHash string) (time.Time, error) {
	records := f.otps[userID]
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].hash == otpHash && !records[i].used {
			records[i].used = true
			return records[i].expiresAt, nil
		}
	}
	return time.Time{}, apperr.NotFound("otp not found")
}

type captureBus struct {
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func newTestService(repo *fakeRepo, bus *captureBus) *Service {
	return New(repo, testConfig{}, bus, logger.New("development"))
}

func seedUser(t *testing.T, repo *fakeRepo, email, plain, role string) repository.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.CreateUser(context.Background(), repository.CreateUserParams{
		Username:     "tester",
		Email:        email,
		PasswordHash: hash,
		RoleName:     role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &captureBus{})
	seedUser(t, repo, "agent@example.com", "correct-horse", "salesagent")

	t.Run("success issues token with role and email", func(t *testing.T) {
		result, err := svc.Login(context.Background(), "agent@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if result.AccessToken == "" {
			t.Error("expected non-empty access token")
		}
		if result.User.Role != "salesagent" {
			t.Errorf("role = %q, want salesagent", result.User.Role)
		}

		check := svc.VerifyToken(result.AccessToken)
		if !check.Valid {
			t.Error("issued token must verify")
		}
		if check.Role != "salesagent" {
			t.Errorf("token role = %q, want salesagent", check.Role)
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "agent@example.com", "wrong")
		if !apperr.Is(err, apperr.KindUnauthorized) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
		if !apperr.Is(err, apperr.KindUnauthorized) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})
}

func TestSignupSuperadminRejectsSecond(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &captureBus{})
	seedUser(t, repo, "root@example.com", "first-password", "superadmin")

	_, err := svc.SignupSuperadmin(context.Background(), transport.SignupSuperadminRequest{
		Username: "root2",
		Email:    "second@example.com",
		Password: "another-password",
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestForgotPasswordUnknownEmailSucceedsSilently(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := newTestService(repo, bus)

	if err := svc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if len(bus.published) != 0 {
		t.Error("no event should be published for unknown email")
	}
}

func TestOTPFlow(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := newTestService(repo, bus)
	user := seedUser(t, repo, "agent@example.com", "correct-horse", "salesagent")

	if err := svc.ForgotPassword(context.Background(), user.Email); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	reset, ok := bus.published[0].(events.PasswordResetRequested)
	if !ok {
		t.Fatalf("published event is %T, want PasswordResetRequested", bus.published[0])
	}
	if len(reset.OTP) != 6 {
		t.Errorf("otp length = %d, want 6", len(reset.OTP))
	}

	records := repo.otps[user.ID]
	if len(records) != 1 || records[0].hash != otptoken.HashSHA256(reset.OTP) {
		t.Fatal("stored otp hash must match the emailed otp")
	}

	t.Run("wrong otp rejected", func(t *testing.T) {
		if err := svc.VerifyOTP(context.Background(), user.Email, "000000"); err == nil {
			t.Error("wrong otp must be rejected")
		}
	})

	t.Run("correct otp accepted once", func(t *testing.T) {
		if err := svc.VerifyOTP(context.Background(), user.Email, reset.OTP); err != nil {
			t.Fatalf("VerifyOTP: %v", err)
		}
		if err := svc.VerifyOTP(context.Background(), user.Email, reset.OTP); err == nil {
			t.Error("otp reuse must be rejected")
		}
	})
}

func TestVerifyOTPExpired(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &captureBus{})
	user := seedUser(t, repo, "agent@example.com", "correct-horse", "salesagent")

	otp := "123456"
	if err := repo.CreateOTP(context.Background(), user.ID, otptoken.HashSHA256(otp), time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("CreateOTP: %v", err)
	}

	if err := svc.VerifyOTP(context.Background(), user.Email, otp); err == nil {
		t.Error("expired otp must be rejected")
	}
}

func TestSetPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &captureBus{})
	seedUser(t, repo, "agent@example.com", "old-password", "salesagent")

	if err := svc.SetPassword(context.Background(), "agent@example.com", "new-password"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	if _, err := svc.Login(context.Background(), "agent@example.com", "old-password"); err == nil {
		t.Error("old password must no longer work")
	}
	if _, err := svc.Login(context.Background(), "agent@example.com", "new-password"); err != nil {
		t.Errorf("new password must work: %v", err)
	}

	if err := svc.SetPassword(context.Background(), "ghost@example.com", "whatever"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(newFakeRepo(), &captureBus{})
	if svc.VerifyToken("not-a-token").Valid {
		t.Error("garbage token must not verify")
	}
}
