package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campusroom/campusroom-api/internal/domain/user"
	"github.com/campusroom/campusroom-api/internal/pkg/jwt"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	for _, existing := range f.byID {
		if existing.RollNumber == u.RollNumber {
			return user.ErrRollNumberTaken
		}
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}

func newTestService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewService(repo, jwt.NewService("test-secret", time.Hour)), repo
}

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		Email:      "Asel@Example.Com",
		Password:   "correct horse battery",
		Name:       "Asel Nurlanova",
		RollNumber: "CS21B042",
		Role:       "class_representative",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected an access token")
	}
	if resp.User.Email != "asel@example.com" {
		t.Errorf("expected lowercased email, got %s", resp.User.Email)
	}
	if resp.User.PasswordHash == "correct horse battery" {
		t.Error("password must be hashed")
	}

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "asel@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Error("login must return the registered account")
	}
}

func TestRegisterAdminNotAllowed(t *testing.T) {
	svc, _ := newTestService()

	req := registerReq()
	req.Role = "admin"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	req := registerReq()
	req.RollNumber = "CS21B043"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "asel@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	me, err := svc.Me(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if me.ID != resp.User.ID {
		t.Error("expected the registered account")
	}

	if _, err := svc.Me(context.Background(), uuid.New()); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
