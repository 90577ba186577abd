package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/models"
	"taskflow/internal/repositories"
)

type MockMailer struct {
	SendFunc func(ctx context.Context, msg Message) error
}

func (m *MockMailer) Send(ctx context.Context, msg Message) error {
	if m.SendFunc == nil {
		return nil
	}
	return m.SendFunc(ctx, msg)
}

func newUserFixture(mailer Mailer) UserService {
	return NewUserService(
		repositories.OpenMemory().Users,
		mailer,
		NewAuthServiceWithCost(bcrypt.MinCost),
		"http://app.test/login",
		nil,
	)
}

func annInput() models.UserInput {
	return models.UserInput{Name: "Ann Lee", Email: "ann@example.com", LoginID: "ann", Password: "s3cret"}
}

func TestUserServiceCreateHashesAndInvites(t *testing.T) {
	var sent []Message
	svc := newUserFixture(&MockMailer{SendFunc: func(_ context.Context, msg Message) error {
		sent = append(sent, msg)
		return nil
	}})

	u, err := svc.Create(context.Background(), annInput())
	if err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "s3cret" {
		t.Errorf("password not hashed: %q", u.PasswordHash)
	}
	if len(sent) != 1 {
		t.Fatalf("sent %d invitations, want 1", len(sent))
	}
	msg := sent[0]
	if msg.To != "ann@example.com" || msg.Subject != invitationSubject {
		t.Errorf("message header = %q / %q", msg.To, msg.Subject)
	}
	for _, want := range []string{"Hi Ann Lee", "s3cret", "http://app.test/login"} {
		if !strings.Contains(msg.HTMLBody, want) {
			t.Errorf("invitation body lacks %q", want)
		}
	}
}

func TestUserServiceMailFailureDoesNotFailCreate(t *testing.T) {
	svc := newUserFixture(&MockMailer{SendFunc: func(context.Context, Message) error {
		return errors.New("smtp down")
	}})
	if _, err := svc.Create(context.Background(), annInput()); err != nil {
		t.Fatalf("Create failed because of mail: %v", err)
	}
}

func TestUserServiceDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newUserFixture(nil)
	if _, err := svc.Create(ctx, annInput()); err != nil {
		t.Fatal(err)
	}

	in := annInput()
	in.LoginID = "ann2"
	_, err := svc.Create(ctx, in)
	if !models.IsCode(err, models.ErrCodeDuplicate) {
		t.Fatalf("err = %v, want DUPLICATE", err)
	}
	var dErr *models.Error
	if errors.As(err, &dErr) && dErr.Message != "A member with this email already exists" {
		t.Errorf("message = %q", dErr.Message)
	}
}

func TestUserServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc := newUserFixture(nil)
	created, _ := svc.Create(ctx, annInput())

	u, err := svc.Login(ctx, models.LoginRequest{LoginID: "ann", Password: "s3cret"})
	if err != nil || u.ID != created.ID {
		t.Fatalf("Login = %+v, %v", u, err)
	}

	for _, req := range []models.LoginRequest{
		{LoginID: "ann", Password: "wrong"},
		{LoginID: "nobody", Password: "s3cret"},
	} {
		if _, err := svc.Login(ctx, req); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("Login(%s) err = %v, want invalid credentials", req.LoginID, err)
		}
	}
}

func TestUserServiceUpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc := newUserFixture(nil)
	created, _ := svc.Create(ctx, annInput())

	pw := "n3w"
	if _, err := svc.Update(ctx, created.ID, models.UserPatch{Password: &pw}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login(ctx, models.LoginRequest{LoginID: "ann", Password: "n3w"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if err := svc.Delete(ctx, "missing"); !models.IsCode(err, models.ErrCodeNotFound) {
		t.Errorf("Delete(missing) err = %v", err)
	}
}

func TestInvitationMessageEscapes(t *testing.T) {
	msg, err := InvitationMessage(Invitation{
		Name:     "<script>",
		Email:    "x@example.com",
		LoginID:  "x",
		Password: "p",
		LoginURL: "http://app.test/login",
	}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(msg.HTMLBody, "<script>") {
		t.Error("name was not escaped")
	}
	if !strings.Contains(msg.HTMLBody, "2026 TaskFlow") {
		t.Error("footer year missing")
	}
}
