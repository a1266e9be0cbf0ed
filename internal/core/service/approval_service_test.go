package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/JesloDev/e-library/internal/core/domain"
)

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) SendApprovalNotice(_ context.Context, email, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func TestApprovalServiceApprove(t *testing.T) {
	users := newStubUserRepository(&domain.User{
		ID:    "u1",
		Email: "new@example.com",
		Name:  "New Member",
	})
	mailer := &stubMailer{}
	svc := NewApprovalService(users, mailer, zerolog.Nop())

	if err := svc.Approve(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, _ := users.FindByID(context.Background(), "u1")
	if !u.Approved {
		t.Error("user not marked approved")
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "new@example.com" {
		t.Errorf("notification not sent: %v", mailer.sent)
	}
}

func TestApprovalServiceApprove_MailFailureIsNotFatal(t *testing.T) {
	users := newStubUserRepository(&domain.User{ID: "u1", Email: "new@example.com"})
	mailer := &stubMailer{err: errors.New("smtp down")}
	svc := NewApprovalService(users, mailer, zerolog.Nop())

	if err := svc.Approve(context.Background(), "u1"); err != nil {
		t.Fatalf("approval must succeed despite mail failure, got %v", err)
	}

	u, _ := users.FindByID(context.Background(), "u1")
	if !u.Approved {
		t.Error("user not marked approved")
	}
}

func TestApprovalServiceApprove_UnknownUser(t *testing.T) {
	svc := NewApprovalService(newStubUserRepository(), &stubMailer{}, zerolog.Nop())

	if err := svc.Approve(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}
