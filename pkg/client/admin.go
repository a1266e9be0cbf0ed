package client

import (
	"context"
	"errors"
	"sync"

	"github.com/JesloDev/e-library/internal/core/domain"
)

// AdminState mirrors the admin dashboard lists. Mutations are optimistic: the
// local list changes before the remote call confirms, and the pre-mutation
// snapshot is restored when the call fails. Remote writes are last-write-wins;
// concurrent admins race freely.
type AdminState struct {
	mu           sync.Mutex
	PendingUsers []PendingUser
	Links        []domain.RegistrationLink
	Books        []domain.Book
}

// Refresh issues the three dashboard fetches concurrently and commits each
// list independently as it resolves; one failing fetch does not block the
// others. The returned error joins whatever failed.
func (s *AdminState) Refresh(ctx context.Context, c *Client) error {
	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		users, err := c.PendingUsers(ctx)
		if err != nil {
			errs[0] = err
			return
		}
		s.mu.Lock()
		s.PendingUsers = users
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		links, err := c.Links(ctx)
		if err != nil {
			errs[1] = err
			return
		}
		s.mu.Lock()
		s.Links = links
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		books, err := c.Books(ctx, domain.Filter{})
		if err != nil {
			errs[2] = err
			return
		}
		s.mu.Lock()
		s.Books = books
		s.mu.Unlock()
	}()
	wg.Wait()

	return errors.Join(errs...)
}

// ApproveUser removes the user from the pending list immediately and restores
// it when the remote approval fails.
func (s *AdminState) ApproveUser(ctx context.Context, c *Client, userID string) error {
	s.mu.Lock()
	snapshot := s.PendingUsers
	s.PendingUsers = removePendingUser(s.PendingUsers, userID)
	s.mu.Unlock()

	if err := c.ApproveUser(ctx, userID); err != nil {
		s.mu.Lock()
		s.PendingUsers = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// DeleteLink removes the link locally first, restoring it on remote failure.
func (s *AdminState) DeleteLink(ctx context.Context, c *Client, id string) error {
	s.mu.Lock()
	snapshot := s.Links
	s.Links = removeLink(s.Links, id)
	s.mu.Unlock()

	if err := c.DeleteLink(ctx, id); err != nil {
		s.mu.Lock()
		s.Links = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// DeleteBook removes the record locally first, restoring it on remote failure.
func (s *AdminState) DeleteBook(ctx context.Context, c *Client, id string) error {
	s.mu.Lock()
	snapshot := s.Books
	s.Books = removeBook(s.Books, id)
	s.mu.Unlock()

	if err := c.DeleteBook(ctx, id); err != nil {
		s.mu.Lock()
		s.Books = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func removePendingUser(users []PendingUser, id string) []PendingUser {
	out := make([]PendingUser, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

func removeLink(links []domain.RegistrationLink, id string) []domain.RegistrationLink {
	out := make([]domain.RegistrationLink, 0, len(links))
	for _, l := range links {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

func removeBook(books []domain.Book, id string) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
