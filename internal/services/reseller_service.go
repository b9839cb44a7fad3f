package services

import (
	"errors"

	"lumina/internal/domain"
	"lumina/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrAlreadyReviewed  = errors.New("application already reviewed")
)

type ResellerService struct {
	Apps  *repos.ApplicationRepo
	Users *repos.UserRepo
	Auth  *AuthService
}

func NewResellerService(apps *repos.ApplicationRepo, users *repos.UserRepo, auth *AuthService) *ResellerService {
	return &ResellerService{Apps: apps, Users: users, Auth: auth}
}

// Apply files a pending application. When no account exists for the email one
// is created first; if the application insert then fails the account stays
// (there is no cleanup step, the applicant can retry with the same login).
func (s *ResellerService) Apply(a domain.ResellerApplication, password, confirm string) (string, error) {
	if password != confirm {
		return "", ErrPasswordMismatch
	}

	if a.UserID == "" {
		if u, err := s.Users.ByEmail(a.Email); err == nil && u != nil {
			a.UserID = u.ID
		} else {
			u, err := s.Auth.SignUp(a.Email, a.ContactPerson, password)
			if err != nil {
				return "", err
			}
			a.UserID = u.ID
		}
	}

	a.ID = uuid.NewString()
	if err := s.Apps.Create(a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// Approve transitions a pending application and promotes the linked account
// to the approved wholesale role. A second approval fails: the status guard
// rejects any application that already left pending.
func (s *ResellerService) Approve(appID, reviewerID string) error {
	a, err := s.Apps.Get(appID)
	if err != nil {
		return err
	}
	if a.Status != domain.AppPending {
		return ErrAlreadyReviewed
	}
	if err := s.Apps.Transition(appID, domain.AppApproved, reviewerID); err != nil {
		return ErrAlreadyReviewed
	}

	userID := a.UserID
	if userID == "" {
		// Applications filed before the account existed: match by email.
		if u, err := s.Users.ByEmail(a.Email); err == nil {
			userID = u.ID
		}
	}
	if userID == "" {
		return nil
	}
	return s.Users.Promote(userID, a.CompanyName)
}

func (s *ResellerService) Reject(appID, reviewerID string) error {
	a, err := s.Apps.Get(appID)
	if err != nil {
		return err
	}
	if a.Status != domain.AppPending {
		return ErrAlreadyReviewed
	}
	if err := s.Apps.Transition(appID, domain.AppRejected, reviewerID); err != nil {
		return ErrAlreadyReviewed
	}
	return nil
}

func (s *ResellerService) List(status string) ([]domain.ResellerApplication, error) {
	return s.Apps.List(status)
}
