package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
)

// UsersPageLimit is how many demo users the selection page requests at once.
const UsersPageLimit = 50

var ErrInvalidPage = errors.New("page number must be a positive integer")

type UserCardView struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Purchases   int    `json:"purchases"`
}

type UsersPageView struct {
	Users      []UserCardView `json:"users"`
	Page       int            `json:"page"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
	HasNext    bool           `json:"has_next"`
}

type UsersUseCase struct {
	client clients.RecsysClient
	log    *logrus.Logger
}

func NewUsersUseCase(client clients.RecsysClient, logger *logrus.Logger) *UsersUseCase {
	return &UsersUseCase{client: client, log: logger}
}

// ListUsers fetches one page of the demo user list. Pages are never cached;
// every page change re-fetches.
func (uc *UsersUseCase) ListUsers(ctx context.Context, page int) (*UsersPageView, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	result, err := uc.client.ListUsers(ctx, page, UsersPageLimit)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to list users (page %d): %v", page, err)
		return nil, err
	}

	view := &UsersPageView{
		Users:      make([]UserCardView, 0, len(result.Users)),
		Page:       page,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}
	for i, u := range result.Users {
		// some backends return summaries without ids; derive one from the
		// page position, as the users are returned in order
		id := u.UserID
		if id == 0 {
			id = int64((page-1)*len(result.Users) + i + 1)
		}
		view.Users = append(view.Users, UserCardView{
			UserID:      id,
			DisplayName: domain.DisplayUserName(u.UserName, id),
			Purchases:   u.Purchases(),
		})
	}

	// "next" stays enabled only while full pages keep coming and the
	// backend-reported page count (when known) is not exhausted
	view.HasNext = len(result.Users) >= UsersPageLimit &&
		(result.TotalPages == 0 || page < result.TotalPages)

	uc.log.Infof("Use Case: Listed %d users (page %d of %d)", len(view.Users), page, view.TotalPages)
	return view, nil
}
