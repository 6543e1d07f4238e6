package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"event-platform/internal/auth"
	"event-platform/internal/database"
	"event-platform/internal/model"
	"event-platform/internal/queue"
	"event-platform/internal/repository"
	apperrors "event-platform/pkg/app_errors"
	"event-platform/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	// Authenticate 未知使用者與密碼錯誤回傳同一個錯誤
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	ChangeUsername(ctx context.Context, userID int, newUsername string) (*model.User, error)
	ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) (*model.User, error)
	GetProfile(ctx context.Context, userID int) (*model.User, error)
	// EnsureActive 已刪除回傳 ErrUnauthenticated，已停權回傳 ErrUserBanned
	EnsureActive(ctx context.Context, userID int) error

	// Admin
	Ban(ctx context.Context, targetID, actingAdminID int) (*model.User, error)
	ListAll(ctx context.Context, callerID int) ([]*model.User, error)
	Promote(ctx context.Context, username string) (*model.User, error)
}

type UserServiceImpl struct {
	tx        database.Transactor
	users     repository.UserRepository
	events    repository.EventRepository
	tickets   repository.TicketRepository
	hasher    auth.PasswordHasher
	publisher activityPublisher
	now       Clock

	dummyOnce   sync.Once
	dummyDigest string
}

func NewUserService(
	tx database.Transactor,
	users repository.UserRepository,
	events repository.EventRepository,
	tickets repository.TicketRepository,
	hasher auth.PasswordHasher,
	activities queue.ActivityQueue,
	clock Clock,
) UserService {
	if clock == nil {
		clock = time.Now
	}
	return &UserServiceImpl{
		tx:        tx,
		users:     users,
		events:    events,
		tickets:   tickets,
		hasher:    hasher,
		publisher: activityPublisher{queue: activities, log: logger.WithComponent("service")},
		now:       clock,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, username, password string) (*model.User, error) {
	// 先查一次給友善錯誤；真正的保證是 users_username_key
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	var created *model.User
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		created, err = s.users.Create(ctx, tx, &model.User{
			Username:       username,
			HashedPassword: digest,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *UserServiceImpl) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// 跑一次假的比對，讓回應時間不洩漏帳號是否存在
			s.hasher.Verify(password, s.dummy())
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Banned {
		return nil, apperrors.ErrUserBanned
	}

	return user, nil
}

func (s *UserServiceImpl) dummy() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("timing-equalizer")
		if err == nil {
			s.dummyDigest = digest
		}
	})
	return s.dummyDigest
}

func (s *UserServiceImpl) ChangeUsername(ctx context.Context, userID int, newUsername string) (*model.User, error) {
	var updated *model.User
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		user, err := s.users.FindByIDWithLock(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user.Username == newUsername {
			updated = user
			return nil
		}

		holderID, err := s.users.FindIDByUsername(ctx, tx, newUsername)
		switch {
		case err == nil && holderID != userID:
			return apperrors.ErrUsernameTaken
		case err != nil && !errors.Is(err, apperrors.ErrUserNotFound):
			return err
		}

		updated, err = s.users.Update(ctx, tx, userID, model.UpdateUserParams{Username: &newUsername})
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) (*model.User, error) {
	var updated *model.User
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		user, err := s.users.FindByIDWithLock(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !s.hasher.Verify(oldPassword, user.HashedPassword) {
			return apperrors.ErrWrongPassword
		}

		digest, err := s.hasher.Hash(newPassword)
		if err != nil {
			return err
		}

		updated, err = s.users.Update(ctx, tx, userID, model.UpdateUserParams{HashedPassword: &digest})
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetProfile 帶出使用者建立的活動與持有的票券
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.CreatedEvents, err = s.events.List(ctx, repository.EventFilter{OwnerID: &userID})
	if err != nil {
		return nil, err
	}

	user.Tickets, err = s.tickets.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserServiceImpl) EnsureActive(ctx context.Context, userID int) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUnauthenticated
		}
		return err
	}
	if user.Banned {
		return apperrors.ErrUserBanned
	}
	return nil
}

// Ban 只設定 banned 旗標，不改動其他欄位
func (s *UserServiceImpl) Ban(ctx context.Context, targetID, actingAdminID int) (*model.User, error) {
	if _, err := requireAdmin(ctx, s.users, actingAdminID); err != nil {
		return nil, err
	}
	if targetID == actingAdminID {
		return nil, apperrors.ErrCannotBanSelf
	}

	banned := true
	var updated *model.User
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.users.FindByIDWithLock(ctx, tx, targetID); err != nil {
			return err
		}
		var err error
		updated, err = s.users.Update(ctx, tx, targetID, model.UpdateUserParams{Banned: &banned})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.log.Info("user banned", zap.Int("target_id", targetID), zap.Int("admin_id", actingAdminID))
	s.publisher.publish(ctx, model.NewActivity(model.ActivityUserBanned, actingAdminID, targetID, s.now()))
	return updated, nil
}

func (s *UserServiceImpl) ListAll(ctx context.Context, callerID int) ([]*model.User, error) {
	if _, err := requireAdmin(ctx, s.users, callerID); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Promote 只給 CLI 使用，用來建立第一個管理員
func (s *UserServiceImpl) Promote(ctx context.Context, username string) (*model.User, error) {
	isAdmin := true
	var updated *model.User
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		id, err := s.users.FindIDByUsername(ctx, tx, username)
		if err != nil {
			return err
		}
		updated, err = s.users.Update(ctx, tx, id, model.UpdateUserParams{IsAdmin: &isAdmin})
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
