package service

import (
	"context"
	"time"

	"ripple/internal/authz"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type RegisterInput struct {
	Email       string
	Password    string
	Password2   string
	Username    string
	PhoneNumber string
	Bio         string
	Location    string
	BirthDate   *time.Time
}

type UpdateProfileInput struct {
	UserID       uint
	Username     *string
	Password     *string
	PhoneNumber  *string
	Bio          *string
	ProfileImage *string
	Location     *string
	BirthDate    *time.Time
	IsStaff      *bool
	IsSuperuser  *bool
}

type ListUsersInput struct {
	Username string
	Location string
	Limit    int
	Offset   int
}

// Register validates the input, hashes the password and creates the account.
// No row is written when any check fails.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePasswordPair(in.Password, in.Password2); err != nil {
		return nil, err
	}
	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, err
		}
	}
	if in.PhoneNumber != "" {
		if err := validation.ValidatePhoneNumber(in.PhoneNumber); err != nil {
			return nil, err
		}
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Email is already registered")
	}
	if in.Username != "" {
		existing, err = s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Username is already taken")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:       in.Email,
		Password:    string(hashed),
		PhoneNumber: in.PhoneNumber,
		Bio:         in.Bio,
		Location:    in.Location,
		BirthDate:   in.BirthDate,
	}
	if in.Username != "" {
		user.Username = &in.Username
	}
	// The unique indexes close the check/create race; a concurrent duplicate
	// surfaces as the same validation error.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies email/password credentials. Both unknown email and
// wrong password return the same unauthorized error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

const profilePostsLimit = 10

// GetUserByID returns the profile with its most recent posts attached.
func (s *UserService) GetUserByID(ctx context.Context, actor authz.Actor, id uint) (*models.User, error) {
	if err := authz.ForUser(actor, authz.ActionRetrieve, id); err != nil {
		return nil, err
	}
	return s.userRepo.GetByIDWithPosts(ctx, id, profilePostsLimit)
}

func (s *UserService) ListUsers(ctx context.Context, actor authz.Actor, in ListUsersInput) ([]models.User, error) {
	if err := authz.ForUser(actor, authz.ActionList, 0); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	filter := repository.UserFilter{Username: in.Username, Location: in.Location}
	return s.userRepo.List(ctx, filter, limit, in.Offset)
}

// UpdateProfile applies a partial update to the target account. Only the
// owner or staff may update; privilege flags additionally require staff.
func (s *UserService) UpdateProfile(ctx context.Context, actor authz.Actor, in UpdateProfileInput) (*models.User, error) {
	if err := authz.ForUser(actor, authz.ActionUpdate, in.UserID); err != nil {
		return nil, err
	}

	// Mutations start from the stored row, not the cache: the cached user
	// carries no password hash and saving it whole would erase the column.
	user, err := s.userRepo.GetForUpdate(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if *in.Username == "" {
			// Clearing the username stores NULL so the unique index never
			// sees two empty strings.
			user.Username = nil
		} else {
			if err := validation.ValidateUsername(*in.Username); err != nil {
				return nil, err
			}
			user.Username = in.Username
		}
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}
	if in.PhoneNumber != nil {
		if *in.PhoneNumber != "" {
			if err := validation.ValidatePhoneNumber(*in.PhoneNumber); err != nil {
				return nil, err
			}
		}
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.BirthDate != nil {
		user.BirthDate = in.BirthDate
	}
	if in.IsStaff != nil || in.IsSuperuser != nil {
		if !actor.Admin() {
			return nil, models.NewForbiddenError("Only staff may change privilege flags")
		}
		if in.IsStaff != nil {
			user.IsStaff = *in.IsStaff
		}
		if in.IsSuperuser != nil {
			user.IsSuperuser = *in.IsSuperuser
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
