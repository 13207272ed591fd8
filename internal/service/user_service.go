package service

import (
	"errors"
	"strings"

	"github.com/udayteja27/apsona/internal/contract"
	"github.com/udayteja27/apsona/internal/domain/entity"
	"github.com/udayteja27/apsona/internal/utils"
	"github.com/udayteja27/apsona/internal/utils/apierror"
	"github.com/udayteja27/apsona/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	Save(user *entity.User) error
}

type UserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Validate: validate,
	}
}

// Register creates a new identity. The plaintext password is hashed before
// anything is persisted. Uniqueness is the store's job: a rejected insert
// surfaces as DuplicateUsernameError with no further detail.
func (u *UserService) Register(req *contract.CreateUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	req.Username = strings.TrimSpace(req.Username)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	user := &entity.User{
		ID:           uid.Generate(),
		Username:     req.Username,
		PasswordHash: hashed,
		CreatedAt:    utils.NowUTC(),
	}

	if err := u.UserRepo.Save(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.DuplicateUsernameError
		}
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.StoreUnavailableError
	}

	return toUserResponse(user), nil
}

// Login verifies the credential pair and issues a session token. An unknown
// username and a wrong password fail identically, so a caller cannot tell
// which half was wrong.
func (u *UserService) Login(req *contract.UserLoginRequest) (*contract.UserLoginResponse, apierror.ErrorResponse) {
	req.Username = strings.TrimSpace(req.Username)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	user, err := u.UserRepo.FindByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to fetch user: %v", err)
		return nil, apierror.StoreUnavailableError
	}

	if user == nil || !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, apierror.InvalidCredentialsError
	}

	token, err := utils.IssueToken(user.ID)
	if err != nil {
		log.Errorf("failed to issue token: %v", err)
		return nil, apierror.InternalServerError
	}

	return &contract.UserLoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(utils.TokenTTL.Seconds()),
	}, nil
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
	}
}
