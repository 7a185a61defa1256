package user

import (
	"context"
	"strings"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/mailing"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.CreateUserRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetUser(ctx context.Context, userID string) (domain.UserResponse, error)
		Me(user *entities.User) domain.UserResponse
		DeleteUser(ctx context.Context, userID uuid.UUID) error
	}

	userService struct {
		userRepository      UserRepository
		jwtService          jwt.JWTService
		s3                  storage.AwsS3
		mailer              mailing.Mailer
		validate            *validator.Validate
		defaultProfileImage string
		appURL              string
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3, mailer mailing.Mailer) UserService {
	return &userService{
		userRepository:      userRepository,
		jwtService:          jwtService,
		s3:                  s3,
		mailer:              mailer,
		validate:            utils.NewValidator(),
		defaultProfileImage: utils.GetConfig("DEFAULT_PROFILE_IMAGE"),
		appURL:              utils.GetConfig("APP_URL"),
	}
}

func (s *userService) Register(ctx context.Context, req domain.CreateUserRequest) (domain.UserResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return domain.UserResponse{}, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			verr := domain.NewValidationError()
			verr.Add("password", "must be at most 72 bytes")
			return domain.UserResponse{}, verr
		}
		return domain.UserResponse{}, errors.Wrap(err, "hash password")
	}

	user := &entities.User{
		ID:             uuid.New(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
		ProfileImage:   s.defaultProfileImage,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	s.sendWelcomeMail(user)
	return toUserResponse(user), nil
}

func (s *userService) sendWelcomeMail(user *entities.User) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return
	}
	body := mailing.WelcomeMailBody(user.Username, s.appURL)
	if err := s.mailer.SendMail(user.Email, domain.WelcomeMailSubject, body); err != nil {
		log.L.Warn("welcome mail not sent", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			utils.BurnPasswordCheck(req.Password)
			return domain.LoginResponse{}, domain.ErrUnauthorized
		}
		return domain.LoginResponse{}, err
	}
	if !utils.CheckPassword(req.Password, user.HashedPassword) {
		return domain.LoginResponse{}, domain.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user.Username)
	if err != nil {
		return domain.LoginResponse{}, errors.Wrap(err, "issue token")
	}
	return domain.LoginResponse{
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
		UserID:      user.ID.String(),
	}, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (domain.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.UserResponse{}, domain.ErrUserNotFound
	}
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Me(user *entities.User) domain.UserResponse {
	return toUserResponse(user)
}

func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	imageURLs, err := s.userRepository.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, link := range imageURLs {
		key := s.s3.GetObjectKeyFromLink(link)
		if key == "" {
			continue
		}
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.L.Warn("recipe image not removed from storage", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
	}
}

func ToUserPublic(user *entities.User) domain.UserPublic {
	if user == nil {
		return domain.UserPublic{}
	}
	return domain.UserPublic{ID: user.ID.String(), Username: user.Username}
}
