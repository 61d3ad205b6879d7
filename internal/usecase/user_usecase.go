package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"autodominio-api/internal/converter"
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/delivery/http/middleware"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/domain/repository"
	"autodominio-api/internal/service"
	"autodominio-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = apperror.NotFound("user not found")
	ErrEmailAlreadyExists = apperror.Conflict("EMAIL_EXISTS", "email already exists")
	ErrUnsupportedFile    = apperror.Validation("UNSUPPORTED_FILE", "file type not allowed")
)

type UserUsecase interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, page entity.Page) (*dto.UserListResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	UploadProfilePhoto(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*dto.UserResponse, error)
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	profileRepo  repository.InstructorProfileRepository
	documentRepo repository.DocumentRepository
	auditService service.AuditService
	storage      FileStorage
	photos       PhotoProcessor
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.InstructorProfileRepository,
	documentRepo repository.DocumentRepository,
	auditService service.AuditService,
	storage FileStorage,
	photos PhotoProcessor,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		documentRepo: documentRepo,
		auditService: auditService,
		storage:      storage,
		photos:       photos,
	}
}

func (u *userUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := u.userRepo.FindByEmail(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		FullName: req.FullName,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		Phone:    req.Phone,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionUserRegister, "user", user.ID.String(), converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("User %s registered with role %s", user.ID, user.Role)
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) ListUsers(ctx context.Context, page entity.Page) (*dto.UserListResponse, error) {
	users, total, err := u.userRepo.FindAll(ctx, u.db, page)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: total,
	}, nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			other, err := u.userRepo.FindByEmail(ctx, tx, email)
			if err != nil {
				u.log.Warnf("Failed to find user by email: %+v", err)
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// DeleteUser relies on ON DELETE CASCADE for the profile, appointments and reviews.
// Stored files of the user and of the cascaded documents go after commit.
func (u *userUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	documents, err := u.instructorDocuments(ctx, tx, user)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if actorID == id {
		actorID = uuid.Nil
	}
	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionUserDelete, "user", id.String(), converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if user.ProfilePhoto != nil {
		u.removeFile(*user.ProfilePhoto)
	}
	for _, document := range documents {
		u.removeFile(document.FilePath)
	}
	return nil
}

func (u *userUsecase) instructorDocuments(ctx context.Context, tx *gorm.DB, user *entity.User) ([]entity.Document, error) {
	if !user.IsInstructor() {
		return nil, nil
	}

	profile, err := u.profileRepo.FindByUserID(ctx, tx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile by user ID: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	documents, err := u.documentRepo.FindByInstructorID(ctx, tx, profile.ID)
	if err != nil {
		u.log.Warnf("Failed to find instructor documents: %+v", err)
		return nil, err
	}
	return documents, nil
}

func (u *userUsecase) UploadProfilePhoto(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*dto.UserResponse, error) {
	if extensionOf(filename, allowedImageExtensions) == "" {
		return nil, ErrUnsupportedFile
	}

	user, err := u.userRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	data, err := u.photos.Normalize(r)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImage) {
			return nil, ErrUnsupportedFile
		}
		u.log.Warnf("Failed to process profile photo: %+v", err)
		return nil, err
	}

	path, err := u.storage.Save(fmt.Sprintf("profile_photos/%s.jpg", uuid.NewString()), data)
	if err != nil {
		u.log.Warnf("Failed to store profile photo: %+v", err)
		return nil, err
	}

	previous := user.ProfilePhoto
	user.ProfilePhoto = &path
	if err := u.userRepo.Update(ctx, u.db, user); err != nil {
		u.log.Warnf("Failed to update profile photo: %+v", err)
		u.removeFile(path)
		return nil, err
	}

	if previous != nil {
		u.removeFile(*previous)
	}
	return converter.UserToResponse(user), nil
}

// removeFile is best-effort; the database row is authoritative.
func (u *userUsecase) removeFile(path string) {
	if err := u.storage.Delete(path); err != nil {
		u.log.Warnf("Failed to remove file %s: %+v", path, err)
	}
}
