package repository

import (
	"errors"

	"github.com/udayteja27/apsona/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (d *DefaultUserRepository) FindByID(id int64) (*entity.User, error) {
	var user entity.User
	err := d.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername matches the username exactly, case-sensitive.
func (d *DefaultUserRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := d.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Save inserts the user. The unique index on username makes the store reject
// duplicates; with TranslateError enabled that surfaces as
// gorm.ErrDuplicatedKey.
func (d *DefaultUserRepository) Save(user *entity.User) error {
	return d.db.Create(user).Error
}
