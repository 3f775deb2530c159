package repositories

import (
	"time"

	"github.com/formhub/formhub-go/db"
	"github.com/formhub/formhub-go/models"
)

type UserFilter struct {
	SiteID *uint
	Role   *models.UserRole
	Skip   int
	Limit  int
}

type UserRepo interface {
	GetUserByID(id uint) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	ListUsers(filter UserFilter) ([]models.User, error)
	CreateUser(user *models.User) error
	SaveUser(user *models.User) error
	DeleteUser(id uint) error
	UpdateLastLogin(id uint, at time.Time) error
}

type DBUserRepo struct{}

func (r *DBUserRepo) GetUserByID(id uint) (models.User, error) {
	var user models.User
	err := db.DB.First(&user, id).Error
	return user, err
}

func (r *DBUserRepo) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	err := db.DB.Where("email = ?", email).First(&user).Error
	return user, err
}

func (r *DBUserRepo) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	return user, err
}

func (r *DBUserRepo) ListUsers(filter UserFilter) ([]models.User, error) {
	var users []models.User
	query := db.DB.Model(&models.User{})
	if filter.SiteID != nil {
		query = query.Where("site_id = ?", *filter.SiteID)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	err := query.Offset(filter.Skip).Order("id").Find(&users).Error
	return users, err
}

func (r *DBUserRepo) CreateUser(user *models.User) error {
	return db.DB.Create(user).Error
}

func (r *DBUserRepo) SaveUser(user *models.User) error {
	return db.DB.Save(user).Error
}

func (r *DBUserRepo) DeleteUser(id uint) error {
	return db.DB.Delete(&models.User{}, id).Error
}

func (r *DBUserRepo) UpdateLastLogin(id uint, at time.Time) error {
	return db.DB.Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}
