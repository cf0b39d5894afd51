package repo

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"farmbook/internal/domain"
	"farmbook/pkg/utils"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return nil, domain.ErrUserNotFound
	}
	var u domain.User
	err := r.db.First(&u, "email = ?", needle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByMobile(mobile string) (*domain.User, error) {
	needle := strings.TrimSpace(mobile)
	if needle == "" {
		// skip the query entirely for blank input
		return nil, domain.ErrUserNotFound
	}
	var u domain.User
	err := r.db.First(&u, "mobile = ?", needle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AssertUnique checks email first, then mobile. It is advisory: the mobile
// column's unique index is the real backstop for concurrent signups.
func (r *UserRepo) AssertUnique(email, mobile string) error {
	if strings.TrimSpace(email) != "" {
		if _, err := r.FindByEmail(email); err == nil {
			return domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
	}
	if _, err := r.FindByMobile(mobile); err == nil {
		return domain.ErrMobileTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

// Create inserts after a uniqueness check and returns the stored record,
// re-read by id. The caller strips the password hash before it leaves the
// handler boundary.
func (r *UserRepo) Create(u *domain.User) (*domain.User, error) {
	if err := r.AssertUnique(u.Email, u.Mobile); err != nil {
		return nil, err
	}
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the check-then-act race, same outcome as the check
			return nil, domain.ErrMobileTaken
		}
		return nil, err
	}

	var stored domain.User
	if err := r.db.First(&stored, "id = ?", u.ID).Error; err != nil {
		return nil, domain.ErrPersistence
	}
	return &stored, nil
}

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(offset, limit int) ([]domain.User, int64, error) {
	var users []domain.User
	tx := r.db.Model(&domain.User{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := tx.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) Deactivate(id string) error {
	res := r.db.Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
