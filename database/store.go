package database

import (
	"strconv"
	"strings"
	"sync"

	"github.com/yeremiapane/resteasy/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Store owns every persistent entity. Each method is one unit of work; use
// Transaction to run several of them atomically.
type Store struct {
	db *gorm.DB

	// HashCost is the bcrypt cost used for new passwords.
	HashCost int
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, HashCost: bcrypt.DefaultCost}
}

// DB returns the underlying handle (a transaction inside Transaction).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, HashCost: s.HashCost})
	})
}

var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

// burnCompare spends the same time a real password check would, so unknown
// usernames cannot be told apart from wrong passwords by latency.
func burnCompare(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("resteasy"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func (s *Store) hash(password string) (string, error) {
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func idKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "must not be empty"}
	}
	return nil
}

// findID loads the id of the first row of model matching the condition.
// found is false when no row matches.
func (s *Store) findID(model any, query string, args ...any) (id uint, found bool, err error) {
	var ids []uint
	err = s.db.Model(model).Where(query, args...).Limit(1).Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, false, err
	}
	return ids[0], true, nil
}

func (s *Store) count(model any, query string, args ...any) (int64, error) {
	var n int64
	err := s.db.Model(model).Where(query, args...).Count(&n).Error
	return n, err
}

// --- users ---

func (s *Store) GetUID(username string) (uint, error) {
	id, found, err := s.findID(&models.User{}, "username = ?", username)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &NotFoundError{Entity: "user", Key: username}
	}
	return id, nil
}

func (s *Store) UserExists(username string) (bool, error) {
	_, found, err := s.findID(&models.User{}, "username = ?", username)
	return found, err
}

// AddUser creates a user and returns its id. The password is stored hashed.
func (s *Store) AddUser(username, password, fullname, phone string) (uint, error) {
	for _, f := range [][2]string{{"username", username}, {"password", password}, {"fullname", fullname}, {"phone", phone}} {
		if err := required(f[0], f[1]); err != nil {
			return 0, err
		}
	}
	hashed, err := s.hash(password)
	if err != nil {
		return 0, err
	}
	user := models.User{Username: username, Password: hashed, Fullname: fullname, Phone: phone}
	if err := s.db.Create(&user).Error; err != nil {
		if IsUniqueViolation(err) {
			return 0, &AlreadyExistsError{Entity: "user", Key: username}
		}
		return 0, err
	}
	return user.ID, nil
}

// DelUser removes a user. Users that placed orders cannot be removed.
func (s *Store) DelUser(username string) error {
	return s.Transaction(func(tx *Store) error {
		uid, err := tx.GetUID(username)
		if err != nil {
			return err
		}
		n, err := tx.count(&models.Order{}, "user_id = ?", uid)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ReferentialError{Entity: "user", Key: username, Reason: "user has placed orders"}
		}
		if err := tx.db.Delete(&models.User{}, uid).Error; err != nil {
			if IsForeignKeyViolation(err) {
				return &ReferentialError{Entity: "user", Key: username, Reason: "user is still referenced"}
			}
			return err
		}
		return nil
	})
}

func (s *Store) UserData(uid uint) (models.UserData, error) {
	var users []models.User
	if err := s.db.Where("id = ?", uid).Limit(1).Find(&users).Error; err != nil {
		return models.UserData{}, err
	}
	if len(users) == 0 {
		return models.UserData{}, &NotFoundError{Entity: "user", Key: idKey(uid)}
	}
	u := users[0]
	return models.UserData{Username: u.Username, Fullname: u.Fullname, Phone: u.Phone}, nil
}

// CheckUserCredentials returns the user id when username and password match.
// Any mismatch yields ErrInvalidCredentials, whichever field was wrong.
func (s *Store) CheckUserCredentials(username, password string) (uint, error) {
	var users []models.User
	if err := s.db.Where("username = ?", username).Limit(1).Find(&users).Error; err != nil {
		return 0, err
	}
	if len(users) == 0 {
		burnCompare(password)
		return 0, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte(password)) != nil {
		return 0, ErrInvalidCredentials
	}
	return users[0].ID, nil
}

// --- admins ---

func (s *Store) GetAID(username string) (uint, error) {
	id, found, err := s.findID(&models.Admin{}, "username = ?", username)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &NotFoundError{Entity: "admin", Key: username}
	}
	return id, nil
}

func (s *Store) AdminExists(username string) (bool, error) {
	_, found, err := s.findID(&models.Admin{}, "username = ?", username)
	return found, err
}

func (s *Store) AddAdmin(username, password string, vid uint) (uint, error) {
	if err := required("username", username); err != nil {
		return 0, err
	}
	if err := required("password", password); err != nil {
		return 0, err
	}
	hashed, err := s.hash(password)
	if err != nil {
		return 0, err
	}
	admin := models.Admin{Username: username, Password: hashed, VendorID: vid}
	err = s.Transaction(func(tx *Store) error {
		if n, err := tx.count(&models.Vendor{}, "id = ?", vid); err != nil {
			return err
		} else if n == 0 {
			return &ReferentialError{Entity: "vendor", Key: idKey(vid)}
		}
		return tx.db.Create(&admin).Error
	})
	switch {
	case err == nil:
		return admin.ID, nil
	case IsUniqueViolation(err):
		return 0, &AlreadyExistsError{Entity: "admin", Key: username}
	case IsForeignKeyViolation(err):
		return 0, &ReferentialError{Entity: "vendor", Key: idKey(vid)}
	default:
		return 0, err
	}
}

func (s *Store) DelAdmin(username string) error {
	res := s.db.Where("username = ?", username).Delete(&models.Admin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "admin", Key: username}
	}
	return nil
}

// CheckAdminCredentials returns the admin and vendor ids on a match, and
// ErrInvalidCredentials otherwise.
func (s *Store) CheckAdminCredentials(username, password string) (models.AdminLogin, error) {
	var admins []models.Admin
	if err := s.db.Where("username = ?", username).Limit(1).Find(&admins).Error; err != nil {
		return models.AdminLogin{}, err
	}
	if len(admins) == 0 {
		burnCompare(password)
		return models.AdminLogin{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte(password)) != nil {
		return models.AdminLogin{}, ErrInvalidCredentials
	}
	return models.AdminLogin{AdminID: admins[0].ID, VendorID: admins[0].VendorID}, nil
}

// UserIDExists reports whether a user with id uid exists.
func (s *Store) UserIDExists(uid uint) (bool, error) {
	n, err := s.count(&models.User{}, "id = ?", uid)
	return n > 0, err
}
