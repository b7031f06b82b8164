package services

import (
	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/models"
)

// AccountService covers user and admin accounts.
type AccountService struct {
	store *database.Store
}

func NewAccountService(store *database.Store) *AccountService {
	return &AccountService{store: store}
}

func (s *AccountService) GetUID(username string) (uint, error) {
	return s.store.GetUID(username)
}

func (s *AccountService) UserExists(username string) (bool, error) {
	return s.store.UserExists(username)
}

func (s *AccountService) AddUser(username, password, fullname, phone string) (uint, error) {
	return s.store.AddUser(username, password, fullname, phone)
}

func (s *AccountService) DeleteUser(username string) error {
	return s.store.DelUser(username)
}

func (s *AccountService) LoginUser(username, password string) (uint, error) {
	return s.store.CheckUserCredentials(username, password)
}

func (s *AccountService) UserData(uid uint) (models.UserData, error) {
	return s.store.UserData(uid)
}

func (s *AccountService) AddAdmin(username, password string, vid uint) (uint, error) {
	return s.store.AddAdmin(username, password, vid)
}

func (s *AccountService) DeleteAdmin(username string) error {
	return s.store.DelAdmin(username)
}

func (s *AccountService) LoginAdmin(username, password string) (models.AdminLogin, error) {
	return s.store.CheckAdminCredentials(username, password)
}
