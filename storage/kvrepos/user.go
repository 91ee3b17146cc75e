package kvrepos

import (
	"sort"

	"github.com/latinacademy/academia/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) users() ([]user.User, error) {
	var users []user.User
	if err := repo.db.store.Get(keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *userRepository) save(users []user.User) error {
	return repo.db.store.Set(keyUsers, users)
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	users, err := repo.users()
	if err != nil {
		return err
	}

	exclUsrsLen := len(excludedUsers)
	if exclUsrsLen > 1 {
		sort.Slice(excludedUsers, func(i, j int) bool { return excludedUsers[i].ID < excludedUsers[j].ID })
	}

	for _, usr := range users {
		if usr.Username == username && !isExcluded(usr, excludedUsers, exclUsrsLen) {
			return user.ErrUsernameExists
		}
		if usr.Email == email && !isExcluded(usr, excludedUsers, exclUsrsLen) {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	users, err := repo.users()
	if err != nil {
		return user.User{}, err
	}
	users = append(users, usr)
	if err = repo.save(users); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.users()
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	users, err := repo.users()
	if err != nil {
		return user.User{}, err
	}
	for _, usr := range users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	users, err := repo.users()
	if err != nil {
		return user.User{}, err
	}
	for _, usr := range users {
		if (usr.Username == username) || (usr.Email == username) {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	users, err := repo.users()
	if err != nil {
		return user.User{}, err
	}
	for i, origUsr := range users {
		if origUsr.ID != usr.ID {
			continue
		}
		// only save set fields
		if usr.Roles != nil {
			origUsr.Roles = usr.Roles
		}
		if usr.PasswordHash != nil {
			origUsr.PasswordHash = usr.PasswordHash
		}
		if isActive != nil {
			origUsr.IsActive = *isActive
		}
		if !usr.LastLogin.IsZero() {
			origUsr.LastLogin = usr.LastLogin
		}
		origUsr.Name = usr.Name
		origUsr.Username = usr.Username
		origUsr.Email = usr.Email
		origUsr.UpdatedAt = usr.UpdatedAt

		users[i] = origUsr
		if err = repo.save(users); err != nil {
			return user.User{}, err
		}
		return origUsr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	users, err := repo.users()
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, usr := range users {
		if !containsID(ids, usr.ID) {
			kept = append(kept, usr)
		}
	}
	return repo.save(kept)
}

func isExcluded(usr user.User, excludedUsers []user.User, n int) bool {
	if n <= 0 {
		return false
	}
	idx := sort.Search(n, func(i int) bool { return excludedUsers[i].ID >= usr.ID })
	return idx < n && excludedUsers[idx].ID == usr.ID
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
