package kvrepos

import (
	"github.com/latinacademy/academia/core/group"
)

type groupRepository struct {
	db *DB
}

var _ group.Repository = (*groupRepository)(nil) // interface compliance check

func NewGroupRepository(db *DB) group.Repository {
	return &groupRepository{db: db}
}

func (repo *groupRepository) groups() ([]group.Group, error) {
	var groups []group.Group
	if err := repo.db.store.Get(keyGroups, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (repo *groupRepository) CreateGroup(g group.Group) (group.Group, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	groups, err := repo.groups()
	if err != nil {
		return group.Group{}, err
	}
	groups = append(groups, g)
	if err = repo.db.store.Set(keyGroups, groups); err != nil {
		return group.Group{}, err
	}
	return g, nil
}

func (repo *groupRepository) QueryAllGroups() ([]group.Group, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.groups()
}

func (repo *groupRepository) GetGroupByID(id string) (group.Group, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	groups, err := repo.groups()
	if err != nil {
		return group.Group{}, err
	}
	for _, g := range groups {
		if g.ID == id {
			return g, nil
		}
	}
	return group.Group{}, group.ErrNotFound
}

func (repo *groupRepository) UpdateGroup(g group.Group) (group.Group, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	groups, err := repo.groups()
	if err != nil {
		return group.Group{}, err
	}
	for i := range groups {
		if groups[i].ID != g.ID {
			continue
		}
		groups[i] = g
		if err = repo.db.store.Set(keyGroups, groups); err != nil {
			return group.Group{}, err
		}
		return g, nil
	}
	return group.Group{}, group.ErrNotFound
}

func (repo *groupRepository) DeleteGroup(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	groups, err := repo.groups()
	if err != nil {
		return err
	}
	kept := groups[:0]
	for _, g := range groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	return repo.db.store.Set(keyGroups, kept)
}
