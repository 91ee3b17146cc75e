// Package kvrepos implements the domain repositories on top of the document
// store. Every write is a whole-collection read-modify-write guarded by one
// lock: there is exactly one logical writer.
package kvrepos

import (
	"sync"

	"github.com/latinacademy/academia/storage/kvstore"
)

// document keys, one per entity collection
const (
	keyUsers       = "latin_academy_users"
	keyBranches    = "latin_academy_branches"
	keyDepartments = "latin_academy_departments"
	keyLabs        = "latin_academy_labs"
	keyStudents    = "latin_academy_students"
	keyInstructors = "latin_academy_instructors"
	keyCourses     = "latin_academy_courses"
	keyLevels      = "latin_academy_levels"
	keyGroups      = "latin_academy_groups"

	keySessionsPrefix = "latin_academy_sessions_" // + groupID
)

type DB struct {
	mu    sync.RWMutex
	store kvstore.Store
}

func Open(store kvstore.Store) *DB {
	return &DB{store: store}
}
