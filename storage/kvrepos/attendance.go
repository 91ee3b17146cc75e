package kvrepos

import (
	"github.com/latinacademy/academia/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// sessionsKey returns the per-group document key; one document holds the
// group's full session history in chronological order.
func sessionsKey(groupID string) string {
	return keySessionsPrefix + groupID
}

func (repo *attendanceRepository) AppendSession(groupID string, s attendance.Session) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var sessions []attendance.Session
	if err := repo.db.store.Get(sessionsKey(groupID), &sessions); err != nil {
		return err
	}
	sessions = append(sessions, s)
	return repo.db.store.Set(sessionsKey(groupID), sessions)
}

func (repo *attendanceRepository) QuerySessions(groupID string) ([]attendance.Session, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var sessions []attendance.Session
	if err := repo.db.store.Get(sessionsKey(groupID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
