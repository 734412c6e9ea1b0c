// internal/membership/domain.go
package membership

import (
	"time"

	"github.com/google/uuid"

	"siperpus/internal/lookup"
)

// Role classifies a member and drives their borrow limit and the
// role-specific identifier they must carry.
type Role string

const (
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
	RoleStaff     Role = "staff"
	RoleLibrarian Role = "librarian"
	RoleGuest     Role = "guest"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleStaff, RoleLibrarian, RoleGuest:
		return true
	}
	return false
}

// Status is the membership lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusExpired   Status = "expired"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusExpired:
		return true
	}
	return false
}

// Member represents a registered library member. Exactly one of the
// role-specific identifiers is set, matching Role (guests carry none).
// Members are unique by email and by that identifier.
type Member struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Role       Role      `db:"role" json:"role"`
	StudentID  *string   `db:"student_id" json:"student_id,omitempty"`
	TeacherID  *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	EmployeeID *string   `db:"employee_id" json:"employee_id,omitempty"`
	Status     Status    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Identifier returns the role-specific identifier, or "" for guests.
func (m *Member) Identifier() string {
	switch {
	case m.StudentID != nil:
		return *m.StudentID
	case m.TeacherID != nil:
		return *m.TeacherID
	case m.EmployeeID != nil:
		return *m.EmployeeID
	}
	return ""
}

// LookupFields exposes the member to the shared free-text resolver.
func (m *Member) LookupFields() lookup.Fields {
	contains := []string{m.Name, m.Email}
	if id := m.Identifier(); id != "" {
		contains = append(contains, id)
	}
	return lookup.Fields{
		Contains: contains,
		Exact:    []string{m.Name, m.Email},
	}
}
