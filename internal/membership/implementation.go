// internal/membership/implementation.go
package membership

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"siperpus/internal/lookup"
)

// service implements the Service interface.
type service struct {
	store       Store
	rateLimiter *rate.Limiter
}

// NewService creates a new member directory service instance.
func NewService(store Store) Service {
	return &service{
		store:       store,
		rateLimiter: rate.NewLimiter(rate.Every(1*time.Minute), 5), // 5 registrations per minute
	}
}

// Register creates a new member after validating the role identifier.
func (s *service) Register(ctx context.Context, in RegisterInput) (*Member, error) {
	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("rate limit exceeded")
	}

	if err := validateRegisterInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := &Member{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Role:      in.Role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch in.Role {
	case RoleStudent:
		member.StudentID = &in.StudentID
	case RoleTeacher:
		member.TeacherID = &in.TeacherID
	case RoleStaff, RoleLibrarian:
		member.EmployeeID = &in.EmployeeID
	}

	if err := s.store.Insert(ctx, member); err != nil {
		return nil, fmt.Errorf("register member: %w", err)
	}
	return member, nil
}

func validateRegisterInput(in RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !in.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	switch in.Role {
	case RoleStudent:
		if in.StudentID == "" {
			return fmt.Errorf("%w: student_id is required for students", ErrValidation)
		}
	case RoleTeacher:
		if in.TeacherID == "" {
			return fmt.Errorf("%w: teacher_id is required for teachers", ErrValidation)
		}
	case RoleStaff, RoleLibrarian:
		if in.EmployeeID == "" {
			return fmt.Errorf("%w: employee_id is required for staff", ErrValidation)
		}
	}
	return nil
}

// Get retrieves a member by their ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	return s.store.Get(ctx, id)
}

// Update applies a profile update to a member.
func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Member, error) {
	member, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		member.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
		}
		member.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	member.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}

// SetStatus moves a member to a new lifecycle status.
func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	member, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	member.Status = status
	member.UpdatedAt = time.Now().UTC()
	return s.store.Update(ctx, member)
}

// Delete removes a member record. Destructive; exposed for parity with
// the admin surface.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// List returns all members ordered by creation time.
func (s *service) List(ctx context.Context) ([]*Member, error) {
	return s.store.List(ctx)
}

// Resolve runs the free-text lookup over the directory. The store narrows
// the candidate set; the shared resolver applies the selection precedence.
func (s *service) Resolve(ctx context.Context, query string) (*ResolveResult, error) {
	q := lookup.Normalize(query)
	if q == "" {
		return &ResolveResult{}, nil
	}

	members, err := s.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}

	r := lookup.Resolve(q, members, func(m *Member) lookup.Fields { return m.LookupFields() })
	res := &ResolveResult{Candidates: r.Candidates}
	if res.Candidates == nil {
		res.Candidates = []*Member{}
	}
	if r.Selected != nil {
		res.Selected = *r.Selected
	}
	return res, nil
}
