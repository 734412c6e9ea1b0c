// internal/membership/service.go
package membership

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrValidation marks input that was rejected before any side effect.
var ErrValidation = errors.New("invalid member input")

// RegisterInput carries the fields required to register a member.
type RegisterInput struct {
	Name       string
	Email      string
	Role       Role
	StudentID  string
	TeacherID  string
	EmployeeID string
}

// UpdateInput carries a profile update. Nil fields are left unchanged.
type UpdateInput struct {
	Name  *string
	Email *string
}

// ResolveResult is the outcome of a free-text member lookup. Selected is
// nil when the query was ambiguous or matched nothing; Candidates carries
// every substring match for manual disambiguation.
type ResolveResult struct {
	Selected   *Member   `json:"selected,omitempty"`
	Candidates []*Member `json:"candidates"`
}

// Service defines the interface for the member directory.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*Member, error)
	Get(ctx context.Context, id uuid.UUID) (*Member, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Member, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Member, error)
	Resolve(ctx context.Context, query string) (*ResolveResult, error)
}

// Store is the backing record store for members.
type Store interface {
	Insert(ctx context.Context, m *Member) error
	Get(ctx context.Context, id uuid.UUID) (*Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Member, error)
	Search(ctx context.Context, query string) ([]*Member, error)
}
