package team

import "context"

// Service wraps team-member business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new member, active by default.
func (s *Service) Create(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	return s.repo.Create(ctx, Member{
		Name:      req.Name,
		Title:     req.Title,
		OABNumber: req.OABNumber,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		SortOrder: req.SortOrder,
		Active:    true,
	})
}

// Get fetches a member by id.
func (s *Service) Get(ctx context.Context, id int64) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

// ListPublic returns active members in display order.
func (s *Service) ListPublic(ctx context.Context) ([]Member, error) {
	return s.repo.ListActive(ctx)
}

// ListAll returns every member for the management panel.
func (s *Service) ListAll(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

// Update applies a partial edit to a member.
func (s *Service) Update(ctx context.Context, id int64, req UpdateMemberRequest) (*Member, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *existing
	if req.Name != nil {
		next.Name = *req.Name
	}
	if req.Title != nil {
		next.Title = *req.Title
	}
	if req.OABNumber != nil {
		next.OABNumber = req.OABNumber
	}
	if req.Bio != nil {
		next.Bio = req.Bio
	}
	if req.PhotoURL != nil {
		next.PhotoURL = req.PhotoURL
	}
	if req.SortOrder != nil {
		next.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		next.Active = *req.Active
	}
	return s.repo.Update(ctx, next)
}

// Delete removes a member.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
