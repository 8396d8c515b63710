package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
)

// fakeCompanyRepo keeps companies and memberships in memory. addMemberErr
// simulates a failing membership insert.
type fakeCompanyRepo struct {
	companies    map[uuid.UUID]*entity.Company
	members      map[uuid.UUID][]entity.CompanyMembership
	addMemberErr error
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		companies: make(map[uuid.UUID]*entity.Company),
		members:   make(map[uuid.UUID][]entity.CompanyMembership),
	}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) GetUserCompanies(ctx context.Context, userID uuid.UUID, params *pagination.Params) ([]entity.Company, int64, error) {
	return nil, 0, nil
}

func (r *fakeCompanyRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	c, _ := r.GetBySlug(ctx, slug)
	return c != nil, nil
}

func (r *fakeCompanyRepo) AddMember(ctx context.Context, m *entity.CompanyMembership) error {
	if r.addMemberErr != nil {
		return r.addMemberErr
	}
	r.members[m.CompanyID] = append(r.members[m.CompanyID], *m)
	return nil
}

func (r *fakeCompanyRepo) RemoveMember(ctx context.Context, companyID, userID uuid.UUID) error {
	kept := r.members[companyID][:0]
	for _, m := range r.members[companyID] {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	r.members[companyID] = kept
	return nil
}

func (r *fakeCompanyRepo) GetMembers(ctx context.Context, companyID uuid.UUID) ([]entity.CompanyMembership, error) {
	return r.members[companyID], nil
}

func (r *fakeCompanyRepo) IsMember(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	for _, m := range r.members[companyID] {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCompanyRepo) GetMembership(ctx context.Context, companyID, userID uuid.UUID) (*entity.CompanyMembership, error) {
	for i := range r.members[companyID] {
		if r.members[companyID][i].UserID == userID {
			return &r.members[companyID][i], nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) UpdateMemberRole(ctx context.Context, companyID, userID uuid.UUID, role string) error {
	for i := range r.members[companyID] {
		if r.members[companyID][i].UserID == userID {
			r.members[companyID][i].Role = role
		}
	}
	return nil
}

func TestCreateCompanyRecordsOwnerMembership(t *testing.T) {
	repo := newFakeCompanyRepo()
	catRepo := newFakeCategoryRepo()
	svc := NewCompanyService(repo, catRepo)

	owner := uuid.New()
	company, err := svc.CreateCompany(context.Background(), &CreateCompanyInput{
		Name:    "Acme Consulting",
		OwnerID: owner,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	isMember, err := repo.IsMember(context.Background(), company.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isMember {
		t.Fatal("the owner must be a member of the new company")
	}
	if len(catRepo.byID) == 0 {
		t.Fatal("a new company must start with seeded categories")
	}
}

func TestCreateCompanyRollsBackWhenMembershipFails(t *testing.T) {
	repo := newFakeCompanyRepo()
	repo.addMemberErr = errors.New("membership insert failed")
	svc := NewCompanyService(repo, newFakeCategoryRepo())

	_, err := svc.CreateCompany(context.Background(), &CreateCompanyInput{
		Name:    "Acme Consulting",
		OwnerID: uuid.New(),
	})
	if err == nil {
		t.Fatal("a failed owner membership must fail company creation")
	}
	if len(repo.companies) != 0 {
		t.Fatal("the company row must not survive a failed owner membership")
	}
}
