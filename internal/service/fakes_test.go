package service_test

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"collabhub/internal/model"
)

// In-memory store fakes standing in for the mongo adapters. They mimic the
// adapter contract: FindByID returns (nil, nil) when absent, updates report
// matched counts, AppendComment reports the modified count.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role model.Role) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == role {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["email"].(string); ok {
		u.Email = v
	}
	if v, ok := fields["role"].(model.Role); ok {
		// Mirror the partial unique index: at most one super_admin.
		if v == model.RoleSuperAdmin {
			for other, existing := range r.users {
				if other != id && existing.Role == model.RoleSuperAdmin {
					return 0, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
				}
			}
		}
		u.Role = v
	}
	r.users[id] = u
	return 1, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

func (r *fakeUserRepo) EnsureIndexes(_ context.Context) error { return nil }

func (r *fakeUserRepo) countByRole(role model.Role) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[primitive.ObjectID]model.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[primitive.ObjectID]model.Company)}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *model.Company) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if company.ID.IsZero() {
		company.ID = primitive.NewObjectID()
	}
	r.companies[company.ID] = *company
	return company, nil
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return 0, nil
	}
	delete(r.companies, id)
	return 1, nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[primitive.ObjectID]model.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[primitive.ObjectID]model.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	if project.Comments == nil {
		project.Comments = []model.Comment{}
	}
	r.projects[project.ID] = *project
	return project, nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; ok {
		copied := p
		copied.Comments = append([]model.Comment(nil), p.Comments...)
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeProjectRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["title"].(string); ok {
		p.Title = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	r.projects[id] = p
	return 1, nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return 0, nil
	}
	delete(r.projects, id)
	return 1, nil
}

func (r *fakeProjectRepo) AppendComment(_ context.Context, id primitive.ObjectID, comment model.Comment) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return 0, nil
	}
	p.Comments = append(p.Comments, comment)
	r.projects[id] = p
	return 1, nil
}
