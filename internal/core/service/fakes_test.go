package service_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"doneapp/internal/core/domain"
	"doneapp/internal/core/port"
	"doneapp/internal/core/session"
)

// fakeTodoRepo is an in-memory todo store with injectable failures.
type fakeTodoRepo struct {
	mu     sync.Mutex
	todos  map[string]domain.Todo
	nextID int

	failCreateAll error
	failDeleteAll error
	failGetAll    error
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[string]domain.Todo{}}
}

func (r *fakeTodoRepo) GetAll(ctx context.Context, userID int) ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failGetAll != nil {
		return nil, r.failGetAll
	}

	var todos []domain.Todo
	for _, todo := range r.todos {
		if todo.UserID == userID {
			todos = append(todos, todo)
		}
	}

	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })

	return todos, nil
}

func (r *fakeTodoRepo) GetByUUID(ctx context.Context, uid string) (domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, found := r.todos[uid]

	if !found {
		return domain.Todo{}, fmt.Errorf("sql: no rows in result set")
	}

	return todo, nil
}

func (r *fakeTodoRepo) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	todo.ID = r.nextID
	r.todos[todo.UUID.String()] = todo

	return todo, nil
}

func (r *fakeTodoRepo) CreateAll(ctx context.Context, todos []domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreateAll != nil {
		return r.failCreateAll
	}

	for _, todo := range todos {
		r.nextID++
		todo.ID = r.nextID
		r.todos[todo.UUID.String()] = todo
	}

	return nil
}

func (r *fakeTodoRepo) UpdateByUUID(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, found := r.todos[todo.UUID.String()]

	if !found {
		return domain.Todo{}, fmt.Errorf("no todo updated with uuid %s", todo.UUID)
	}

	todo.ID = current.ID
	r.todos[todo.UUID.String()] = todo

	return todo, nil
}

func (r *fakeTodoRepo) DeleteByUUID(ctx context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.todos[uid]; !found {
		return fmt.Errorf("todo with uuid %s not found", uid)
	}

	delete(r.todos, uid)

	return nil
}

func (r *fakeTodoRepo) DeleteAllForUser(ctx context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failDeleteAll != nil {
		return r.failDeleteAll
	}

	for uid, todo := range r.todos {
		if todo.UserID == userID {
			delete(r.todos, uid)
		}
	}

	return nil
}

func (r *fakeTodoRepo) count(userID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, todo := range r.todos {
		if todo.UserID == userID {
			n++
		}
	}

	return n
}

// fakeAlertCenter records pending requests keyed by ID.
type fakeAlertCenter struct {
	mu      sync.Mutex
	pending map[string]port.AlertRequest
	addErr  error
}

func newFakeAlertCenter() *fakeAlertCenter {
	return &fakeAlertCenter{pending: map[string]port.AlertRequest{}}
}

func (c *fakeAlertCenter) Add(ctx context.Context, req port.AlertRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.addErr != nil {
		return c.addErr
	}

	c.pending[req.ID] = req

	return nil
}

func (c *fakeAlertCenter) Remove(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range ids {
		delete(c.pending, id)
	}
}

func (c *fakeAlertCenter) Pending() []port.AlertRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	requests := make([]port.AlertRequest, 0, len(c.pending))
	for _, req := range c.pending {
		requests = append(requests, req)
	}

	return requests
}

func (c *fakeAlertCenter) Authorized() bool { return true }

func (c *fakeAlertCenter) get(id string) (port.AlertRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req, found := c.pending[id]

	return req, found
}

// fakeProvider answers sign-in and sign-up from a canned table.
type fakeProvider struct {
	mu         sync.Mutex
	accounts   map[string]string
	nextUserID int
	signOutErr error
	signedOut  int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: map[string]string{}}
}

func (p *fakeProvider) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored, found := p.accounts[email]

	if !found || stored != password {
		return nil, fmt.Errorf("invalid email or password")
	}

	return p.sessionFor(email), nil
}

func (p *fakeProvider) SignUp(ctx context.Context, email, password string) (*session.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, found := p.accounts[email]; found {
		return nil, fmt.Errorf("email already taken")
	}

	p.accounts[email] = password

	return p.sessionFor(email), nil
}

func (p *fakeProvider) SignOut(ctx context.Context, sess *session.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.signOutErr != nil {
		return p.signOutErr
	}

	p.signedOut++

	return nil
}

func (p *fakeProvider) Resolve(ctx context.Context, token string) (*session.Session, error) {
	return nil, fmt.Errorf("not implemented")
}

func (p *fakeProvider) sessionFor(email string) *session.Session {
	p.nextUserID++

	return &session.Session{
		UserID: p.nextUserID,
		UID:    uuid.New().String(),
		Email:  email,
		Token:  "token-" + email,
	}
}
