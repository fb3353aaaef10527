package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nurpe/aifa-contracts/internal/auth"
	"github.com/nurpe/aifa-contracts/internal/model"
	"github.com/nurpe/aifa-contracts/internal/session"
)

type fakeBudgetStore struct {
	items       []model.BudgetItem
	listErr     error
	createErr   error
	updateErr   error
	deleteErr   error
	listCalls   int
	createCalls []model.BudgetItem
	updateCalls []model.BudgetItem
	deleteCalls []int64
}

func (f *fakeBudgetStore) List(context.Context) ([]model.BudgetItem, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.BudgetItem(nil), f.items...), nil
}

func (f *fakeBudgetStore) Create(_ context.Context, item model.BudgetItem) (*model.BudgetItem, error) {
	f.createCalls = append(f.createCalls, item)
	if f.createErr != nil {
		return nil, f.createErr
	}
	item.ID = int64(len(f.items) + 100)
	f.items = append([]model.BudgetItem{item}, f.items...)
	return &item, nil
}

func (f *fakeBudgetStore) Update(_ context.Context, item model.BudgetItem) error {
	f.updateCalls = append(f.updateCalls, item)
	return f.updateErr
}

func (f *fakeBudgetStore) Delete(_ context.Context, id int64) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

type fakeContractStore struct {
	contracts []model.Contract
	err       error
}

func (f *fakeContractStore) List(context.Context) ([]model.Contract, error) {
	return f.contracts, f.err
}

type fakeSpaceStore struct {
	spaces []model.CommercialSpace
	err    error
}

func (f *fakeSpaceStore) List(context.Context) ([]model.CommercialSpace, error) {
	return f.spaces, f.err
}

type fakeProvider struct {
	user        *model.User
	session     *auth.Session
	err         error
	getUserCall int
	signOuts    []string
}

func (f *fakeProvider) SignUp(_ context.Context, email, _, name string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{ID: "new", Email: email, Name: name, Role: model.UserRoleViewer}, nil
}

func (f *fakeProvider) SignIn(context.Context, string, string) (*auth.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeProvider) SignOut(_ context.Context, token string) error {
	f.signOuts = append(f.signOuts, token)
	return f.err
}

func (f *fakeProvider) GetUser(context.Context, string) (*model.User, error) {
	f.getUserCall++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeParser struct {
	principal model.Principal
	err       error
}

func (f fakeParser) Parse(token string) (model.Principal, error) {
	if f.err != nil {
		return model.Principal{}, f.err
	}
	p := f.principal
	p.Token = token
	return p, nil
}

type memoryCache struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemoryCache() *memoryCache {
	return &memoryCache{users: map[string]model.User{}}
}

func (c *memoryCache) Get(_ context.Context, id string) (*model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if u, ok := c.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (c *memoryCache) Set(_ context.Context, u model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[u.ID] = u
	return nil
}

func (c *memoryCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.users, id)
	return nil
}

type recordingNotifier struct {
	changes []session.Change
}

func (n *recordingNotifier) Publish(change session.Change) {
	n.changes = append(n.changes, change)
}

type fakeGenerator struct {
	answer   string
	err      error
	calls    int
	contexts []string
}

func (g *fakeGenerator) Generate(_ context.Context, contextData, _ string) (string, error) {
	g.calls++
	g.contexts = append(g.contexts, contextData)
	return g.answer, g.err
}

type fakeExcel struct{ items int }

func (f *fakeExcel) Generate(items []model.BudgetItem, _ model.BudgetSummary, _ time.Time) ([]byte, error) {
	f.items = len(items)
	return []byte("xlsx"), nil
}

type fakePDF struct{}

func (fakePDF) Generate(model.BudgetSummary, time.Time) ([]byte, error) {
	return []byte("%PDF"), nil
}

var errStore = errors.New("connection refused")

func amount(v float64) *float64 { return &v }

var (
	admin  = model.Principal{UserID: "u-1", Role: model.UserRoleAdmin, Token: "t"}
	viewer = model.Principal{UserID: "u-2", Role: model.UserRoleViewer, Token: "t"}
)
