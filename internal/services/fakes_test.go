package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vladimiradmaev/recipebox/internal/domain"
)

type memoryIngredients struct {
	mu      sync.Mutex
	bySlug  map[string]*domain.Ingredient
	nextID  uint
	created int
}

func newMemoryIngredients() *memoryIngredients {
	return &memoryIngredients{bySlug: make(map[string]*domain.Ingredient)}
}

func (m *memoryIngredients) FindBySlugOrCreate(_ context.Context, slug, name string) (*domain.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ing, ok := m.bySlug[slug]; ok {
		cp := *ing
		return &cp, nil
	}
	m.nextID++
	m.created++
	ing := &domain.Ingredient{Name: name, Slug: slug}
	ing.ID = m.nextID
	m.bySlug[slug] = ing
	cp := *ing
	return &cp, nil
}

type memoryRecipes struct {
	mu      sync.Mutex
	recipes map[uint]domain.Recipe
	links   map[uint][]domain.RecipeIngredient
	nextID  uint
	saves   int
	failOn  string
}

func newMemoryRecipes() *memoryRecipes {
	return &memoryRecipes{
		recipes: make(map[uint]domain.Recipe),
		links:   make(map[uint][]domain.RecipeIngredient),
	}
}

func sameURL(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *memoryRecipes) FindByTitleAndURLOrNew(_ context.Context, title string, url *string) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recipes {
		if r.Title == title && sameURL(r.URL, url) {
			cp := r
			if r.Nutrition != nil {
				n := *r.Nutrition
				cp.Nutrition = &n
			}
			return &cp, nil
		}
	}
	return &domain.Recipe{Title: title, URL: url}, nil
}

func (m *memoryRecipes) SaveImported(_ context.Context, recipe *domain.Recipe, ingredients []domain.RecipeIngredient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && recipe.Title == m.failOn {
		return fmt.Errorf("write failed")
	}
	if recipe.IsNew() {
		m.nextID++
		recipe.ID = m.nextID
	}
	if recipe.Nutrition != nil {
		recipe.Nutrition.RecipeID = recipe.ID
	}
	links := make([]domain.RecipeIngredient, len(ingredients))
	for i, link := range ingredients {
		link.RecipeID = recipe.ID
		links[i] = link
	}
	recipe.Ingredients = links
	m.recipes[recipe.ID] = *recipe
	m.links[recipe.ID] = links
	m.saves++
	return nil
}

func (m *memoryRecipes) GetByID(_ context.Context, id uint) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memoryRecipes) list(keep func(domain.Recipe) bool) []domain.Recipe {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Recipe
	for _, r := range m.recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryRecipes) ListByUser(_ context.Context, userID uint) ([]domain.Recipe, error) {
	return m.list(func(r domain.Recipe) bool { return r.UserID == userID }), nil
}

func (m *memoryRecipes) ListAll(_ context.Context) ([]domain.Recipe, error) {
	return m.list(func(domain.Recipe) bool { return true }), nil
}

func (m *memoryRecipes) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recipes, id)
	delete(m.links, id)
	return nil
}

// add stores a recipe directly, bypassing the import pipeline
func (m *memoryRecipes) add(r domain.Recipe) domain.Recipe {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.recipes[r.ID] = r
	return r
}

type fakeFetcher struct {
	pages map[string]*domain.Page
	errs  map[string]error
	calls []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: make(map[string]*domain.Page),
		errs:  make(map[string]error),
	}
}

func (f *fakeFetcher) serve(url, body string) {
	f.pages[url] = &domain.Page{URL: url, StatusCode: 200, ContentType: "text/html; charset=utf-8", Body: []byte(body)}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*domain.Page, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if p, ok := f.pages[url]; ok {
		return p, nil
	}
	return &domain.Page{URL: url, StatusCode: 404}, nil
}
