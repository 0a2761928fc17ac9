package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealfinder/internal/model"
)

// MockCatalogService is a mock implementation of the catalog client
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) SearchByTerm(ctx context.Context, term string) (model.SearchResult, error) {
	args := m.Called(ctx, term)
	return args.Get(0).(model.SearchResult), args.Error(1)
}

func (m *MockCatalogService) LookupByID(ctx context.Context, id string) (*model.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecipeDetail), args.Error(1)
}

// MockRecipeLoader is a mock implementation of the initial recipe loader
type MockRecipeLoader struct {
	mock.Mock
}

func (m *MockRecipeLoader) LoadInitialRecipes(ctx context.Context) (model.SearchResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.SearchResult), args.Error(1)
}
