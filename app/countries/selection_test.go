package countries

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoussef/atlas/internal/apperr"
	"github.com/ayoussef/atlas/models"
)

func TestSelector_Add(t *testing.T) {
	ctx := context.Background()
	egypt := models.Country{Alpha3Code: "EGY", Alpha2Code: "EG", Name: "Egypt"}

	t.Run("adds below the cap", func(t *testing.T) {
		repo := new(MockRepository)
		sel := NewSelector(repo, 5)

		repo.On("GetSelectedCountries", ctx).Return([]models.Country{}, nil)
		repo.On("AddSelectedCountry", ctx, egypt).Return(nil)

		require.NoError(t, sel.Add(ctx, egypt))
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate", func(t *testing.T) {
		repo := new(MockRepository)
		sel := NewSelector(repo, 5)

		repo.On("GetSelectedCountries", ctx).Return([]models.Country{egypt}, nil)

		err := sel.Add(ctx, egypt)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindCountryAlreadyAdded))
		assert.ErrorIs(t, err, models.ErrCountryAlreadyAdded)
		repo.AssertNotCalled(t, "AddSelectedCountry", ctx, egypt)
	})

	t.Run("rejects at the cap", func(t *testing.T) {
		repo := new(MockRepository)
		sel := NewSelector(repo, 5)

		full := make([]models.Country, 5)
		for i := range full {
			full[i] = models.Country{Alpha3Code: string(rune('A'+i)) + "AA"}
		}
		repo.On("GetSelectedCountries", ctx).Return(full, nil)

		err := sel.Add(ctx, egypt)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindMaxCountriesReached))
		assert.ErrorIs(t, err, models.ErrMaxCountriesReached)
		repo.AssertNotCalled(t, "AddSelectedCountry", ctx, egypt)
	})

	t.Run("concurrent adds cannot breach the cap", func(t *testing.T) {
		// A stateful repository so each serialized Add observes the
		// previous one's commit.
		repo := &selectionStateRepo{}
		sel := NewSelector(repo, 5)

		var wg sync.WaitGroup
		errs := make([]error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c := models.Country{Alpha3Code: string(rune('A'+i)) + "ZZ"}
				errs[i] = sel.Add(ctx, c)
			}(i)
		}
		wg.Wait()

		var ok, capped int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case apperr.IsKind(err, apperr.KindMaxCountriesReached):
				capped++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 5, ok)
		assert.Equal(t, 5, capped)
	})
}

// selectionStateRepo records committed selections in memory.
type selectionStateRepo struct {
	MockRepository

	mu       sync.Mutex
	selected []models.Country
}

func (r *selectionStateRepo) GetSelectedCountries(_ context.Context) ([]models.Country, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Country, len(r.selected))
	copy(out, r.selected)
	return out, nil
}

func (r *selectionStateRepo) AddSelectedCountry(_ context.Context, country models.Country) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = append(r.selected, country)
	return nil
}

func TestSelector_Remove(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	sel := NewSelector(repo, 5)

	repo.On("RemoveSelectedCountry", ctx, "EGY").Return(nil)

	require.NoError(t, sel.Remove(ctx, "EGY"))
	repo.AssertExpectations(t)
}

func TestSelector_Selected(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	sel := NewSelector(repo, 5)

	want := []models.Country{{Alpha3Code: "EGY"}}
	repo.On("GetSelectedCountries", ctx).Return(want, nil)

	got, err := sel.Selected(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
