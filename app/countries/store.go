package countries

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ayoussef/atlas/internal/apperr"
	"github.com/ayoussef/atlas/models"
)

// localStore implements Store on the embedded gorm database.
//
// mu serializes the selection write path: the selected-count check and
// the commit must not interleave with a concurrent add, or two adds
// could both observe count=4 and breach the cap.
type localStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewStore creates a gorm-backed local country store.
func NewStore(db *gorm.DB) Store {
	return &localStore{db: db}
}

// GetAll returns every cached country.
func (s *localStore) GetAll(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := s.db.WithContext(ctx).Order("name").Find(&countries).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindDatabase, err)
	}
	return countries, nil
}

// SaveAll replaces the catalogue with the given set: rows are upserted
// by alpha-3 code, rows missing from the set are pruned, and the
// snapshot timestamp is bumped. Selected rows are left untouched in
// both directions, so a user's pinned snapshot survives every refresh.
func (s *localStore) SaveAll(ctx context.Context, countries []models.Country) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var selectedCodes []string
		if err := tx.Model(&models.Country{}).
			Where("is_selected = ?", true).
			Pluck("alpha3_code", &selectedCodes).Error; err != nil {
			return err
		}
		selected := make(map[string]bool, len(selectedCodes))
		for _, code := range selectedCodes {
			selected[code] = true
		}

		incoming := make([]string, 0, len(countries))
		for i := range countries {
			c := countries[i]
			incoming = append(incoming, c.Alpha3Code)
			if selected[c.Alpha3Code] {
				continue
			}
			c.IsSelected = false
			c.LastUpdated = time.Now()
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "alpha3_code"}},
				UpdateAll: true,
			}).Create(&c).Error; err != nil {
				return err
			}
		}

		prune := tx.Where("is_selected = ?", false)
		if len(incoming) > 0 {
			prune = prune.Where("alpha3_code NOT IN ?", incoming)
		}
		if err := prune.Delete(&models.Country{}).Error; err != nil {
			return err
		}

		return s.touchSnapshot(tx)
	})
	if err != nil {
		return apperr.Wrap(apperr.KindDatabase, err)
	}
	return nil
}

// Save upserts countries without pruning or bumping the snapshot
// timestamp. Used for partial results such as a single by-code fetch.
// Selected rows keep their snapshot here too.
func (s *localStore) Save(ctx context.Context, countries []models.Country) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range countries {
			c := countries[i]
			var existing models.Country
			err := tx.Where("alpha3_code = ?", c.Alpha3Code).First(&existing).Error
			if err == nil && existing.IsSelected {
				continue
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			c.IsSelected = false
			c.LastUpdated = time.Now()
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "alpha3_code"}},
				UpdateAll: true,
			}).Create(&c).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Wrap(apperr.KindDatabase, err)
	}
	return nil
}

// GetSelected returns the selected countries ordered by name.
func (s *localStore) GetSelected(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := s.db.WithContext(ctx).
		Where("is_selected = ?", true).
		Order("name").
		Find(&countries).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindDatabase, err)
	}
	return countries, nil
}

// AddSelected flags a country as selected, upserting the row if the
// catalogue does not hold it yet. Rejects duplicates and adds beyond
// maxSelected.
func (s *localStore) AddSelected(ctx context.Context, country models.Country, maxSelected int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Country
		err := tx.Where("alpha3_code = ?", country.Alpha3Code).First(&existing).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.KindDatabase, err)
		}

		if found && existing.IsSelected {
			return apperr.New(apperr.KindCountryAlreadyAdded, country.Alpha3Code, models.ErrCountryAlreadyAdded)
		}

		var selectedCount int64
		if err := tx.Model(&models.Country{}).
			Where("is_selected = ?", true).
			Count(&selectedCount).Error; err != nil {
			return apperr.Wrap(apperr.KindDatabase, err)
		}
		if selectedCount >= int64(maxSelected) {
			return apperr.New(apperr.KindMaxCountriesReached, country.Alpha3Code, models.ErrMaxCountriesReached)
		}

		if found {
			if err := tx.Model(&existing).Update("is_selected", true).Error; err != nil {
				return apperr.Wrap(apperr.KindDatabase, err)
			}
			return nil
		}

		country.IsSelected = true
		if err := tx.Create(&country).Error; err != nil {
			return apperr.Wrap(apperr.KindDatabase, err)
		}
		return nil
	})
}

// RemoveSelected clears the selected flag. The row is kept; only the
// flag changes. A missing or already-unselected row is DataNotFound.
func (s *localStore) RemoveSelected(ctx context.Context, alpha3Code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.WithContext(ctx).Model(&models.Country{}).
		Where("alpha3_code = ? AND is_selected = ?", alpha3Code, true).
		Update("is_selected", false)
	if res.Error != nil {
		return apperr.Wrap(apperr.KindDatabase, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindDataNotFound, alpha3Code, models.ErrDataNotFound)
	}
	return nil
}

// LastUpdated returns the timestamp of the last full catalogue save,
// or the zero time when no snapshot has ever landed.
func (s *localStore) LastUpdated(ctx context.Context) (time.Time, error) {
	var meta models.SnapshotMeta
	err := s.db.WithContext(ctx).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, apperr.Wrap(apperr.KindDatabase, err)
	}
	return meta.LastUpdated, nil
}

// Bootstrapped reports whether the first-launch bootstrap already ran.
func (s *localStore) Bootstrapped(ctx context.Context) (bool, error) {
	var meta models.SnapshotMeta
	err := s.db.WithContext(ctx).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Wrap(apperr.KindDatabase, err)
	}
	return meta.Bootstrapped, nil
}

// MarkBootstrapped records that the first-launch bootstrap ran.
func (s *localStore) MarkBootstrapped(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meta models.SnapshotMeta
		err := tx.First(&meta).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.SnapshotMeta{Bootstrapped: true}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&meta).Update("bootstrapped", true).Error
	})
	if err != nil {
		return apperr.Wrap(apperr.KindDatabase, err)
	}
	return nil
}

func (s *localStore) touchSnapshot(tx *gorm.DB) error {
	var meta models.SnapshotMeta
	err := tx.First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.SnapshotMeta{LastUpdated: time.Now()}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&meta).Update("last_updated", time.Now()).Error
}
