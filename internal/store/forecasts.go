package store

import (
	"context"

	"github.com/diewo77/supplier-demand/internal/models"
)

func (s *Store) ListForecasts(ctx context.Context) ([]models.MaterialForecast, error) {
	var out []models.MaterialForecast
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, classify("list forecasts", EntityForecast, "", err)
	}
	return out, nil
}

func (s *Store) GetForecast(ctx context.Context, id uint) (*models.MaterialForecast, error) {
	var f models.MaterialForecast
	if err := s.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, classify("get forecast", EntityForecast, idKey(id), err)
	}
	return &f, nil
}

func (s *Store) GetForecastByMaterial(ctx context.Context, material string) (*models.MaterialForecast, error) {
	var f models.MaterialForecast
	if err := s.db.WithContext(ctx).Where("material = ?", material).First(&f).Error; err != nil {
		return nil, classify("get forecast by material", EntityForecast, material, err)
	}
	return &f, nil
}

func (s *Store) CreateForecast(ctx context.Context, f *models.MaterialForecast) (uint, error) {
	f.ID = 0
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return 0, classify("create forecast", EntityForecast, "material "+f.Material, err)
	}
	return f.ID, nil
}

func (s *Store) UpdateForecast(ctx context.Context, id uint, in models.MaterialForecast) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.MaterialForecast{}).Where("id = ?", id).Updates(map[string]any{
		"material":            in.Material,
		"current_month_qty":   in.CurrentMonthQty,
		"next_month_qty":      in.NextMonthQty,
		"next_next_month_qty": in.NextNextMonthQty,
		"unit":                in.Unit,
	})
	if res.Error != nil {
		return 0, classify("update forecast", EntityForecast, "material "+in.Material, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, classify("update forecast", EntityForecast, idKey(id), errNotFound)
	}
	return res.RowsAffected, nil
}

func (s *Store) DeleteForecast(ctx context.Context, id uint) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.MaterialForecast{}, id)
	if res.Error != nil {
		return 0, classify("delete forecast", EntityForecast, idKey(id), res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, classify("delete forecast", EntityForecast, idKey(id), errNotFound)
	}
	return res.RowsAffected, nil
}

// ForecastsForMaterials returns the forecasts of the given materials, keyed
// by material. Materials without a forecast are simply absent.
func (s *Store) ForecastsForMaterials(ctx context.Context, materials []string) (map[string]models.MaterialForecast, error) {
	out := make(map[string]models.MaterialForecast, len(materials))
	if len(materials) == 0 {
		return out, nil
	}
	var rows []models.MaterialForecast
	if err := s.db.WithContext(ctx).Where("material IN ?", materials).Find(&rows).Error; err != nil {
		return nil, classify("forecasts for materials", EntityForecast, "", err)
	}
	for _, f := range rows {
		out[f.Material] = f
	}
	return out, nil
}
