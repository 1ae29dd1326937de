package models

import "time"

// MaterialForecast holds the planned quantities for one material over the
// current and the two following months, independent of any supplier split.
type MaterialForecast struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Material         string    `gorm:"size:64;not null;uniqueIndex" json:"material"`
	CurrentMonthQty  float64   `gorm:"not null" json:"currentMonthQty"`
	NextMonthQty     float64   `gorm:"not null" json:"nextMonthQty"`
	NextNextMonthQty float64   `gorm:"not null" json:"nextNextMonthQty"`
	Unit             string    `gorm:"size:16;not null" json:"unit"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
