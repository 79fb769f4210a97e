package dto

import "time"

// AbcRecomputeRequest query de POST /api/analytics/abc/recompute.
type AbcRecomputeRequest struct {
	LookbackDays int `query:"lookback_days" validate:"omitempty,min=1,max=3650"`
}

// AbcRecomputeResponse conteo de productos por clase tras la reclasificación.
type AbcRecomputeResponse struct {
	StoreID      string    `json:"store_id"`
	LookbackDays int       `json:"lookback_days"`
	ClassA       int64     `json:"class_a"`
	ClassB       int64     `json:"class_b"`
	ClassC       int64     `json:"class_c"`
	RecomputedAt time.Time `json:"recomputed_at"`
}
