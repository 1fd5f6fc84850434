package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.product_similarities (
//     product_code TEXT NOT NULL,
//     other_code   TEXT NOT NULL,
//     score        DOUBLE PRECISION NOT NULL,
//     PRIMARY KEY (product_code, other_code)
// );

type ProductSimilarity struct {
	ProductCode string  `gorm:"column:product_code;primaryKey"`
	OtherCode   string  `gorm:"column:other_code;primaryKey"`
	Score       float64 `gorm:"column:score;not null"`
}

func (ProductSimilarity) TableName() string {
	return "product_similarities"
}

// CREATE TABLE public.model_artifacts (
//     name       TEXT PRIMARY KEY,
//     payload    JSONB NOT NULL,
//     updated_at TIMESTAMPTZ DEFAULT NOW()
// );

type ModelArtifact struct {
	Name      string         `gorm:"column:name;primaryKey"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (ModelArtifact) TableName() string {
	return "model_artifacts"
}
