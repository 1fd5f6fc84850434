package postgres

import (
	"context"
	"errors"
	"fmt"

	"rfmInsight/business/artifact"
	"rfmInsight/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArtifactRepository serves the similarity table from product_similarities
// rows and the fitted models as JSON payloads from model_artifacts.
type ArtifactRepository struct {
	DB    *gorm.DB
	names artifact.Names
}

var (
	_ artifact.Loader     = (*ArtifactRepository)(nil)
	_ artifact.BlobSource = (*ArtifactRepository)(nil)
)

func NewArtifactRepository(db *gorm.DB, names artifact.Names) *ArtifactRepository {
	def := artifact.DefaultNames()
	if names.Scaler == "" {
		names.Scaler = def.Scaler
	}
	if names.Cluster == "" {
		names.Cluster = def.Cluster
	}
	return &ArtifactRepository{DB: db, names: names}
}

func (r *ArtifactRepository) LoadSimilarity(ctx context.Context) (*domain.SimilarityMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ProductSimilarity
	if err := r.DB.WithContext(ctx).
		Order("product_code, other_code").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query product_similarities: %w", err)
	}

	return domain.NewSimilarityMatrixFromEntries(toEntries(rows))
}

func (r *ArtifactRepository) LoadScaler(ctx context.Context) (*domain.Scaler, error) {
	data, err := r.Fetch(ctx, r.names.Scaler)
	if err != nil {
		return nil, err
	}
	return artifact.DecodeScaler(data)
}

func (r *ArtifactRepository) LoadClusterModel(ctx context.Context) (*domain.ClusterModel, error) {
	data, err := r.Fetch(ctx, r.names.Cluster)
	if err != nil {
		return nil, err
	}
	return artifact.DecodeClusterModel(data)
}

// Fetch returns the JSON payload stored under name.
func (r *ArtifactRepository) Fetch(ctx context.Context, name string) ([]byte, error) {
	var row domain.ModelArtifact
	err := r.DB.WithContext(ctx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("artifact %s not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query model_artifacts: %w", err)
	}

	return []byte(row.Payload), nil
}

// Migrate creates the artifact tables if they do not exist.
func (r *ArtifactRepository) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(&domain.ProductSimilarity{}, &domain.ModelArtifact{}); err != nil {
		return fmt.Errorf("failed to migrate artifact tables: %w", err)
	}
	return nil
}

// ReplaceSimilarity swaps the whole similarity table in one transaction.
func (r *ArtifactRepository) ReplaceSimilarity(ctx context.Context, m *domain.SimilarityMatrix) error {
	rows := fromMatrix(m)
	if len(rows) == 0 {
		return errors.New("similarity table is empty")
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.ProductSimilarity{}).Error; err != nil {
			return fmt.Errorf("failed to clear product_similarities: %w", err)
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("failed to insert product_similarities: %w", err)
		}
		return nil
	})
}

// UpsertArtifact stores or replaces a model payload.
func (r *ArtifactRepository) UpsertArtifact(ctx context.Context, name string, payload []byte) error {
	row := domain.ModelArtifact{
		Name:    name,
		Payload: payload,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

func fromMatrix(m *domain.SimilarityMatrix) []domain.ProductSimilarity {
	if m == nil {
		return nil
	}

	codes := m.Codes()
	rows := make([]domain.ProductSimilarity, 0, len(codes)*len(codes))
	for _, other := range codes {
		col, _ := m.Column(other)
		for _, cell := range col {
			rows = append(rows, domain.ProductSimilarity{
				ProductCode: cell.ProductCode,
				OtherCode:   other,
				Score:       cell.Score,
			})
		}
	}
	return rows
}

func toEntries(rows []domain.ProductSimilarity) []domain.SimilarityEntry {
	entries := make([]domain.SimilarityEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.SimilarityEntry{
			ProductCode: row.ProductCode,
			OtherCode:   row.OtherCode,
			Score:       row.Score,
		}
	}
	return entries
}
