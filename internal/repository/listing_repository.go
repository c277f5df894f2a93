package repository

import (
	"context"

	"github.com/okezie/marketlive-backend/internal/model"
	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	// Update writes the record via a keyed UPDATE and reports how many rows
	// were affected; zero means the id no longer exists. It never inserts.
	Update(ctx context.Context, listing *model.Listing) (int64, error)
	// Delete removes the listing with the given id and reports how many rows
	// were affected (zero when the id was already absent).
	Delete(ctx context.Context, id string) (int64, error)
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	ListAll(ctx context.Context) ([]model.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Listing, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// Update deliberately avoids gorm's Save, which falls back to an insert when
// the keyed UPDATE matches nothing and would resurrect a concurrently
// deleted listing. UpdatedAtMS changes on every call, so a matched row is
// always counted as affected.
func (r *listingRepository) Update(ctx context.Context, listing *model.Listing) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ?", listing.ID).
		Select("*").
		Updates(listing)
	return tx.RowsAffected, tx.Error
}

func (r *listingRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Listing{})
	return tx.RowsAffected, tx.Error
}

func (r *listingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) ListAll(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	if err := r.db.WithContext(ctx).
		Order("updated_at_ms desc, id asc").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Listing, error) {
	var listings []model.Listing
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("updated_at_ms desc, id asc").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}
