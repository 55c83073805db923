package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "ledgersync/internal/errors"
	"ledgersync/internal/models"
	"ledgersync/internal/pagination"
)

// aliasService handles merchant-alias business logic.
type aliasService struct {
	db *gorm.DB
}

// NewAliasService creates a new AliasServicer.
func NewAliasService(db *gorm.DB) AliasServicer {
	return &aliasService{db: db}
}

// CreateAlias creates a new raw-merchant to standard-merchant mapping.
func (s *aliasService) CreateAlias(rawMerchant, stdMerchant string, source, notes *string) (*models.MerchantAlias, error) {
	if rawMerchant == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "raw merchant is required")
	}
	if stdMerchant == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "std merchant is required")
	}

	normalized := models.NormalizeMerchant(rawMerchant)
	var existing models.MerchantAlias
	err := s.db.Where("raw_normalized = ?", normalized).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateAlias
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	alias := &models.MerchantAlias{
		RawMerchant: rawMerchant,
		StdMerchant: stdMerchant,
		Source:      source,
		Notes:       notes,
	}
	if err := s.db.Create(alias).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return alias, nil
}

// ListAliases retrieves a paginated list of aliases.
func (s *aliasService) ListAliases(page pagination.PageRequest) (*pagination.PageResponse[models.MerchantAlias], error) {
	page.Defaults()

	base := s.db.Model(&models.MerchantAlias{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var aliases []models.MerchantAlias
	if err := base.Scopes(pagination.Paginate(page)).
		Order("raw_normalized ASC").
		Find(&aliases).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(aliases, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Standardize maps a raw merchant string through the alias table, returning
// the standardized name, or the input unchanged when no alias matches.
func (s *aliasService) Standardize(tx *gorm.DB, rawMerchant string) (string, error) {
	normalized := models.NormalizeMerchant(rawMerchant)
	if normalized == "" {
		return rawMerchant, nil
	}

	var alias models.MerchantAlias
	err := tx.Where("raw_normalized = ?", normalized).First(&alias).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rawMerchant, nil
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return alias.StdMerchant, nil
}
