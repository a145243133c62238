package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/repository"
	"github.com/sangkips/gusto-pos/pkg/apperror"
	"github.com/sirupsen/logrus"
)

const (
	// VenueConfigSnapshotKey holds the current venue configuration schema
	VenueConfigSnapshotKey = "venue_config_v3"
	// LegacyVenueConfigSnapshotKey holds the previous schema, migrated on first load
	LegacyVenueConfigSnapshotKey = "venue_config_v2"
)

var (
	taxIDPattern     = regexp.MustCompile(`^\d{2}-\d{8}-\d{1}$`)
	posNumberPattern = regexp.MustCompile(`^\d{5}$`)
)

// legacyVenueConfig is the previous schema, which used business_* and footer_message names
type legacyVenueConfig struct {
	entity.VenueConfig
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
	FooterMessage   string `json:"footer_message"`
}

// VenueConfigService loads, migrates and saves the venue configuration
type VenueConfigService struct {
	mu           sync.RWMutex
	snapshotRepo repository.SnapshotRepository
	cached       *entity.VenueConfig
}

// NewVenueConfigService creates a new venue configuration service
func NewVenueConfigService(snapshotRepo repository.SnapshotRepository) *VenueConfigService {
	return &VenueConfigService{snapshotRepo: snapshotRepo}
}

// GetConfig returns the venue configuration, loading and migrating it on first use
func (s *VenueConfigService) GetConfig(ctx context.Context) (*entity.VenueConfig, error) {
	s.mu.RLock()
	if s.cached != nil {
		cfg := *s.cached
		s.mu.RUnlock()
		return &cfg, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil {
		cfg, err := s.load(ctx)
		if err != nil {
			// not cached, the next call retries the read
			logrus.WithError(err).WithField("key", VenueConfigSnapshotKey).Error("Failed to read venue configuration, using defaults")
			defaults := entity.DefaultVenueConfig()
			return &defaults, nil
		}
		s.cached = cfg
	}
	cfg := *s.cached
	return &cfg, nil
}

func (s *VenueConfigService) load(ctx context.Context) (*entity.VenueConfig, error) {
	snapshot, err := s.snapshotRepo.Get(ctx, VenueConfigSnapshotKey)
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		cfg := entity.DefaultVenueConfig()
		if err := json.Unmarshal([]byte(snapshot.Payload), &cfg); err != nil {
			logrus.WithError(err).WithField("key", VenueConfigSnapshotKey).Warn("Stored venue configuration is unreadable, using defaults")
			defaults := entity.DefaultVenueConfig()
			return &defaults, nil
		}
		return &cfg, nil
	}

	legacy, err := s.snapshotRepo.Get(ctx, LegacyVenueConfigSnapshotKey)
	if err != nil {
		return nil, err
	}
	if legacy == nil {
		defaults := entity.DefaultVenueConfig()
		return &defaults, nil
	}

	cfg, err := migrateVenueConfig(legacy.Payload)
	if err != nil {
		logrus.WithError(err).WithField("key", LegacyVenueConfigSnapshotKey).Warn("Failed to migrate venue configuration, using defaults")
		defaults := entity.DefaultVenueConfig()
		return &defaults, nil
	}

	s.store(ctx, cfg)
	if err := s.snapshotRepo.Delete(ctx, LegacyVenueConfigSnapshotKey); err != nil {
		logrus.WithError(err).WithField("key", LegacyVenueConfigSnapshotKey).Error("Failed to remove legacy venue configuration")
	}
	logrus.Info("Venue configuration migrated to the current schema")
	return cfg, nil
}

// migrateVenueConfig maps renamed legacy fields onto the current schema when the new field is absent
func migrateVenueConfig(payload string) (*entity.VenueConfig, error) {
	var raw legacyVenueConfig
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, err
	}

	cfg := entity.DefaultVenueConfig()
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		return nil, err
	}
	if raw.RestaurantName == "" && raw.BusinessName != "" {
		cfg.RestaurantName = raw.BusinessName
	}
	if raw.Address == "" && raw.BusinessAddress != "" {
		cfg.Address = raw.BusinessAddress
	}
	if raw.ThankYouMessage == "" && raw.FooterMessage != "" {
		cfg.ThankYouMessage = raw.FooterMessage
	}
	return &cfg, nil
}

// store persists cfg. Failures are logged and the in-memory value is kept.
func (s *VenueConfigService) store(ctx context.Context, cfg *entity.VenueConfig) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode venue configuration")
		return
	}
	if err := s.snapshotRepo.Put(ctx, VenueConfigSnapshotKey, string(payload)); err != nil {
		logrus.WithError(err).WithField("key", VenueConfigSnapshotKey).Error("Failed to persist venue configuration")
	}
}

// SaveConfig validates and persists a new venue configuration
func (s *VenueConfigService) SaveConfig(ctx context.Context, cfg *entity.VenueConfig) (*entity.VenueConfig, error) {
	normalized := *cfg
	normalized.RestaurantName = strings.TrimSpace(normalized.RestaurantName)
	normalized.TaxID = strings.TrimSpace(normalized.TaxID)
	normalized.PosNumber = strings.TrimSpace(normalized.PosNumber)
	normalized.InvoiceType = strings.ToUpper(strings.TrimSpace(normalized.InvoiceType))
	normalized.Website = strings.TrimSpace(normalized.Website)

	if fieldErrors := ValidateVenueConfig(&normalized); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store(ctx, &normalized)
	s.cached = &normalized

	saved := normalized
	return &saved, nil
}

// ValidateVenueConfig checks the fiscal identifiers printed on tickets
func ValidateVenueConfig(cfg *entity.VenueConfig) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	if cfg.RestaurantName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "restaurant_name", Message: "Restaurant name is required"})
	}
	if cfg.TaxID != "" && !taxIDPattern.MatchString(cfg.TaxID) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tax_id", Message: "Tax ID must look like XX-XXXXXXXX-X"})
	}
	if cfg.PosNumber != "" && !posNumberPattern.MatchString(cfg.PosNumber) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "pos_number", Message: "POS number must have 5 digits"})
	}
	switch strings.ToUpper(cfg.InvoiceType) {
	case "", "A", "B", "C":
	default:
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "invoice_type", Message: "Invoice type must be A, B or C"})
	}
	return fieldErrors
}
