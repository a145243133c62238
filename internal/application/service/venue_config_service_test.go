package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/repository"
	infraRepo "github.com/sangkips/gusto-pos/internal/infrastructure/repository"
	"github.com/sangkips/gusto-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueConfig_DefaultsWhenNothingStored(t *testing.T) {
	s := NewVenueConfigService(infraRepo.NewMemorySnapshotRepository())

	cfg, err := s.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultVenueConfig(), *cfg)
	assert.Equal(t, "Mi Restaurante", cfg.RestaurantName)
	assert.Equal(t, "14px", cfg.ThermalFontSize)
}

func TestVenueConfig_MergesStoredOverDefaults(t *testing.T) {
	ctx := context.Background()
	repo := infraRepo.NewMemorySnapshotRepository()
	require.NoError(t, repo.Put(ctx, VenueConfigSnapshotKey, `{"restaurant_name":"La Esquina","show_qr_code":false}`))

	cfg, err := NewVenueConfigService(repo).GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "La Esquina", cfg.RestaurantName)
	assert.False(t, cfg.ShowQRCode)
	assert.True(t, cfg.ShowAddress, "missing keys keep their defaults")
}

func TestVenueConfig_MigratesLegacySchema(t *testing.T) {
	tests := []struct {
		name         string
		legacy       string
		wantName     string
		wantAddress  string
		wantThankYou string
	}{
		{
			name:         "renamed fields map onto the new names",
			legacy:       `{"business_name":"Bodegón","business_address":"Calle 1","footer_message":"Vuelva pronto"}`,
			wantName:     "Bodegón",
			wantAddress:  "Calle 1",
			wantThankYou: "Vuelva pronto",
		},
		{
			name:         "new fields win when both are present",
			legacy:       `{"business_name":"Old","restaurant_name":"New","footer_message":"Old bye","thank_you_message":"New bye"}`,
			wantName:     "New",
			wantAddress:  "Dirección del Restaurante",
			wantThankYou: "New bye",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := infraRepo.NewMemorySnapshotRepository()
			require.NoError(t, repo.Put(ctx, LegacyVenueConfigSnapshotKey, tt.legacy))

			cfg, err := NewVenueConfigService(repo).GetConfig(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, cfg.RestaurantName)
			assert.Equal(t, tt.wantAddress, cfg.Address)
			assert.Equal(t, tt.wantThankYou, cfg.ThankYouMessage)

			legacy, err := repo.Get(ctx, LegacyVenueConfigSnapshotKey)
			require.NoError(t, err)
			assert.Nil(t, legacy, "legacy key is removed after migration")

			current, err := repo.Get(ctx, VenueConfigSnapshotKey)
			require.NoError(t, err)
			require.NotNil(t, current)
			var stored entity.VenueConfig
			require.NoError(t, json.Unmarshal([]byte(current.Payload), &stored))
			assert.Equal(t, tt.wantName, stored.RestaurantName)
		})
	}
}

func TestVenueConfig_SaveConfig(t *testing.T) {
	ctx := context.Background()
	repo := infraRepo.NewMemorySnapshotRepository()
	s := NewVenueConfigService(repo)

	cfg := entity.DefaultVenueConfig()
	cfg.RestaurantName = "  El Buen Sabor "
	cfg.TaxID = "20-12345678-9"
	cfg.InvoiceType = "a"
	cfg.Website = "www.elbuensabor.com"

	saved, err := s.SaveConfig(ctx, &cfg)
	require.NoError(t, err)
	assert.Equal(t, "El Buen Sabor", saved.RestaurantName)
	assert.Equal(t, "A", saved.InvoiceType)

	reloaded, err := NewVenueConfigService(repo).GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, *saved, *reloaded)
}

func TestVenueConfig_SaveConfigRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := NewVenueConfigService(infraRepo.NewMemorySnapshotRepository())

	cfg := entity.DefaultVenueConfig()
	cfg.RestaurantName = " "
	cfg.TaxID = "20123456789"
	cfg.PosNumber = "12"
	cfg.InvoiceType = "Z"

	_, err := s.SaveConfig(ctx, &cfg)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)

	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"restaurant_name", "tax_id", "pos_number", "invoice_type"}, fields)

	current, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mi Restaurante", current.RestaurantName, "rejected saves change nothing")
}

// unreadableSnapshotRepo fails every read while down is set
type unreadableSnapshotRepo struct {
	repository.SnapshotRepository
	down bool
}

func (r *unreadableSnapshotRepo) Get(ctx context.Context, key string) (*entity.Snapshot, error) {
	if r.down {
		return nil, errors.New("storage unavailable")
	}
	return r.SnapshotRepository.Get(ctx, key)
}

func TestVenueConfig_ReadFailureFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &unreadableSnapshotRepo{SnapshotRepository: infraRepo.NewMemorySnapshotRepository(), down: true}
	require.NoError(t, repo.Put(ctx, VenueConfigSnapshotKey, `{"restaurant_name":"La Esquina"}`))
	s := NewVenueConfigService(repo)

	cfg, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultVenueConfig(), *cfg)

	repo.down = false
	cfg, err = s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "La Esquina", cfg.RestaurantName, "defaults are not cached, the read is retried")
}
