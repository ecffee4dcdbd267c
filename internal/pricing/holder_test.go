package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/agriwelfare/stockclaims/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHolderFallsBackToDefaults(t *testing.T) {
	holder, err := NewHolder(config.Config{PricesConfigDir: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)

	table := holder.Table()
	assert.True(t, table.Review[domain.SpeciesBeef].Equal(decimal.NewFromInt(522)))
	assert.True(t, table.FollowUp[domain.SpeciesSheep].Flat.Equal(decimal.NewFromInt(639)))
}

func TestHolderLoadsMountedDocument(t *testing.T) {
	dir := t.TempDir()
	doc := `{
	  "review":   { "beef": 600, "dairy": 400, "pigs": 560, "sheep": 440 },
	  "followUp": {
	    "beef":  { "positive": 900, "negative": { "noPiHunt": 250, "yesPiHunt": 900 } },
	    "dairy": { "positive": 1800, "negative": { "noPiHunt": 250, "yesPiHunt": 1800 } },
	    "pigs": 950,
	    "sheep": 650
	  }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prices.json"), []byte(doc), 0o644))

	holder, err := NewHolder(config.Config{PricesConfigDir: dir}, zap.NewNop())
	require.NoError(t, err)

	table := holder.Table()
	assert.True(t, table.Review[domain.SpeciesBeef].Equal(decimal.NewFromInt(600)))
	assert.True(t, table.FollowUp[domain.SpeciesPigs].Flat.Equal(decimal.NewFromInt(950)))
}

func TestHolderRejectsInvalidDocumentAtStartup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prices.json"), []byte(`{"review":{}}`), 0o644))

	_, err := NewHolder(config.Config{PricesConfigDir: dir}, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingPrice)
}
