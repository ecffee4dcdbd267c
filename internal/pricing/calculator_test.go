package pricing

import (
	"encoding/json"
	"testing"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/agriwelfare/stockclaims/internal/rollout"
	"github.com/agriwelfare/stockclaims/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTable(t *testing.T) Table {
	t.Helper()
	table, err := decodeDocument([]byte(defaultDocument))
	require.NoError(t, err)
	return table
}

func yn(v domain.YesNo) *domain.YesNo           { return &v }
func tr(v domain.TestResult) *domain.TestResult { return &v }

func TestComputeAmountReviews(t *testing.T) {
	table := defaultTable(t)
	cases := map[domain.Species]string{
		domain.SpeciesBeef:  "522",
		domain.SpeciesDairy: "372",
		domain.SpeciesPigs:  "557",
		domain.SpeciesSheep: "436",
	}

	for species, want := range cases {
		d := &domain.ClaimData{TypeOfLivestock: species, DateOfVisit: "2025-02-01"}
		got, err := ComputeAmount(domain.TypeReview, d, table)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s: got %s", species, got)
	}
}

func TestComputeAmountFlatFollowUps(t *testing.T) {
	table := defaultTable(t)

	pigs := &domain.ClaimData{TypeOfLivestock: domain.SpeciesPigs, DateOfVisit: "2025-02-01"}
	got, err := ComputeAmount(domain.TypeFollowUp, pigs, table)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(923)))

	sheep := &domain.ClaimData{TypeOfLivestock: domain.SpeciesSheep, DateOfVisit: "2025-02-01"}
	got, err = ComputeAmount(domain.TypeFollowUp, sheep, table)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(639)))
}

func TestComputeAmountBeefDairyFollowUps(t *testing.T) {
	table := defaultTable(t)

	cases := []struct {
		name    string
		species domain.Species
		visit   string
		review  domain.TestResult
		piHunt  *domain.YesNo
		piAll   *domain.YesNo
		want    int64
	}{
		{name: "beef positive", species: domain.SpeciesBeef, visit: "2025-02-01", review: domain.ResultPositive, piHunt: yn(domain.Yes), piAll: yn(domain.Yes), want: 837},
		{name: "dairy positive", species: domain.SpeciesDairy, visit: "2025-02-01", review: domain.ResultPositive, piHunt: yn(domain.Yes), piAll: yn(domain.Yes), want: 1714},
		{name: "beef negative full hunt", species: domain.SpeciesBeef, visit: "2025-02-01", review: domain.ResultNegative, piHunt: yn(domain.Yes), piAll: yn(domain.Yes), want: 837},
		{name: "dairy negative full hunt", species: domain.SpeciesDairy, visit: "2025-02-01", review: domain.ResultNegative, piHunt: yn(domain.Yes), piAll: yn(domain.Yes), want: 1714},
		{name: "beef negative no hunt", species: domain.SpeciesBeef, visit: "2025-02-01", review: domain.ResultNegative, piHunt: yn(domain.No), want: 215},
		{name: "beef negative partial hunt", species: domain.SpeciesBeef, visit: "2025-02-01", review: domain.ResultNegative, piHunt: yn(domain.Yes), piAll: yn(domain.No), want: 215},
		// Before the go-live date a full-herd hunt cannot earn the higher
		// amount; the question did not exist.
		{name: "dairy negative before go-live", species: domain.SpeciesDairy, visit: "2025-01-20", review: domain.ResultNegative, piHunt: yn(domain.Yes), piAll: yn(domain.Yes), want: 215},
		{name: "beef negative before go-live", species: domain.SpeciesBeef, visit: "2025-01-20", review: domain.ResultNegative, want: 215},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &domain.ClaimData{
				TypeOfLivestock:   tc.species,
				DateOfVisit:       tc.visit,
				ReviewTestResults: tr(tc.review),
				PiHunt:            tc.piHunt,
				PiHuntAllAnimals:  tc.piAll,
			}
			got, err := ComputeAmount(domain.TypeFollowUp, d, table)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)), "got %s want %d", got, tc.want)
		})
	}
}

// A follow-up payload that passes validation on the full-hunt branch must be
// priced on the yesPiHunt branch, and one validated on the partial/no-hunt
// branch on noPiHunt. Both sides derive from the same predicates; this pins
// them together.
func TestAmountBranchMatchesValidationBranch(t *testing.T) {
	table := defaultTable(t)

	str := func(v string) *string { return &v }
	base := func() *domain.ClaimData {
		return &domain.ClaimData{
			TypeOfLivestock:   domain.SpeciesDairy,
			DateOfVisit:       "2025-02-01",
			SpeciesNumbers:    yn(domain.Yes),
			VetsName:          str("Ailish Fairweather"),
			VetRCVSNumber:     str("1234567"),
			ReviewTestResults: tr(domain.ResultNegative),
			Biosecurity:       json.RawMessage(`"yes"`),
			PiHunt:            yn(domain.Yes),
			PiHuntRecommended: yn(domain.Yes),
		}
	}

	cases := []struct {
		name   string
		mutate func(*domain.ClaimData)
		want   int64
	}{
		{
			name: "full hunt earns yesPiHunt",
			mutate: func(d *domain.ClaimData) {
				d.PiHuntAllAnimals = yn(domain.Yes)
				d.DateOfTesting = str("2025-02-02")
				d.LaboratoryURN = str("URN-2502-1")
				d.TestResults = json.RawMessage(`"negative"`)
			},
			want: 1714,
		},
		{
			name:   "partial hunt earns noPiHunt",
			mutate: func(d *domain.ClaimData) { d.PiHuntAllAnimals = yn(domain.No) },
			want:   215,
		},
		{
			name: "no hunt earns noPiHunt",
			mutate: func(d *domain.ClaimData) {
				d.PiHunt = yn(domain.No)
				d.PiHuntRecommended = nil
			},
			want: 215,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := base()
			tc.mutate(d)

			schema, err := rules.Build(domain.TypeFollowUp, d, nil, rollout.Config{})
			require.NoError(t, err)
			require.Empty(t, schema.Apply(d), "payload must be on a valid branch")

			got, err := ComputeAmount(domain.TypeFollowUp, d, table)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)), "got %s want %d", got, tc.want)
		})
	}
}

func TestComputeAmountErrors(t *testing.T) {
	table := defaultTable(t)

	d := &domain.ClaimData{TypeOfLivestock: "goats", DateOfVisit: "2025-02-01"}
	_, err := ComputeAmount(domain.TypeReview, d, table)
	assert.ErrorIs(t, err, ErrMissingPrice)

	_, err = ComputeAmount(domain.TypeFollowUp, d, table)
	assert.ErrorIs(t, err, ErrMissingPrice)

	beef := &domain.ClaimData{
		TypeOfLivestock:   domain.SpeciesBeef,
		DateOfVisit:       "not a date",
		ReviewTestResults: tr(domain.ResultNegative),
	}
	_, err = ComputeAmount(domain.TypeFollowUp, beef, table)
	assert.Error(t, err)

	_, err = ComputeAmount("audit", beef, table)
	assert.Error(t, err)
}

func TestTableValidate(t *testing.T) {
	t.Run("default document is valid", func(t *testing.T) {
		assert.NoError(t, defaultTable(t).Validate())
	})

	t.Run("missing species", func(t *testing.T) {
		table := defaultTable(t)
		delete(table.Review, domain.SpeciesSheep)
		assert.ErrorIs(t, table.Validate(), ErrMissingPrice)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		table := defaultTable(t)
		table.Review[domain.SpeciesBeef] = decimal.Zero
		assert.Error(t, table.Validate())
	})

	t.Run("beef must be a result tree", func(t *testing.T) {
		table := defaultTable(t)
		flat := decimal.NewFromInt(837)
		table.FollowUp[domain.SpeciesBeef] = FollowUpAmount{Flat: &flat}
		assert.Error(t, table.Validate())
	})

	t.Run("pigs must be flat", func(t *testing.T) {
		table := defaultTable(t)
		table.FollowUp[domain.SpeciesPigs] = FollowUpAmount{Positive: decimal.NewFromInt(923)}
		assert.Error(t, table.Validate())
	})
}

func TestFollowUpAmountJSONRoundTrip(t *testing.T) {
	var flat FollowUpAmount
	require.NoError(t, json.Unmarshal([]byte(`923`), &flat))
	require.NotNil(t, flat.Flat)
	assert.True(t, flat.Flat.Equal(decimal.NewFromInt(923)))

	var tree FollowUpAmount
	require.NoError(t, json.Unmarshal([]byte(`{"positive":837,"negative":{"noPiHunt":215,"yesPiHunt":837}}`), &tree))
	assert.Nil(t, tree.Flat)
	assert.True(t, tree.Positive.Equal(decimal.NewFromInt(837)))
	assert.True(t, tree.Negative.NoPiHunt.Equal(decimal.NewFromInt(215)))

	raw, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"positive":"837","negative":{"noPiHunt":"215","yesPiHunt":"837"}}`, string(raw))
}
