package rollout

import (
	"testing"
	"time"

	applicationdomain "github.com/agriwelfare/stockclaims/internal/application/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisitDate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{name: "date only", raw: "2025-01-21", want: time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "rfc3339", raw: "2025-01-21T09:30:00Z", want: time.Date(2025, 1, 21, 9, 30, 0, 0, time.UTC), ok: true},
		{name: "no zone", raw: "2025-01-21T09:30:00", want: time.Date(2025, 1, 21, 9, 30, 0, 0, time.UTC), ok: true},
		{name: "garbage", raw: "not-a-date", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "dd/mm/yyyy", raw: "21/01/2025", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseVisitDate(tc.raw)
			if !tc.ok {
				var parseErr *DateParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, tc.raw, parseErr.Value)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got))
		})
	}
}

func TestVisitOnOrAfterPiHuntGoLive(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"2025-01-20", false},
		{"2025-01-21", true}, // go-live day itself is in
		{"2025-01-22", true},
		{"2024-12-31T23:59:59Z", false},
	}

	for _, tc := range cases {
		got, err := VisitOnOrAfterPiHuntGoLive(tc.raw)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "visit %s", tc.raw)
	}

	_, err := VisitOnOrAfterPiHuntGoLive("bogus")
	var parseErr *DateParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestMultipleHerdsJourney(t *testing.T) {
	goLive := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	enabled := Config{MultiHerdEnabled: true, MultiHerdGoLive: goLive}
	deletedBy := "admin"

	t.Run("on after go-live with no flags", func(t *testing.T) {
		got, err := MultipleHerdsJourney("2025-05-01", nil, enabled)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("before go-live", func(t *testing.T) {
		got, err := MultipleHerdsJourney("2025-04-30", nil, enabled)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("feature disabled", func(t *testing.T) {
		got, err := MultipleHerdsJourney("2025-06-01", nil, Config{MultiHerdEnabled: false, MultiHerdGoLive: goLive})
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("live opt-out flag suppresses journey", func(t *testing.T) {
		flags := []applicationdomain.Flag{{AppliesToMH: true}}
		got, err := MultipleHerdsJourney("2025-06-01", flags, enabled)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("deleted opt-out flag is ignored", func(t *testing.T) {
		flags := []applicationdomain.Flag{{AppliesToMH: true, DeletedBy: &deletedBy}}
		got, err := MultipleHerdsJourney("2025-06-01", flags, enabled)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("unrelated flag does not suppress", func(t *testing.T) {
		flags := []applicationdomain.Flag{{AppliesToMH: false}}
		got, err := MultipleHerdsJourney("2025-06-01", flags, enabled)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := MultipleHerdsJourney("someday", nil, enabled)
		var parseErr *DateParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestPredicatesAreDeterministic(t *testing.T) {
	cfg := Config{MultiHerdEnabled: true, MultiHerdGoLive: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	for i := 0; i < 5; i++ {
		a, err := VisitOnOrAfterPiHuntGoLive("2025-03-10")
		require.NoError(t, err)
		b, err := MultipleHerdsJourney("2025-03-10", nil, cfg)
		require.NoError(t, err)
		assert.True(t, a)
		assert.False(t, b)
	}
}
