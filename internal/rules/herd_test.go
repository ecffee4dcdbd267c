package rules

import (
	"testing"

	applicationdomain "github.com/agriwelfare/stockclaims/internal/application/domain"
	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A follow-up visit after both go-live dates, used to exercise the
// multiple-herds schema additions.
func validMultiHerdClaim() *domain.ClaimData {
	d := validBeefFollowUpPost()
	d.DateOfVisit = "2025-06-01"
	d.Herd = &domain.HerdInput{
		HerdVersion: 1,
		HerdName:    "Commercial herd",
		CPH:         "12/345/6789",
		HerdReasons: []string{"separateManagementNeeds"},
		HerdSame:    yn(domain.No),
	}
	return d
}

func TestHerdSectionGating(t *testing.T) {
	t.Run("required on the multiple-herds journey", func(t *testing.T) {
		d := validMultiHerdClaim()
		d.Herd = nil
		assert.Contains(t, messages(t, domain.TypeFollowUp, d, nil, mhOn),
			`"data.herd" is required`)
	})

	t.Run("not asked while the feature is off", func(t *testing.T) {
		d := validMultiHerdClaim()
		d.Herd = nil
		assert.Empty(t, messages(t, domain.TypeFollowUp, d, nil, mhOff))
	})

	t.Run("not asked before go-live", func(t *testing.T) {
		d := validMultiHerdClaim()
		d.Herd = nil
		d.DateOfVisit = "2025-04-30"
		assert.Empty(t, messages(t, domain.TypeFollowUp, d, nil, mhOn))
	})

	t.Run("application flag opts the claim out", func(t *testing.T) {
		d := validMultiHerdClaim()
		d.Herd = nil
		flags := []applicationdomain.Flag{{AppliesToMH: true}}
		assert.Empty(t, messages(t, domain.TypeFollowUp, d, flags, mhOn))
	})
}

func TestHerdSectionShapes(t *testing.T) {
	t.Run("valid new herd", func(t *testing.T) {
		assert.Empty(t, messages(t, domain.TypeFollowUp, validMultiHerdClaim(), nil, mhOn))
	})

	t.Run("valid update", func(t *testing.T) {
		d := validMultiHerdClaim()
		d.Herd = &domain.HerdInput{
			HerdID:      "1125899906842625",
			HerdVersion: 2,
			CPH:         "12/345/6789",
			HerdReasons: []string{"differentBreed"},
		}
		assert.Empty(t, messages(t, domain.TypeFollowUp, d, nil, mhOn))
	})

	cases := []struct {
		name   string
		mutate func(*domain.HerdInput)
		want   string
	}{
		{
			name:   "version below one",
			mutate: func(h *domain.HerdInput) { h.HerdVersion = 0 },
			want:   `"data.herd.herdVersion" must be greater than or equal to 1`,
		},
		{
			name:   "missing cph",
			mutate: func(h *domain.HerdInput) { h.CPH = "" },
			want:   `"data.herd.cph" is required`,
		},
		{
			name:   "missing reasons",
			mutate: func(h *domain.HerdInput) { h.HerdReasons = nil },
			want:   `"data.herd.herdReasons" is required`,
		},
		{
			name:   "blank reason",
			mutate: func(h *domain.HerdInput) { h.HerdReasons = []string{"differentBreed", " "} },
			want:   `"data.herd.herdReasons" is not allowed to be empty`,
		},
		{
			name:   "new herd without a name",
			mutate: func(h *domain.HerdInput) { h.HerdName = "" },
			want:   `"data.herd.herdName" is required`,
		},
		{
			name:   "herdSame outside the enum",
			mutate: func(h *domain.HerdInput) { v := domain.YesNo("maybe"); h.HerdSame = &v },
			want:   `"data.herd.herdSame" must be one of [yes, no]`,
		},
		{
			name: "update without an id",
			mutate: func(h *domain.HerdInput) {
				h.HerdVersion = 2
				h.HerdSame = nil
			},
			want: `"data.herd.herdId" is required`,
		},
		{
			name: "herdSame is not allowed on updates",
			mutate: func(h *domain.HerdInput) {
				h.HerdID = "1125899906842625"
				h.HerdVersion = 2
			},
			want: `"data.herd.herdSame" is not allowed`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validMultiHerdClaim()
			tc.mutate(d.Herd)
			assert.Contains(t, messages(t, domain.TypeFollowUp, d, nil, mhOn), tc.want)
		})
	}
}

func TestHerdViolationsAccumulate(t *testing.T) {
	d := validMultiHerdClaim()
	d.Herd = &domain.HerdInput{HerdVersion: 1}

	schema, err := Build(domain.TypeFollowUp, d, nil, mhOn)
	require.NoError(t, err)
	got := schema.Apply(d)

	paths := make([]string, len(got))
	for i, v := range got {
		paths[i] = v.Path
	}
	assert.Contains(t, paths, "data.herd.cph")
	assert.Contains(t, paths, "data.herd.herdReasons")
	assert.Contains(t, paths, "data.herd.herdName")
}
