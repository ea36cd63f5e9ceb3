package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nvdata-service/internal/domain"
)

func TestCompact_Bulletin(t *testing.T) {
	in := domain.BulletinRecord{
		RegionID:        "IT-34-BL-01",
		Highlight:       "  Pericolo\n\tmarcato  ",
		Description:     "a  b",
		SnowDescription: "c\n d",
		Problems: []domain.Problem{
			{Type: " new  snow ", Orientations: []string{"N", "NE", "N", "E", "NE"}},
			{Type: "wind slab"},
		},
		Tendency: domain.Tendency{Comment: " c\n d "},
	}

	out := Compact{}.Bulletin(in)

	assert.Equal(t, "Pericolo marcato", out.Highlight)
	assert.Equal(t, "a b", out.Description)
	assert.Equal(t, "c d", out.SnowDescription)
	assert.Equal(t, "c d", out.Tendency.Comment)
	assert.Equal(t, "new snow", out.Problems[0].Type)
	assert.Equal(t, []string{"N", "NE", "E"}, out.Problems[0].Orientations)
	assert.Equal(t, []string{}, out.Problems[1].Orientations)
	assert.Equal(t, []string{"N", "NE", "N", "E", "NE"}, in.Problems[0].Orientations, "input is not mutated")
}

func TestCompact_BulletinEmptySlicesSerializeAsArrays(t *testing.T) {
	out := Compact{}.Bulletin(domain.BulletinRecord{RegionID: "IT-34-BL-01"})

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"locations", "ratings", "danger_patterns", "problems"} {
		assert.JSONEq(t, `[]`, string(fields[key]), key)
	}
}

func TestCompact_BulletinZeroUnchanged(t *testing.T) {
	out := Compact{}.Bulletin(domain.BulletinRecord{})
	assert.True(t, out.IsZero())
	assert.Nil(t, out.Locations)
}

func TestCompact_Advisory(t *testing.T) {
	in := domain.AdvisoryRecord{
		Intro: &domain.AdvisoryIntro{Situation: "Aria\n   fredda", Forecaster: " M. Rossi "},
		Days: []domain.AdvisoryDay{{
			Date: "16/01/2024",
			Areas: []domain.AdvisoryArea{
				{Area: "Dolomiti", DangerousPlaces: "Pendii\n  ripidi", Danger: "3"},
			},
		}},
		Credits: domain.ArpavCredits,
	}

	out := Compact{}.Advisory(in)

	assert.Equal(t, "Aria fredda", out.Intro.Situation)
	assert.Equal(t, "M. Rossi", out.Intro.Forecaster)
	assert.Equal(t, "Pendii ripidi", out.Days[0].Areas[0].DangerousPlaces)
	assert.Equal(t, "3", out.Days[0].Areas[0].Danger)
	assert.Equal(t, "Aria\n   fredda", in.Intro.Situation, "input is not mutated")
	assert.Equal(t, "Pendii\n  ripidi", in.Days[0].Areas[0].DangerousPlaces)
}

func TestCompact_AdvisoryCreditsOnly(t *testing.T) {
	in := domain.AdvisoryRecord{Credits: domain.ArpavCredits}
	assert.Equal(t, in, Compact{}.Advisory(in))
}
