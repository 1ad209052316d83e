package dice_test

import (
	"testing"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	mockdice "github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantCrit   bool
		wantErr    bool
	}{
		{
			name:       "single d20 roll",
			setupRolls: []int{15},
			count:      1,
			sides:      20,
			wantTotal:  15,
			wantRolls:  []int{15},
		},
		{
			name:       "monster attack 1d16+24",
			setupRolls: []int{16},
			count:      1,
			sides:      16,
			bonus:      24,
			wantTotal:  40,
			wantRolls:  []int{16},
		},
		{
			name:       "natural twenty",
			setupRolls: []int{20},
			count:      1,
			sides:      20,
			bonus:      5,
			wantTotal:  25,
			wantRolls:  []int{20},
			wantCrit:   true,
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{10},
			count:      2,
			sides:      6,
			wantErr:    true,
		},
		{
			name:       "invalid roll for die size",
			setupRolls: []int{20},
			count:      1,
			sides:      19,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
			assert.Equal(t, tt.wantCrit, result.IsCrit)
		})
	}
}

func TestMockRoller_SequentialRolls(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{20, 1})
	roller.SetNextRoll(7)

	result, err := roller.Roll(1, 20, 0)
	require.NoError(t, err)
	assert.True(t, result.IsCrit)

	result, err = roller.Roll(1, 20, 0)
	require.NoError(t, err)
	assert.True(t, result.IsFumble)

	result, err = roller.Roll(1, 19, 22)
	require.NoError(t, err)
	assert.Equal(t, 29, result.Total)
	assert.Equal(t, 0, roller.Remaining())

	_, err = roller.Roll(1, 20, 0)
	assert.Error(t, err)
}

func TestRandomRoller_Bounds(t *testing.T) {
	roller := dice.NewRandomRoller()

	for i := 0; i < 200; i++ {
		result, err := roller.Roll(1, 16, 24)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Total, 25)
		assert.LessOrEqual(t, result.Total, 40)
		assert.Equal(t, result.RawTotal+24, result.Total)
	}

	_, err := roller.Roll(0, 6, 0)
	assert.Error(t, err)
	_, err = roller.Roll(1, 0, 0)
	assert.Error(t, err)
}

func TestSeededRoller_Deterministic(t *testing.T) {
	a := dice.NewSeededRoller(42)
	b := dice.NewSeededRoller(42)

	for i := 0; i < 50; i++ {
		ra, err := a.Roll(2, 20, 3)
		require.NoError(t, err)
		rb, err := b.Roll(2, 20, 3)
		require.NoError(t, err)
		assert.Equal(t, ra.Rolls, rb.Rolls)
	}
}
