package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SortsByIndependentVariable(t *testing.T) {
	s, err := FromValues("wind", FieldAltitude, []string{FieldSpeed, FieldBearing}, [][]float64{
		{1000, 8, 270},
		{0, 3, 90},
		{500, 5, 180},
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 500, 1000}, s.X())
	speed, ok := s.Column(FieldSpeed)
	require.True(t, ok)
	assert.Equal(t, []float64{3, 5, 8}, speed)
	assert.Equal(t, [][]float64{{0, 3, 90}, {500, 5, 180}, {1000, 8, 270}}, s.Rows())
}

func TestNew_StrictlyAscendingForAnyInputOrder(t *testing.T) {
	orders := [][][]float64{
		{{0, 1}, {1, 2}, {2, 3}, {3, 4}},
		{{3, 4}, {2, 3}, {1, 2}, {0, 1}},
		{{2, 3}, {0, 1}, {3, 4}, {1, 2}},
	}
	for _, rows := range orders {
		s, err := FromValues("t", FieldTime, []string{FieldThrust}, rows)
		require.NoError(t, err)
		x := s.X()
		for i := 1; i < len(x); i++ {
			assert.Less(t, x[i-1], x[i])
		}
	}
}

func TestNew_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name    string
		rows    []Row
		wantRow int
		wantMsg string
	}{
		{
			name:    "single row",
			rows:    []Row{{Line: 1, Values: []float64{0, 1}}},
			wantMsg: "at least 2 rows",
		},
		{
			name: "duplicate independent value",
			rows: []Row{
				{Line: 2, Values: []float64{0, 1}},
				{Line: 3, Values: []float64{1, 2}},
				{Line: 4, Values: []float64{1, 3}},
			},
			wantRow: 4,
			wantMsg: "duplicate time value 1",
		},
		{
			name: "NaN",
			rows: []Row{
				{Line: 2, Values: []float64{0, 1}},
				{Line: 3, Values: []float64{1, math.NaN()}},
			},
			wantRow: 3,
			wantMsg: "thrust is not finite",
		},
		{
			name: "infinity in index",
			rows: []Row{
				{Line: 2, Values: []float64{math.Inf(1), 1}},
				{Line: 3, Values: []float64{1, 1}},
			},
			wantRow: 2,
			wantMsg: "time is not finite",
		},
		{
			name: "short row",
			rows: []Row{
				{Line: 2, Values: []float64{0, 1}},
				{Line: 3, Values: []float64{1}},
			},
			wantRow: 3,
			wantMsg: "expected 2 values, got 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(NameThrustCurve, FieldTime, []string{FieldThrust}, tt.rows)
			require.Error(t, err)
			assert.True(t, IsMalformed(err))

			var me *MalformedError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, NameThrustCurve, me.Series)
			assert.Equal(t, tt.wantRow, me.Row)
			assert.Contains(t, me.Message, tt.wantMsg)
		})
	}
}

func TestSeries_AccessorsReturnCopies(t *testing.T) {
	s, err := FromValues("t", FieldTime, []string{FieldThrust}, [][]float64{{0, 1}, {1, 2}})
	require.NoError(t, err)

	x := s.X()
	x[0] = 99
	col, _ := s.Column(FieldThrust)
	col[0] = 99
	s.Rows()[0][1] = 99

	assert.Equal(t, []float64{0, 1}, s.X())
	col, _ = s.Column(FieldThrust)
	assert.Equal(t, []float64{1, 2}, col)
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	rows := [][]float64{{1, 10}, {0, 5}}
	s, err := FromValues("t", FieldTime, []string{FieldThrust}, rows)
	require.NoError(t, err)

	rows[0][1] = -1
	col, _ := s.Column(FieldThrust)
	assert.Equal(t, []float64{5, 10}, col)
}

func TestLookup_At(t *testing.T) {
	l, err := NewLookup([]float64{0, 1, 3}, []float64{0, 10, 30})
	require.NoError(t, err)

	assert.Equal(t, 0.0, l.At(-5), "clamped below")
	assert.Equal(t, 5.0, l.At(0.5))
	assert.Equal(t, 10.0, l.At(1))
	assert.Equal(t, 20.0, l.At(2))
	assert.Equal(t, 30.0, l.At(10), "clamped above")

	lo, hi := l.Domain()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 3.0, hi)
	assert.Equal(t, [][2]float64{{0, 0}, {1, 10}, {3, 30}}, l.Points())
}

func TestNewLookup_Rejects(t *testing.T) {
	_, err := NewLookup(nil, nil)
	assert.Error(t, err)

	_, err = NewLookup([]float64{0, 1}, []float64{1})
	assert.Error(t, err)

	_, err = NewLookup([]float64{0, 0}, []float64{1, 2})
	assert.ErrorContains(t, err, "strictly increasing")

	_, err = NewLookup([]float64{0, 1}, []float64{1, math.NaN()})
	assert.ErrorContains(t, err, "not finite")
}
