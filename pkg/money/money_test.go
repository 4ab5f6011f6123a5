package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    int64 // cents
		wantErr bool
	}{
		{input: "500", want: 50000},
		{input: "500.00", want: 50000},
		{input: "123.45", want: 12345},
		{input: "425.5", want: 42550},
		{input: "0", want: 0},
		{input: "0.01", want: 1},
		{input: " 42 ", want: 4200},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "1.234", wantErr: true},
		{input: "1.", wantErr: true},
		{input: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Cents())
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"123.45", "500.00", "0.01", "999999.99"} {
		p, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, p.String())
	}
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "425", FromCents(42500).Compact())
	assert.Equal(t, "425.50", FromCents(42550).Compact())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "$425.00", FromCents(42500).Display())
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, FromCents(42500), Midpoint(FromCents(40000), FromCents(45000)))
	// Odd sums round up to the next cent.
	assert.Equal(t, FromCents(8), Midpoint(FromCents(5), FromCents(10)))
	// Halves round up even when the lower cent is even.
	assert.Equal(t, FromCents(1), Midpoint(FromCents(0), FromCents(1)))
	assert.Equal(t, FromCents(3), Midpoint(FromCents(2), FromCents(3)))
}

func TestPortion(t *testing.T) {
	assert.Equal(t, FromCents(2000), Portion(FromCents(10000), 20))
	assert.Equal(t, FromCents(500), Portion(FromCents(10000), 5))
	// Half a cent rounds up, toward the vendor.
	assert.Equal(t, FromCents(3), Portion(FromCents(50), 5))
	assert.Equal(t, FromCents(2), Portion(FromCents(30), 5))
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		Value Price `json:"value"`
	}

	data, err := json.Marshal(wrapper{Value: FromCents(50000)})
	require.NoError(t, err)
	assert.Equal(t, `{"value":500.00}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"value":500.00}`), &w))
	assert.Equal(t, FromCents(50000), w.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"value":"123.45"}`), &w))
	assert.Equal(t, FromCents(12345), w.Value)
}
