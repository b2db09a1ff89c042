package bondprice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ticks int64
	}{
		{"even point", "100-000", 100 * TicksPerPoint},
		{"half thirty-second", "100-16+", 100*TicksPerPoint + 16*8 + 4},
		{"full precision", "99-317", 99*TicksPerPoint + 31*8 + 7},
		{"single eighth", "101-001", 101*TicksPerPoint + 1},
		{"mid range", "100-255", 100*TicksPerPoint + 25*8 + 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.ticks, Ticks(got))
		})
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"100",
		"100-",
		"100-16",
		"100-16+7",
		"100-32+",
		"100-168",
		"100-16x",
		"abc-160",
		"-1-160",
	}
	for _, s := range bad {
		if _, err := Parse(s); !errors.Is(err, ErrBadNotation) {
			t.Errorf("Parse(%q) = %v, want ErrBadNotation", s, err)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		ticks int64
		want  string
	}{
		{100 * TicksPerPoint, "100-000"},
		{100*TicksPerPoint + 16*8 + 4, "100-16+"},
		{99*TicksPerPoint + 31*8 + 7, "99-317"},
		{101*TicksPerPoint + 1, "101-001"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Format(FromTicks(tc.ticks)))
	}
}

// Every tick-aligned price must survive format then parse unchanged.
func TestRoundTrip(t *testing.T) {
	for ticks := int64(99 * TicksPerPoint); ticks <= 101*TicksPerPoint; ticks++ {
		price := FromTicks(ticks)
		parsed, err := Parse(Format(price))
		require.NoError(t, err)
		if !parsed.Equal(price) {
			t.Fatalf("round trip at %d ticks: got %s, want %s", ticks, parsed.String(), price.String())
		}
	}
}

func TestTicksInverse(t *testing.T) {
	for _, ticks := range []int64{0, 1, 255, 256, 25600, 25857} {
		assert.Equal(t, ticks, Ticks(FromTicks(ticks)))
	}
}

// The midpoint of a one-tick market lands on a half tick and must not lose
// precision: doubling it has to give back bid plus offer exactly.
func TestMidpointExact(t *testing.T) {
	for _, tc := range []struct{ bid, offer int64 }{
		{100 * TicksPerPoint, 100*TicksPerPoint + 1},
		{99*TicksPerPoint + 255, 100 * TicksPerPoint},
		{100 * TicksPerPoint, 100*TicksPerPoint + 4},
	} {
		mid := Midpoint(FromTicks(tc.bid), FromTicks(tc.offer))
		sum := FromTicks(tc.bid).Add(FromTicks(tc.offer))
		if !mid.Add(mid).Equal(sum) {
			t.Errorf("midpoint of %d/%d ticks: got %s, doubling does not give %s",
				tc.bid, tc.offer, mid.String(), sum.String())
		}
	}
}

func TestFromHalfTicks(t *testing.T) {
	// 512 half ticks make one point, even counts align to whole ticks
	assert.True(t, FromHalfTicks(512).Equal(FromTicks(TicksPerPoint)))
	assert.True(t, FromHalfTicks(2).Equal(FromTicks(1)))
	assert.Equal(t, "100.001953125", FromHalfTicks(100*2*TicksPerPoint+1).String())
}
