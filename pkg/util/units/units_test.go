package units

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFromByteSizeString(t *testing.T) {
	var size int64
	var err error

	// suffixes without "i" are decimal
	size, err = FromByteSizeString("1G")
	require.NoError(t, err)
	require.EqualValues(t, 1_000_000_000, size)

	size, err = FromByteSizeString("1GiB")
	require.NoError(t, err)
	require.EqualValues(t, 1<<30, size)

	size, err = FromByteSizeString("0G")
	require.NoError(t, err)
	require.EqualValues(t, 0, size)

	_, err = FromByteSizeString("-1G")
	require.Error(t, err)

	_, err = FromByteSizeString("1G", 0, 1<<10)
	require.Error(t, err)

	_, err = FromByteSizeString("1KB", 1<<20)
	require.Error(t, err)
}

func TestToByteSizeString(t *testing.T) {
	const sizeInBytes = 1024
	size, err := FromByteSizeString(ToByteSizeString(sizeInBytes))
	require.NoError(t, err)
	require.EqualValues(t, sizeInBytes, size)
}

func TestToHumanSizeStringWithoutUnit(t *testing.T) {
	tcs := []struct {
		size      float64
		precision int
		want      string
	}{
		{size: 0, precision: 0, want: "0"},
		{size: 0, precision: 1, want: "0"},
		{size: 1.49, precision: 0, want: "1"},
		{size: 1.49, precision: 1, want: "1"},
		{size: 1.49, precision: 2, want: "1.5"},
		{size: 1.44, precision: 2, want: "1.4"},
		{size: 1.50, precision: 1, want: "2"},
		{size: 1.50, precision: 2, want: "1.5"},
		{size: 1 << 10, precision: 1, want: "1k"},
		{size: 10 << 10, precision: 1, want: "1e+01k"},
		{size: 10 << 10, precision: 2, want: "10k"},
		{size: 1 << 20, precision: 1, want: "1M"},
		{size: 1 << 30, precision: 1, want: "1G"},
		{size: 1 << 40, precision: 1, want: "1T"},
		{size: 1 << 50, precision: 1, want: "1P"},
		{size: 123456.78, precision: 6, want: "123.457k"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.want, func(t *testing.T) {
			got := ToHumanSizeStringWithoutUnit(tc.size, tc.precision)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFromByteSizeStringBareNumber(t *testing.T) {
	size, err := FromByteSizeString("100")
	require.NoError(t, err)
	require.EqualValues(t, 100, size)

	size, err = FromByteSizeString("1KiB")
	require.NoError(t, err)
	require.EqualValues(t, 1024, size)

	_, err = FromByteSizeString("KiB")
	require.Error(t, err)
}

func TestToHumanDurationString(t *testing.T) {
	tcs := []struct {
		d    time.Duration
		want string
	}{
		{d: 0, want: "0s"},
		{d: time.Nanosecond, want: "0s"},
		{d: 2 * time.Nanosecond, want: "2ns"},
		{d: 999 * time.Nanosecond, want: "999ns"},
		{d: time.Microsecond, want: "1000ns"},
		{d: 1500 * time.Nanosecond, want: "1.5us"},
		{d: 12346 * time.Microsecond, want: "12.35ms"},
		{d: time.Second, want: "1000ms"},
		{d: 2500 * time.Millisecond, want: "2.5s"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.want, func(t *testing.T) {
			got := ToHumanDurationString(tc.d, 4)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
