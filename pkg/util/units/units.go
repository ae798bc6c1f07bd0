package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
)

const humanSizeBase = 1000.0

var (
	siUnit = []string{"", "k", "M", "G", "T", "P", "E", "Z", "Y"}

	// durationUnits are tried from the largest to the smallest. It matches
	// the axis formatter of the exported charts.
	durationUnits = []struct {
		name  string
		scale float64
	}{
		{name: "s", scale: 1e9},
		{name: "ms", scale: 1e6},
		{name: "us", scale: 1e3},
		{name: "ns", scale: 1},
	}
)

func ToHumanSizeStringWithoutUnit(size float64, precision int) string {
	fmt := "%." + strconv.Itoa(precision) + "g%s"
	return units.CustomSize(fmt, size, humanSizeBase, siUnit)
}

// ToByteSizeString returns a string that represents the size defined by
// international standard IEC 80000-13.
func ToByteSizeString(size float64) string {
	return units.BytesSize(size)
}

// FromByteSizeString parses the argument sizeString representing byte size and
// returns the number of bytes or -1 if the sizeString cannot be parsable.
// A bare number is a number of bytes.
func FromByteSizeString(sizeString string, minMax ...int64) (size int64, err error) {
	sep := strings.LastIndexAny(sizeString, "01234567890. ")
	if sep == -1 {
		return -1, fmt.Errorf("invalid size: '%s'", sizeString)
	}

	sfx := sizeString[sep+1:]
	if strings.ContainsAny(sfx, "i") {
		size, err = units.RAMInBytes(sizeString)
	} else {
		size, err = units.FromHumanSize(sizeString)
	}
	if err != nil {
		return -1, err
	}

	min, max := int64(0), int64(math.MaxInt64)
	if len(minMax) > 0 {
		min = minMax[0]
	}
	if len(minMax) > 1 {
		max = minMax[1]
	}
	if size < min || size > max {
		return -1, fmt.Errorf("invalid size %s", sizeString)
	}
	return size, nil
}

// ToHumanDurationString formats d with the largest unit among s, ms, us and
// ns whose value is greater than one. Durations of at most one nanosecond
// are formatted as "0s".
func ToHumanDurationString(d time.Duration, precision int) string {
	ns := float64(d.Nanoseconds())
	for _, u := range durationUnits {
		if v := ns / u.scale; v > 1 {
			return strconv.FormatFloat(v, 'g', precision, 64) + u.name
		}
	}
	return "0s"
}
