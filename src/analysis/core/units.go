package core

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"nagios-autothreshold/src/helpers"
)

// Binary multipliers for the supported magnitude prefixes.
const (
	Kibi int64 = 1 << (10 * (iota + 1))
	Mebi
	Gibi
	Tebi
	Pebi
)

var prefixScale = map[string]int64{
	"":  1,
	"K": Kibi, "k": Kibi,
	"M": Mebi, "m": Mebi,
	"G": Gibi, "g": Gibi,
	"T": Tebi, "t": Tebi,
	"P": Pebi, "p": Pebi,
}

// -----------------------------------------------------------------------------

// maxBits is 2^63; scaled values at or beyond it do not fit an int64.
const maxBits = float64(1 << 63)

// NormalizeBits converts magnitude with an optional K/M/G/T/P prefix
// (case-insensitive, powers of 1024) into base units, truncating toward zero.
// A result outside the int64 range is a malformed sample.
func NormalizeBits(magnitude float64, prefix string) (int64, error) {
	scale, ok := prefixScale[prefix]
	if !ok {
		return 0, helpers.NewUnsupportedUnitError(prefix)
	}
	scaled := magnitude * float64(scale)
	if math.IsNaN(scaled) || math.Abs(scaled) >= maxBits {
		return 0, helpers.NewMalformedSampleError(strconv.FormatFloat(magnitude, 'g', -1, 64) + prefix + "b")
	}
	return int64(scaled), nil
}

// -----------------------------------------------------------------------------

var formatOrder = []struct {
	prefix string
	scale  int64
}{
	{"P", Pebi},
	{"T", Tebi},
	{"G", Gibi},
	{"M", Mebi},
	{"K", Kibi},
}

// FormatBits renders a base-unit count with the largest prefix that keeps
// the magnitude at or above one, e.g. 1536 -> "1.5Kb". The magnitude uses the
// shortest decimal that parses back to the same float, so ParseMagnitude
// returns bits again for any count below 2^53.
func FormatBits(bits int64) string {
	abs := bits
	if abs < 0 {
		abs = -abs
	}
	for _, u := range formatOrder {
		if abs >= u.scale {
			v := float64(bits) / float64(u.scale)
			return strconv.FormatFloat(v, 'f', -1, 64) + u.prefix + "b"
		}
	}
	return fmt.Sprintf("%db", bits)
}

var magnitudePattern = regexp.MustCompile(`^(-?\d*\.?\d+)([KkMmGgTtPp])?b$`)

// ParseMagnitude reverses FormatBits: it reads "<float><prefix>?b" and
// returns the value in base units.
func ParseMagnitude(s string) (int64, error) {
	m := magnitudePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, helpers.NewMalformedSampleError(s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, helpers.NewMalformedSampleError(s)
	}
	return NormalizeBits(v, m[2])
}
