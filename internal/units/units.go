// Package units converts the human-readable size tokens emitted by zpool
// reports (e.g. "128K", "4.50G") into exact byte counts.
package units

import (
	"strconv"
	"strings"

	"github.com/zfskit/ddtstat/internal/errors"
)

// Divisors for the CLI unit flags.
const (
	Byte int64 = 1
	KiB  int64 = 1 << 10
	MiB  int64 = 1 << 20
	GiB  int64 = 1 << 30
	TiB  int64 = 1 << 40
)

// suffixRank maps a size suffix to its 1024 exponent.
var suffixRank = map[byte]uint{
	'K': 1,
	'M': 2,
	'G': 3,
	'T': 4,
}

// Fractional digits beyond this add less than a byte at any supported
// rank and would overflow int64 arithmetic.
const maxFracDigits = 6

// ParseSize converts a token of the form <digits>[.<digits>]<suffix> into
// bytes, where suffix is one of K, M, G, T (or absent for plain bytes).
// The value is mantissa * 1024^rank, computed in integer arithmetic so
// fractional mantissas like "2.50G" resolve exactly; the final value
// truncates toward zero.
func ParseSize(token string) (int64, error) {
	s := token
	if s == "" {
		return 0, errors.MalformedSizeToken(token, "empty input")
	}

	mult := Byte
	last := s[len(s)-1]
	if last < '0' || last > '9' {
		rank, ok := suffixRank[last]
		if !ok {
			return 0, errors.MalformedSizeToken(token, "unrecognized suffix")
		}
		mult = 1 << (10 * rank)
		s = s[:len(s)-1]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		return 0, errors.MalformedSizeToken(token, "missing mantissa")
	}

	n, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, errors.MalformedSizeToken(token, "non-numeric mantissa")
	}
	bytes := int64(n) * mult

	if hasFrac {
		if frac == "" {
			return 0, errors.MalformedSizeToken(token, "missing fractional digits")
		}
		if len(frac) > maxFracDigits {
			frac = frac[:maxFracDigits]
		}
		f, err := strconv.ParseUint(frac, 10, 63)
		if err != nil {
			return 0, errors.MalformedSizeToken(token, "non-numeric mantissa")
		}
		pow := int64(1)
		for i := 0; i < len(frac); i++ {
			pow *= 10
		}
		bytes += int64(f) * mult / pow
	}

	return bytes, nil
}
