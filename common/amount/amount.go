package amount

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// FractionalCount is the number of digits below the decimal point
const FractionalCount = 18

// amount errors
var (
	ErrInvalidAmountFormat = errors.New("invalid amount format")
)

var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(FractionalCount), nil)

// Amount is an 18 decimal fixed point value in the smallest unit
type Amount struct {
	*big.Int
}

// NewAmount returns i whole units plus f in the smallest unit
func NewAmount(i uint64, f uint64) *Amount {
	v := new(big.Int).Mul(new(big.Int).SetUint64(i), unit)
	return &Amount{Int: v.Add(v, new(big.Int).SetUint64(f))}
}

// NewAmountFromBig wraps a copy of bi
func NewAmountFromBig(bi *big.Int) *Amount {
	return &Amount{Int: new(big.Int).Set(bi)}
}

// MarshalJSON is a marshaler function
func (am *Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + am.String() + `"`), nil
}

// UnmarshalJSON is a unmarshaler function
func (am *Amount) UnmarshalJSON(bs []byte) error {
	if len(bs) < 3 || bs[0] != '"' || bs[len(bs)-1] != '"' {
		return errors.WithStack(ErrInvalidAmountFormat)
	}
	v, err := ParseAmount(string(bs[1 : len(bs)-1]))
	if err != nil {
		return err
	}
	am.Int = v.Int
	return nil
}

// Equal checks that two values is same or not
func (am *Amount) Equal(b *Amount) bool {
	return am.Int.Cmp(b.Int) == 0
}

// String returns the decimal form without trailing zeros
func (am *Amount) String() string {
	if am.Int.Sign() == 0 {
		return "0"
	}
	str := am.Int.String()
	if len(str) <= FractionalCount {
		str = strings.Repeat("0", FractionalCount-len(str)+1) + str
	}
	si := str[:len(str)-FractionalCount]
	sf := strings.TrimRight(str[len(str)-FractionalCount:], "0")
	if len(sf) > 0 {
		return si + "." + sf
	}
	return si
}

// ParseAmount parses a non negative decimal such as "1000" or "0.25"
func ParseAmount(str string) (*Amount, error) {
	ls := strings.SplitN(str, ".", 2)
	frac := ""
	if len(ls) == 2 {
		frac = ls[1]
		if len(frac) == 0 || len(frac) > FractionalCount {
			return nil, errors.WithStack(ErrInvalidAmountFormat)
		}
	}
	digits := ls[0] + frac + strings.Repeat("0", FractionalCount-len(frac))
	if len(ls[0]) == 0 || strings.Trim(digits, "0123456789") != "" {
		return nil, errors.WithStack(ErrInvalidAmountFormat)
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, errors.WithStack(ErrInvalidAmountFormat)
	}
	return &Amount{Int: v}, nil
}

// MustParseAmount parses str and panics on a malformed value
func MustParseAmount(str string) *Amount {
	am, err := ParseAmount(str)
	if err != nil {
		panic(err)
	}
	return am
}
