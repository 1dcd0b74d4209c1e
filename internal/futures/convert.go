package futures

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// asFloat converts a kline array cell. The exchange mixes raw numbers and
// quoted decimal strings in the same row.
func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	default:
		return 0
	}
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	default:
		return 0
	}
}

// PriceTransform rounds price down to a multiple of tickSize so the venue
// does not reject the order with a price-filter error. Both values are
// decimal strings as found in the exchange info filters.
func PriceTransform(price, tickSize string) (string, error) {
	return snapToStep(price, tickSize)
}

// QuantityTransform rounds quantity down to a multiple of stepSize, the
// quantity analogue of PriceTransform.
func QuantityTransform(quantity, stepSize string) (string, error) {
	return snapToStep(quantity, stepSize)
}

func snapToStep(value, step string) (string, error) {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return "", fmt.Errorf("parsing value %q: %w", value, err)
	}
	s, err := decimal.NewFromString(step)
	if err != nil {
		return "", fmt.Errorf("parsing step %q: %w", step, err)
	}
	if s.IsZero() {
		return v.String(), nil
	}
	return v.Div(s).Floor().Mul(s).String(), nil
}
