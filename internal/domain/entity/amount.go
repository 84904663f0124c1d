package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/helphub-app/helphub-server/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for
// money donation amounts
const MaxDecimalPlaces = 2

// ValidateMoneyAmount validates a money donation amount string and converts
// it to paise (hundredths). The amount must be a positive decimal with at
// most two decimal places. String arithmetic avoids floating point drift.
func ValidateMoneyAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, fmt.Errorf("%w: must be positive", errs.ErrInvalidAmount)
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string
	if len(parts) == 1 {
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: must be positive", errs.ErrInvalidAmount)
	}

	return value, nil
}
