package factorial

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ygrebnov/errorc"
)

// Invalid is the value substituted for input lines which cannot be parsed.
// It is indistinguishable from a parsed zero: both compute to 1 and both are
// rendered as InvalidMessage.
const Invalid = 0

// InvalidMessage replaces the "<n> = <factorial>" line for Invalid values.
const InvalidMessage = "Factorial can't be calculated as an empty string|character|text was provided"

// cancelCheckEvery is the number of multiplications between context checks in ComputeContext.
const cancelCheckEvery = 1024

// ParseValue converts an input line into an input value.
// Lines which are not base-10 integers in the 32-bit range yield Invalid.
func ParseValue(line string) int {
	v, _ := parseLine(line)
	return v
}

// Compute returns n! computed iteratively. Compute(0) and Compute(1) are 1.
// A negative n returns an error matching ErrInvalidArgument.
func Compute(n int) (*big.Int, error) {
	return ComputeContext(context.Background(), n)
}

// ComputeContext is Compute which aborts with ErrCancelled when ctx is done.
func ComputeContext(ctx context.Context, n int) (*big.Int, error) {
	if n < 0 {
		return nil, errorc.With(ErrInvalidArgument, errorc.String("n", strconv.Itoa(n)))
	}

	result := big.NewInt(1)
	factor := new(big.Int)
	for i := 2; i <= n; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
			}
		}
		result.Mul(result, factor.SetInt64(int64(i)))
	}

	return result, nil
}

// Result is one output record: an input value and its factorial.
type Result struct {
	Value     int
	Factorial *big.Int
}

// String renders the output line for r, without the trailing newline.
func (r Result) String() string {
	if r.Value == Invalid {
		return InvalidMessage
	}
	return strconv.Itoa(r.Value) + " = " + r.Factorial.String()
}
