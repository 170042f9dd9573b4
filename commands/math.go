package commands

import (
	"math"
	"strconv"
	"strings"

	"github.com/vernacular-lang/vernacular/interp"
)

// mathResult prints a computed value and binds it to "result" so the next
// command can pick it up.
func (r *Runtime) mathResult(sc *interp.Scopes, v float64) (interp.Outcome, error) {
	sc.Assign("result", normalizeNumber(v))
	r.printf("The result is %s", formatValue(normalizeNumber(v)))
	return interp.Normal, nil
}

// normalizeNumber collapses whole floats back to ints so arithmetic on
// integers keeps printing like integers.
func normalizeNumber(f float64) any {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return int(f)
	}
	return f
}

func (r *Runtime) mathPatterns() []pattern {
	binop := func(example string, expr string, op func(a, b float64) (float64, error)) pattern {
		return cmd(expr, example, func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
			a, err := numericOperand(sc, m[1])
			if err != nil {
				return interp.Normal, err
			}
			b, err := numericOperand(sc, m[2])
			if err != nil {
				return interp.Normal, err
			}
			v, err := op(a, b)
			if err != nil {
				return interp.Normal, err
			}
			return r.mathResult(sc, v)
		})
	}
	unop := func(example string, expr string, op func(a float64) (float64, error)) pattern {
		return cmd(expr, example, func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
			a, err := numericOperand(sc, m[1])
			if err != nil {
				return interp.Normal, err
			}
			v, err := op(a)
			if err != nil {
				return interp.Normal, err
			}
			return r.mathResult(sc, v)
		})
	}

	return []pattern{
		cmd(`add (\S+) to (\w+)`,
			`add N to VAR`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				delta, err := numericOperand(sc, m[1])
				if err != nil {
					return interp.Normal, err
				}
				current, err := numericOperand(sc, m[2])
				if err != nil {
					return interp.Normal, err
				}
				sc.Assign(m[2], normalizeNumber(current+delta))
				r.printf("%s is now %s", m[2], formatValue(normalizeNumber(current+delta)))
				return interp.Normal, nil
			}),
		binop(`add A and B`, `add (\S+) and (\S+)`,
			func(a, b float64) (float64, error) { return a + b, nil }),
		binop(`subtract A from B`, `subtract (\S+) from (\S+)`,
			func(a, b float64) (float64, error) { return b - a, nil }),
		binop(`multiply A by B`, `multiply (\S+) (?:by|and) (\S+)`,
			func(a, b float64) (float64, error) { return a * b, nil }),
		binop(`divide A by B`, `divide (\S+) by (\S+)`,
			func(a, b float64) (float64, error) {
				if b == 0 {
					return 0, interp.NewEvaluationError(0, "I can't divide by zero")
				}
				return a / b, nil
			}),
		unop(`square root of N`, `(?:calculate |what is )?(?:the )?square root of (\S+)`,
			func(a float64) (float64, error) {
				if a < 0 {
					return 0, interp.NewEvaluationError(0, "I can't take the square root of a negative number")
				}
				return math.Sqrt(a), nil
			}),
		binop(`raise A to the power of B`, `(?:raise )?(\S+) to the power (?:of )?(\S+)`,
			func(a, b float64) (float64, error) { return math.Pow(a, b), nil }),
		cmd(`(?:pick|generate|give me) a random number between (\S+) and (\S+)`,
			`pick a random number between A and B`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				lo, err := numericOperand(sc, m[1])
				if err != nil {
					return interp.Normal, err
				}
				hi, err := numericOperand(sc, m[2])
				if err != nil {
					return interp.Normal, err
				}
				if hi < lo {
					lo, hi = hi, lo
				}
				n := int(lo) + r.rng.Intn(int(hi)-int(lo)+1)
				sc.Assign("result", n)
				r.printf("Your random number is %d", n)
				return interp.Normal, nil
			}),
		cmd(`(?:find )?the (minimum|smallest|maximum|largest|average|mean) of (.+)`,
			`find the minimum of A, B, C`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				nums, err := r.numberSeries(sc, m[2])
				if err != nil {
					return interp.Normal, err
				}
				if len(nums) == 0 {
					return interp.Normal, interp.NewEvaluationError(0, "there are no numbers to work with")
				}
				var v float64
				switch strings.ToLower(m[1]) {
				case "minimum", "smallest":
					v = nums[0]
					for _, n := range nums[1:] {
						v = math.Min(v, n)
					}
				case "maximum", "largest":
					v = nums[0]
					for _, n := range nums[1:] {
						v = math.Max(v, n)
					}
				default:
					for _, n := range nums {
						v += n
					}
					v /= float64(len(nums))
				}
				return r.mathResult(sc, v)
			}),
		cmd(`round (\S+)(?: to (\d+) decimal places?)?`,
			`round N to D decimal places`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				a, err := numericOperand(sc, m[1])
				if err != nil {
					return interp.Normal, err
				}
				places := 0
				if m[2] != "" {
					places, _ = strconv.Atoi(m[2])
				}
				shift := math.Pow(10, float64(places))
				return r.mathResult(sc, math.Round(a*shift)/shift)
			}),
		cmd(`(?:calculate )?the (sine|cosine|tangent) of (\S+)`,
			`calculate the sine of DEGREES`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				deg, err := numericOperand(sc, m[2])
				if err != nil {
					return interp.Normal, err
				}
				rad := deg * math.Pi / 180
				var v float64
				switch strings.ToLower(m[1]) {
				case "sine":
					v = math.Sin(rad)
				case "cosine":
					v = math.Cos(rad)
				default:
					v = math.Tan(rad)
				}
				return r.mathResult(sc, v)
			}),
		unop(`calculate the natural log of N`, `(?:calculate )?the natural log of (\S+)`,
			func(a float64) (float64, error) {
				if a <= 0 {
					return 0, interp.NewEvaluationError(0, "the log of %s is undefined", formatValue(normalizeNumber(a)))
				}
				return math.Log(a), nil
			}),
		unop(`calculate the log of N`, `(?:calculate )?the log of (\S+)`,
			func(a float64) (float64, error) {
				if a <= 0 {
					return 0, interp.NewEvaluationError(0, "the log of %s is undefined", formatValue(normalizeNumber(a)))
				}
				return math.Log10(a), nil
			}),
		unop(`the absolute value of N`, `(?:calculate )?the absolute value of (\S+)`,
			func(a float64) (float64, error) { return math.Abs(a), nil }),
		cmd(`(?:calculate )?the factorial of (\S+)`,
			`calculate the factorial of N`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				a, err := numericOperand(sc, m[1])
				if err != nil {
					return interp.Normal, err
				}
				n := int(a)
				if a != float64(n) || n < 0 {
					return interp.Normal, interp.NewEvaluationError(0, "factorial needs a whole number zero or above")
				}
				if n > 20 {
					return interp.Normal, interp.NewEvaluationError(0, "the factorial of %d is too large", n)
				}
				v := 1
				for i := 2; i <= n; i++ {
					v *= i
				}
				sc.Assign("result", v)
				r.printf("The result is %d", v)
				return interp.Normal, nil
			}),
	}
}

// numberSeries parses "3, 9, x" or a list variable name into numbers.
func (r *Runtime) numberSeries(sc *interp.Scopes, raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, ",") {
		if items, err := r.ResolveList(strings.TrimPrefix(raw, "list "), sc); err == nil {
			nums := make([]float64, 0, len(items))
			for _, item := range items {
				f, err := numericOperand(sc, formatValue(item))
				if err != nil {
					return nil, err
				}
				nums = append(nums, f)
			}
			return nums, nil
		}
	}
	var nums []float64
	for _, part := range strings.Split(raw, ",") {
		f, err := numericOperand(sc, part)
		if err != nil {
			return nil, err
		}
		nums = append(nums, f)
	}
	return nums, nil
}
