package tax

import (
	"math"
	"sort"

	"salon-scheduler/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeRate   = errs.New("tax rate must not be negative")
	ErrNegativeAmount = errs.New("tax-inclusive amount must not be negative")
	ErrInvalidRate    = errs.New("tax rate is not a decimal number")
	ErrAmountOverflow = errs.New("amount exceeds the supported range")
)

var one = decimal.NewFromInt(1)

// Rate is a fractional tax rate such as 0.10.
type Rate struct {
	d decimal.Decimal
}

func NewRate(d decimal.Decimal) (Rate, error) {
	if d.IsNegative() {
		return Rate{}, errs.Wrapf(ErrNegativeRate, "rate=%s", d.String())
	}
	return Rate{d: d}, nil
}

func ParseRate(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, errs.Mark(errs.Wrapf(err, "rate=%q", s), ErrInvalidRate)
	}
	return NewRate(d)
}

// MustParseRate is for constants and tests.
func MustParseRate(s string) Rate {
	r, err := ParseRate(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rate) Decimal() decimal.Decimal {
	return r.d
}

// String is canonical: "0.10" and "0.1" render identically.
func (r Rate) String() string {
	return r.d.String()
}

func (r Rate) Equal(o Rate) bool {
	return r.d.Equal(o.d)
}

// Breakdown decomposes a tax-inclusive total. Net+Tax always equals Total.
type Breakdown struct {
	Total int64
	Net   int64
	Tax   int64
}

func (b Breakdown) Add(o Breakdown) Breakdown {
	return Breakdown{Total: b.Total + o.Total, Net: b.Net + o.Net, Tax: b.Tax + o.Tax}
}

// Split backs tax out of an inclusive total: tax = round(total - total/(1+rate)),
// rounded half away from zero, and net = total - tax.
func Split(totalInclusive int64, rate Rate) (Breakdown, error) {
	if totalInclusive < 0 {
		return Breakdown{}, errs.Wrapf(ErrNegativeAmount, "total=%d", totalInclusive)
	}
	if rate.d.IsNegative() {
		return Breakdown{}, ErrNegativeRate
	}

	total := decimal.NewFromInt(totalInclusive)
	exclusive := total.Div(one.Add(rate.d))
	taxAmount := total.Sub(exclusive).Round(0).IntPart()

	return Breakdown{
		Total: totalInclusive,
		Net:   totalInclusive - taxAmount,
		Tax:   taxAmount,
	}, nil
}

// Portion is an inclusive amount charged at a single rate.
type Portion struct {
	Rate   Rate
	Amount int64
}

type RateBreakdown struct {
	Rate Rate
	Breakdown
}

// SplitPortions groups amounts by rate, splits each group once and sums the groups.
// Groups are returned ordered by rate.
func SplitPortions(portions []Portion) (Breakdown, []RateBreakdown, error) {
	totals := make(map[string]int64)
	rates := make(map[string]Rate)
	var grand int64
	for _, p := range portions {
		if p.Amount < 0 {
			return Breakdown{}, nil, errs.Wrapf(ErrNegativeAmount, "amount=%d", p.Amount)
		}
		// Group totals never exceed the grand total, so one check covers both.
		if p.Amount > math.MaxInt64-grand {
			return Breakdown{}, nil, errs.Wrapf(ErrAmountOverflow, "sum %d + %d", grand, p.Amount)
		}
		grand += p.Amount
		key := p.Rate.String()
		totals[key] += p.Amount
		rates[key] = p.Rate
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return rates[keys[i]].d.LessThan(rates[keys[j]].d)
	})

	var sum Breakdown
	groups := make([]RateBreakdown, 0, len(keys))
	for _, k := range keys {
		b, err := Split(totals[k], rates[k])
		if err != nil {
			return Breakdown{}, nil, err
		}
		groups = append(groups, RateBreakdown{Rate: rates[k], Breakdown: b})
		sum = sum.Add(b)
	}
	return sum, groups, nil
}
