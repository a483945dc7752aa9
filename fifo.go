package lots

import "github.com/shopspring/decimal"

// Lot is the open remainder of a single buy.
type Lot struct {
	Date     string   // date of the originating buy
	Quantity Quantity // always positive
	Price    Money    // unit cost of the originating buy
}

// Cost returns the total cost of the lot (quantity * price).
func (l Lot) Cost() Money { return l.Price.Mul(l.Quantity) }

// Disposal is the part of a sell matched against a single lot.
type Disposal struct {
	Date     string // date of the sell
	Acquired string // date of the lot
	Quantity Quantity
	Cost     Money // unit cost of the lot
	Proceeds Money // unit price of the sell
}

// Gain returns the realised gain of this disposal.
func (d Disposal) Gain() Money { return d.Proceeds.Sub(d.Cost).Mul(d.Quantity) }

// Position is the state of the inventory after a sequence of trades.
type Position struct {
	Realised    Money    // cumulative realised gain or loss
	Remaining   Quantity // total open quantity
	AverageCost Money    // weighted average unit cost of the open lots, zero when flat
	Lots        []Lot    // open lots, oldest first
	Disposals   []Disposal
	// Oversold is the sold quantity that found no lot to match. It has no
	// effect on any other field.
	Oversold Quantity
}

// Currency returns the currency of the position values.
func (p Position) Currency() string { return p.Realised.Currency() }

// Cost returns the total cost of the open lots.
func (p Position) Cost() Money {
	total := M(0, p.Currency())
	for _, l := range p.Lots {
		total = total.Add(l.Cost())
	}
	return total
}

// IsFlat reports whether there is no open quantity left.
func (p Position) IsFlat() bool { return p.Remaining.IsZero() }

// FIFO computes the position resulting from trades, processed in the given
// order, realising gains first-in first-out.
//
// Zero-quantity trades are ignored. A sell larger than the open quantity
// consumes every lot and the excess is reported in Oversold only: short
// positions are not modeled.
//
// Sells are matched exactly, however small. A lot left with 1e-9 units or
// less is closed and that residual is no longer counted in Remaining.
//
// All monetary values of the position are expressed in the first non-empty
// currency of the trades. FIFO never fails: invalid trades (see [Validate])
// produce consistent but meaningless results.
func FIFO(trades []Trade) Position {
	cur := currencyOf(trades)
	var (
		queue    []Lot
		realised decimal.Decimal
		pos      Position
	)

	for _, t := range trades {
		price := t.Price.In(cur)
		switch t.Side() {
		case Buy:
			queue = append(queue, Lot{Date: t.Date, Quantity: t.Quantity, Price: price})
		case Sell:
			toSell := t.Quantity.Abs()
			for !toSell.IsZero() && len(queue) > 0 {
				front := &queue[0]
				consumed := toSell.Min(front.Quantity)
				realised = realised.Add(price.value.Sub(front.Price.value).Mul(consumed.value))
				pos.Disposals = append(pos.Disposals, Disposal{
					Date:     t.Date,
					Acquired: front.Date,
					Quantity: consumed,
					Cost:     front.Price,
					Proceeds: price,
				})
				front.Quantity = front.Quantity.Sub(consumed)
				toSell = toSell.Sub(consumed)
				if front.Quantity.isDust() {
					queue = queue[1:]
				}
			}
			if !toSell.IsZero() {
				pos.Oversold = pos.Oversold.Add(toSell)
			}
		}
	}

	var remaining, cost decimal.Decimal
	for _, l := range queue {
		remaining = remaining.Add(l.Quantity.value)
		cost = cost.Add(l.Quantity.value.Mul(l.Price.value))
	}

	pos.Lots = make([]Lot, len(queue))
	copy(pos.Lots, queue)
	pos.Realised = Money{value: realised, cur: cur}
	pos.Remaining = Quantity{value: remaining}
	pos.AverageCost = Money{cur: cur}
	if remaining.IsPositive() {
		pos.AverageCost.value = cost.Div(remaining)
	}
	return pos
}

// currencyOf returns the first currency set among the trades prices.
func currencyOf(trades []Trade) string {
	for _, t := range trades {
		if c := t.Price.Currency(); c != "" {
			return c
		}
	}
	return ""
}
