// Package insights derives the history and spending views from normalized transactions.
package insights

import (
	"math"
	"strings"

	"github.com/momopress-backend/internal/domain/transaction"
)

// OthersBucket collects spending whose category matches no other bucket.
const OthersBucket = "Others"

// DefaultBuckets are the spending categories shown on the spending screen.
var DefaultBuckets = []string{"Transfers", "Airtime", "Merchant", "Utilities", "CashOut", OthersBucket}

// Summary is the sent/received total of a transaction list.
type Summary struct {
	Received float64 `json:"received" bson:"received"`
	Sent     float64 `json:"sent" bson:"sent"`
	Count    int     `json:"count" bson:"count"`
}

// BucketTotal is the spending of one bucket.
type BucketTotal struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"` // share of total spending, 0..100
}

// Breakdown is the spending view for one period.
type Breakdown struct {
	Total    float64       `json:"total"`
	Budget   float64       `json:"budget"`
	Progress float64       `json:"progress"` // percent of budget used, capped at 100
	Buckets  []BucketTotal `json:"buckets"`
}

// Search filters txs by a free-text query, keeping their order.
// A record matches when its name or category contains the query case-insensitively,
// or its phone contains the lowercased query.
func Search(txs []transaction.NormalizedTransaction, query string) []transaction.NormalizedTransaction {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return txs
	}

	out := make([]transaction.NormalizedTransaction, 0, len(txs))
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Name), q) ||
			strings.Contains(tx.Phone, q) ||
			strings.Contains(strings.ToLower(tx.Category), q) {
			out = append(out, tx)
		}
	}
	return out
}

// Summarize adds up received (positive) and sent (everything else) amounts.
func Summarize(txs []transaction.NormalizedTransaction) Summary {
	s := Summary{Count: len(txs)}
	for _, tx := range txs {
		if tx.Amount > 0 {
			s.Received += tx.Amount
		} else {
			s.Sent += math.Abs(tx.Amount)
		}
	}
	return s
}

// Spending groups outgoing amounts into buckets and measures them against budget.
// Every bucket is present in the result, in the given order, even when empty.
// A category that equals no bucket name (case-insensitively) counts as OthersBucket.
func Spending(txs []transaction.NormalizedTransaction, buckets []string, budget float64) Breakdown {
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}

	index := make(map[string]int, len(buckets))
	totals := make([]BucketTotal, len(buckets))
	for i, b := range buckets {
		index[strings.ToLower(b)] = i
		totals[i] = BucketTotal{Name: b}
	}
	others, hasOthers := index[strings.ToLower(OthersBucket)]
	if !hasOthers {
		others = len(totals)
		totals = append(totals, BucketTotal{Name: OthersBucket})
	}

	var total float64
	for _, tx := range txs {
		if tx.Amount >= 0 {
			continue
		}
		spent := math.Abs(tx.Amount)
		i, ok := index[strings.ToLower(tx.Category)]
		if !ok {
			i = others
		}
		totals[i].Amount += spent
		total += spent
	}

	for i := range totals {
		if total > 0 {
			totals[i].Percent = totals[i].Amount / total * 100
		}
	}

	return Breakdown{
		Total:    total,
		Budget:   budget,
		Progress: Progress(total, budget),
		Buckets:  totals,
	}
}

// Progress is spent as a percentage of budget, capped at 100.
// A non-positive budget counts as fully used once anything is spent.
func Progress(spent, budget float64) float64 {
	if budget <= 0 {
		if spent > 0 {
			return 100
		}
		return 0
	}
	return math.Min(spent/budget*100, 100)
}
