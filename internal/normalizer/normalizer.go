// Package normalizer turns raw mobile-money export records into the display-ready
// transactions shown by the app, for one calendar month at a time.
//
// A Normalizer is immutable after New and safe for concurrent use. Normalize has no
// side effects: inputs are never modified and every call allocates its own output.
package normalizer

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/momopress-backend/internal/domain/rules"
	"github.com/momopress-backend/internal/domain/transaction"
)

// Normalizer applies a compiled rules.RuleSet.
type Normalizer struct {
	rs           rules.RuleSet
	categories   map[string]rules.Category
	outgoing     map[string]struct{}
	namePatterns []string
	bankTransfer *regexp.Regexp

	incomingPrefixes   []string
	incomingSubstrings []string
	outgoingPrefixes   []string
}

// New validates and compiles rs.
func New(rs rules.RuleSet) (*Normalizer, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}

	n := &Normalizer{
		rs:         rs,
		categories: make(map[string]rules.Category, len(rs.Categories)),
		outgoing:   make(map[string]struct{}, len(rs.OutgoingCategories)),
	}
	for k, v := range rs.Categories {
		n.categories[strings.ToLower(k)] = v
	}
	for _, c := range rs.OutgoingCategories {
		n.outgoing[strings.ToLower(c)] = struct{}{}
	}
	for _, r := range rs.NameRules {
		n.namePatterns = append(n.namePatterns, strings.ToLower(r.Pattern))
	}
	n.incomingPrefixes = lowerAll(rs.IncomingPrefixes)
	n.incomingSubstrings = lowerAll(rs.IncomingSubstrings)
	n.outgoingPrefixes = lowerAll(rs.OutgoingPrefixes)
	if rs.BankTransferPattern != "" {
		n.bankTransfer = regexp.MustCompile(rs.BankTransferPattern)
	}
	return n, nil
}

// Default returns a Normalizer for rules.DefaultRuleSet.
func Default() *Normalizer {
	n, err := New(rules.DefaultRuleSet())
	if err != nil {
		panic(fmt.Sprintf("default rule set does not compile: %v", err))
	}
	return n
}

// RuleSet returns the rules this normalizer was built from.
func (n *Normalizer) RuleSet() rules.RuleSet {
	return n.rs
}

// Normalize keeps the records dated inside period and converts them, preserving
// input order. Records whose DateTime cannot be parsed are dropped. A kept record
// without Amount, TransactionType or Status fails the whole call with
// transaction.ErrMissingField.
func (n *Normalizer) Normalize(records []transaction.RawTransaction, period transaction.Period) ([]transaction.NormalizedTransaction, error) {
	out := make([]transaction.NormalizedTransaction, 0)

	for i := range records {
		rec := &records[i]
		if !inPeriod(rec.DateTime, period) {
			continue
		}
		if err := checkRequired(i, rec); err != nil {
			return nil, err
		}
		out = append(out, n.transform(rec))
	}
	return out, nil
}

func checkRequired(index int, rec *transaction.RawTransaction) error {
	missing := ""
	switch {
	case rec.Amount == nil:
		missing = "Amount"
	case rec.TransactionType == nil:
		missing = "TransactionType"
	case rec.Status == nil:
		missing = "Status"
	}
	if missing == "" {
		return nil
	}
	return transaction.ErrMissingField{Index: index, TransactionID: rec.TransactionID, Field: missing}
}

func (n *Normalizer) transform(rec *transaction.RawTransaction) transaction.NormalizedTransaction {
	date, clock := splitDateTime(rec.DateTime)
	name, phone := n.participant(rec.Participants)

	rawType := *rec.TransactionType
	var category, icon string
	if n.rs.RawCategories {
		category = rawType
	} else {
		c, ok := n.categories[strings.ToLower(rawType)]
		if !ok {
			c = n.rs.Fallback
		}
		category = c.Name
		icon = n.icon(c.Icon)
	}

	status, statusIcon := n.status(*rec.Status)

	return transaction.NormalizedTransaction{
		ID:         n.id(date, rec.TransactionID),
		Name:       name,
		Phone:      phone,
		Amount:     n.signedAmount(*rec.Amount, rec.MessageText, category, name),
		Category:   category,
		Icon:       icon,
		StatusIcon: statusIcon,
		Status:     status,
		Date:       date,
		Time:       clock,
	}
}

func (n *Normalizer) id(date string, txID transaction.TransactionID) string {
	digits := strings.ReplaceAll(date, "-", "")
	id := string(txID)
	if pad := 4 - utf8.RuneCountInString(id); pad > 0 {
		id = strings.Repeat("0", pad) + id
	}
	return n.rs.IDPrefix + digits + id
}

func (n *Normalizer) participant(ps []transaction.Participant) (string, string) {
	if len(ps) == 0 {
		return n.rs.UnknownName, ""
	}
	name := ps[0].Name
	if n.bankTransfer != nil && n.bankTransfer.MatchString(name) {
		name = n.rs.BankTransferName
	}
	return name, ps[0].PhoneNumber
}

// signedAmount infers the direction of money from, in order: the narration,
// the category, and the name rules. Anything unclassified is incoming.
func (n *Normalizer) signedAmount(amount float64, message, category, name string) float64 {
	magnitude := math.Abs(amount)
	if magnitude == 0 {
		return 0
	}

	msg := strings.ToLower(message)
	for _, p := range n.incomingPrefixes {
		if strings.HasPrefix(msg, p) {
			return magnitude
		}
	}
	for _, s := range n.incomingSubstrings {
		if strings.Contains(msg, s) {
			return magnitude
		}
	}
	for _, p := range n.outgoingPrefixes {
		if strings.HasPrefix(msg, p) {
			return -magnitude
		}
	}

	if _, ok := n.outgoing[strings.ToLower(category)]; ok {
		return -magnitude
	}
	lowerName := strings.ToLower(name)
	for _, p := range n.namePatterns {
		if strings.Contains(lowerName, p) {
			return -magnitude
		}
	}
	return magnitude
}

func (n *Normalizer) status(raw string) (string, string) {
	st := n.rs.Status
	if strings.EqualFold(raw, st.Completed) {
		return st.CompletedLabel, n.icon(st.CompletedIcon)
	}
	return raw, n.icon(st.OtherIcon)
}

func (n *Normalizer) icon(name string) string {
	if name == "" {
		return ""
	}
	return n.rs.IconPrefix + name
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
