// Package rules holds the data that drives transaction normalization: the category
// table, the outgoing-category set, narration markers and per-name exceptions.
// Nothing in here executes rules; see package normalizer for that.
package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Effect is what a name rule does to the sign of a matching record.
type Effect string

// EffectOutgoing classifies a matching record as money leaving the account.
const EffectOutgoing Effect = "outgoing"

// Category is a display category with its icon name.
type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// NameRule matches a lowercased substring of the resolved participant name.
type NameRule struct {
	Pattern string `json:"pattern"`
	Effect  Effect `json:"effect"`
	Note    string `json:"note,omitempty"`
}

// StatusRule maps the raw Status to a display status.
type StatusRule struct {
	Completed      string `json:"completed"`       // raw value, compared case-insensitively
	CompletedLabel string `json:"completed_label"` // shown instead of the raw value
	CompletedIcon  string `json:"completed_icon"`
	OtherIcon      string `json:"other_icon"`
}

// RuleSet is the full configuration of a normalizer.
//
// Categories is keyed by lowercase TransactionType. OutgoingCategories holds
// lowercase category names (raw TransactionType values when RawCategories is set).
type RuleSet struct {
	Categories         map[string]Category `json:"categories"`
	Fallback           Category            `json:"fallback"`
	OutgoingCategories []string            `json:"outgoing_categories"`
	NameRules          []NameRule          `json:"name_rules"`

	IncomingPrefixes   []string `json:"incoming_prefixes"`
	IncomingSubstrings []string `json:"incoming_substrings"`
	OutgoingPrefixes   []string `json:"outgoing_prefixes"`

	BankTransferPattern string `json:"bank_transfer_pattern"`
	BankTransferName    string `json:"bank_transfer_name"`
	UnknownName         string `json:"unknown_name"`
	IDPrefix            string `json:"id_prefix"`

	Status StatusRule `json:"status"`

	// IconPrefix is prepended to every icon, e.g. "fa-" for Font Awesome class names.
	IconPrefix string `json:"icon_prefix"`
	// RawCategories keeps TransactionType as the category and leaves icons empty.
	RawCategories bool `json:"raw_categories"`
}

// DefaultRuleSet returns the rules the mobile app ships with.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Categories: map[string]Category{
			"deposit":       {Name: "Income", Icon: "hand-holding-dollar"},
			"payment":       {Name: "Merchant", Icon: "store"},
			"transfer":      {Name: "Transfers", Icon: "arrow-right-arrow-left"},
			"other":         {Name: "Others", Icon: "circle-question"},
			"utilities":     {Name: "Utilities", Icon: "bolt"},
			"subscriptions": {Name: "Subscriptions", Icon: "file-invoice-dollar"},
			"loans":         {Name: "Loans", Icon: "money-bill-wave"},
			"credit card":   {Name: "Credit Card", Icon: "credit-card"},
			"insurance":     {Name: "Insurance", Icon: "shield-alt"},
			"donations":     {Name: "Donations", Icon: "hand-holding-heart"},
			"taxes":         {Name: "Taxes", Icon: "receipt"},
			"memberships":   {Name: "Memberships", Icon: "users"},
			"gym":           {Name: "Gym", Icon: "dumbbell"},
		},
		Fallback: Category{Name: "Unknown", Icon: "question"},
		OutgoingCategories: []string{
			"bills", "bundles", "unknown", "other", "utilities", "subscriptions", "loans",
			"credit card", "insurance", "donations", "taxes", "memberships", "gym", "merchant",
		},
		NameRules: []NameRule{
			{
				Pattern: "linda",
				Effect:  EffectOutgoing,
				Note:    "account-holder exception carried over from the mobile app; origin unknown, do not generalize",
			},
		},
		IncomingPrefixes:    []string{"you have received"},
		IncomingSubstrings:  []string{"deposit"},
		OutgoingPrefixes:    []string{"your payment of", "transferred to"},
		BankTransferPattern: "(?i)your money account at",
		BankTransferName:    "Bank Transfer",
		UnknownName:         "Unknown",
		IDPrefix:            "MPR",
		Status: StatusRule{
			Completed:      "confirmed",
			CompletedLabel: "Completed",
			CompletedIcon:  "circle-check",
			OtherIcon:      "circle-xmark",
		},
	}
}

// LoadFile overlays the JSON document at path on top of DefaultRuleSet.
// Sections absent from the file keep their defaults; categories are merged key by key,
// lists are replaced as a whole.
func LoadFile(path string) (RuleSet, error) {
	rs := DefaultRuleSet()

	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("decode rules file %s: %w", path, err)
	}
	rs.Categories = lowerKeys(rs.Categories)

	if err := rs.Validate(); err != nil {
		return RuleSet{}, err
	}
	return rs, nil
}

// Validate checks that the rule set can be compiled.
func (rs RuleSet) Validate() error {
	var problems []string

	if rs.BankTransferPattern != "" {
		if _, err := regexp.Compile(rs.BankTransferPattern); err != nil {
			problems = append(problems, fmt.Sprintf("bank_transfer_pattern: %v", err))
		}
	}
	for i, rule := range rs.NameRules {
		if strings.TrimSpace(rule.Pattern) == "" {
			problems = append(problems, fmt.Sprintf("name_rules[%d]: empty pattern", i))
		}
		if rule.Effect != EffectOutgoing {
			problems = append(problems, fmt.Sprintf("name_rules[%d]: unsupported effect %q", i, rule.Effect))
		}
	}
	if rs.Status.Completed == "" {
		problems = append(problems, "status.completed is required")
	}

	if len(problems) > 0 {
		return errors.New("invalid rule set: " + strings.Join(problems, ", "))
	}
	return nil
}

func lowerKeys(in map[string]Category) map[string]Category {
	out := make(map[string]Category, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}
