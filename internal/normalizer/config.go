package normalizer

import (
	"github.com/momopress-backend/internal/config"
	"github.com/momopress-backend/internal/domain/rules"
)

// FromConfig builds a Normalizer from the default rule set or cfg.File, then applies
// the RULES_RAW_CATEGORIES and RULES_ICON_PREFIX overrides.
func FromConfig(cfg *config.RulesConfig) (*Normalizer, error) {
	rs := rules.DefaultRuleSet()
	if cfg.File != "" {
		loaded, err := rules.LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		rs = loaded
	}

	if cfg.RawCategories {
		rs.RawCategories = true
	}
	if cfg.IconPrefix != "" {
		rs.IconPrefix = cfg.IconPrefix
	}
	return New(rs)
}
