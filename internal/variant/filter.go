package variant

import (
	"strings"

	"github.com/Aadcode/greenmile-integration/internal/domain"
)

// FilterOptions controls which variants FilterProduct drops.
type FilterOptions struct {
	// ExcludePrefixes removes variants whose title starts with any of these
	// prefixes (case-insensitive). Option values are filtered the same way.
	ExcludePrefixes []string

	// Custom, when set, keeps only variants it returns true for. Applied
	// after the prefix check.
	Custom func(v domain.Variant) bool
}

// FilterProduct returns a copy of p with excluded variants and option values
// removed. The input product is never mutated. Variants without a title are
// kept.
func FilterProduct(p *domain.Product, opts FilterOptions) *domain.Product {
	if p == nil {
		return nil
	}

	out := *p
	out.Variants = make([]domain.Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.Title != "" && startsWithExcluded(v.Title, opts.ExcludePrefixes) {
			continue
		}
		if opts.Custom != nil && !opts.Custom(v) {
			continue
		}
		out.Variants = append(out.Variants, v)
	}

	out.Options = make([]domain.Option, 0, len(p.Options))
	for _, o := range p.Options {
		filtered := o
		filtered.Values = make([]domain.OptionValue, 0, len(o.Values))
		for _, val := range o.Values {
			if startsWithExcluded(val.Value, opts.ExcludePrefixes) {
				continue
			}
			filtered.Values = append(filtered.Values, val)
		}
		out.Options = append(out.Options, filtered)
	}

	return &out
}

func startsWithExcluded(text string, prefixes []string) bool {
	if text == "" || len(prefixes) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
