package dondominio

import (
	"net/netip"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	rePhone       = regexp.MustCompile(`^\+\d+\.\d+$`)
	reCountryCode = regexp.MustCompile(`(?i)^[A-Z]{2}$`)
	reContactID   = regexp.MustCompile(`(?i)^[A-Z]+-[0-9]+$`)
	reDate        = regexp.MustCompile(`^[0-9]{4}-?(0[1-9]|1[0-2])-?(0[1-9]|[1-2][0-9]|3[0-1])$`)
	reCNAME       = regexp.MustCompile(`(?i)^[a-z0-9.-]+\.[a-z]{2,30}$`)
)

var (
	syntaxOnce sync.Once
	syntax     *validator.Validate
)

func syntaxValidator() *validator.Validate {
	syntaxOnce.Do(func() { syntax = validator.New() })
	return syntax
}

// IsCNAME reports whether s looks like a host name: dot-separated labels of
// letters, digits and hyphens ending in a 2-30 letter TLD. Label length and total
// length are not checked.
func IsCNAME(s string) bool {
	if !reCNAME.MatchString(s) {
		return false
	}
	if containsAny(s, "..", "-.", ".-") {
		return false
	}
	return !strings.HasPrefix(s, ".") && !strings.HasPrefix(s, "-")
}

// IsPhone reports whether s is in +<dialing code>.<number> form.
func IsPhone(s string) bool { return rePhone.MatchString(s) }

func IsCountryCode(s string) bool { return reCountryCode.MatchString(s) }

func IsContactID(s string) bool { return reContactID.MatchString(s) }

// IsDate accepts YYYYMMDD and YYYY-MM-DD with month 01-12 and day 01-31.
func IsDate(s string) bool { return reDate.MatchString(s) }

func IsEmail(s string) bool {
	return s != "" && syntaxValidator().Var(s, "email") == nil
}

func IsURL(s string) bool {
	return s != "" && syntaxValidator().Var(s, "url") == nil
}

// IsPublicIPv4 reports whether s is an IPv4 address outside private and reserved ranges.
func IsPublicIPv4(s string) bool {
	if syntaxValidator().Var(s, "ipv4") != nil {
		return false
	}
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return false
	}
	return !addr.IsPrivate() && !inAny(addr, reservedV4)
}

// IsPublicIPv6 reports whether s is an IPv6 address outside private and reserved ranges.
func IsPublicIPv6(s string) bool {
	if syntaxValidator().Var(s, "ipv6") != nil {
		return false
	}
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is6() || addr.Zone() != "" {
		return false
	}
	return !addr.IsPrivate() && !inAny(addr, reservedV6)
}

var (
	reservedV4 = mustPrefixes("0.0.0.0/8", "127.0.0.0/8", "169.254.0.0/16", "240.0.0.0/4")
	reservedV6 = mustPrefixes("::/128", "::1/128", "::ffff:0:0/96", "fe80::/10", "2001:db8::/32")
)

func mustPrefixes(ss ...string) []netip.Prefix {
	out := make([]netip.Prefix, 0, len(ss))
	for _, s := range ss {
		out = append(out, netip.MustParsePrefix(s))
	}
	return out
}

func inAny(addr netip.Addr, pfxs []netip.Prefix) bool {
	for _, p := range pfxs {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// checkFormat dispatches a Format to its predicate.
func checkFormat(f Format, s string) bool {
	switch f {
	case FormatEmail:
		return IsEmail(s)
	case FormatPhone:
		return IsPhone(s)
	case FormatURL:
		return IsURL(s)
	case FormatDomain:
		return IsCNAME(strings.ToLower(s))
	case FormatCountryCode:
		return IsCountryCode(s)
	case FormatContactID:
		return IsContactID(s)
	case FormatDate:
		return IsDate(s)
	case FormatIPv4:
		return IsPublicIPv4(s)
	case FormatIPv6:
		return IsPublicIPv6(s)
	default:
		return false
	}
}
