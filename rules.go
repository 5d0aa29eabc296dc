package dondominio

// Param holds what every rule carries regardless of its type.
type Param struct {
	Name     string
	Required bool
	// Bypass names a sibling parameter that satisfies a missing required one.
	Bypass string
}

// Rule is one entry of an operation's parameter map. The concrete variants are
// StringRule, IntegerRule, FloatRule, BooleanRule, ListRule and FormatRule.
type Rule interface {
	param() Param
}

// Rules is the ordered parameter map of a single API operation.
type Rules []Rule

// Flag adjusts the common part of a rule at declaration time.
type Flag func(*Param)

// Required marks the parameter as mandatory.
func Required(p *Param) { p.Required = true }

// Or lets another non-empty parameter stand in for this one when it is missing.
func Or(bypass string) Flag { return func(p *Param) { p.Bypass = bypass } }

func newParam(name string, flags []Flag) Param {
	p := Param{Name: name}
	for _, f := range flags {
		f(&p)
	}
	return p
}

type StringRule struct{ Param }

func (r StringRule) param() Param { return r.Param }

func String(name string, flags ...Flag) StringRule {
	return StringRule{newParam(name, flags)}
}

type BooleanRule struct{ Param }

func (r BooleanRule) param() Param { return r.Param }

func Boolean(name string, flags ...Flag) BooleanRule {
	return BooleanRule{newParam(name, flags)}
}

// IntegerRule accepts any Go integer kind, optionally bounded (inclusive).
type IntegerRule struct {
	Param
	Min, Max *int64
}

func (r IntegerRule) param() Param { return r.Param }

func Integer(name string, flags ...Flag) IntegerRule {
	return IntegerRule{Param: newParam(name, flags)}
}

func (r IntegerRule) AtLeast(min int64) IntegerRule { r.Min = &min; return r }
func (r IntegerRule) AtMost(max int64) IntegerRule  { r.Max = &max; return r }
func (r IntegerRule) Between(min, max int64) IntegerRule {
	return r.AtLeast(min).AtMost(max)
}

// FloatRule accepts float32 and float64, optionally bounded (inclusive).
type FloatRule struct {
	Param
	Min, Max *float64
}

func (r FloatRule) param() Param { return r.Param }

func Float(name string, flags ...Flag) FloatRule {
	return FloatRule{Param: newParam(name, flags)}
}

func (r FloatRule) AtLeast(min float64) FloatRule { r.Min = &min; return r }
func (r FloatRule) AtMost(max float64) FloatRule  { r.Max = &max; return r }
func (r FloatRule) Between(min, max float64) FloatRule {
	return r.AtLeast(min).AtMost(max)
}

// ListRule restricts the value to a fixed set.
type ListRule struct {
	Param
	Allowed []string
}

func (r ListRule) param() Param { return r.Param }

func List(name string, allowed []string, flags ...Flag) ListRule {
	return ListRule{Param: newParam(name, flags), Allowed: allowed}
}

// Format names a semantic string shape checked by FormatRule.
type Format int

const (
	FormatEmail Format = iota + 1
	FormatPhone
	FormatURL
	FormatDomain
	FormatCountryCode
	FormatContactID
	FormatDate
	FormatIPv4
	FormatIPv6
)

var formatNames = map[Format]string{
	FormatEmail:       "email",
	FormatPhone:       "phone",
	FormatURL:         "url",
	FormatDomain:      "domain",
	FormatCountryCode: "countryCode",
	FormatContactID:   "contactID",
	FormatDate:        "date",
	FormatIPv4:        "ipv4",
	FormatIPv6:        "ipv6",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// FormatRule checks a string value against one of the Format shapes.
type FormatRule struct {
	Param
	Format Format
}

func (r FormatRule) param() Param { return r.Param }

func formatRule(f Format, name string, flags []Flag) FormatRule {
	return FormatRule{Param: newParam(name, flags), Format: f}
}

func Email(name string, flags ...Flag) FormatRule {
	return formatRule(FormatEmail, name, flags)
}

func Phone(name string, flags ...Flag) FormatRule {
	return formatRule(FormatPhone, name, flags)
}

func URL(name string, flags ...Flag) FormatRule { return formatRule(FormatURL, name, flags) }

func Domain(name string, flags ...Flag) FormatRule {
	return formatRule(FormatDomain, name, flags)
}

func CountryCode(name string, flags ...Flag) FormatRule {
	return formatRule(FormatCountryCode, name, flags)
}

func ContactID(name string, flags ...Flag) FormatRule {
	return formatRule(FormatContactID, name, flags)
}

func Date(name string, flags ...Flag) FormatRule { return formatRule(FormatDate, name, flags) }

func IPv4(name string, flags ...Flag) FormatRule { return formatRule(FormatIPv4, name, flags) }

func IPv6(name string, flags ...Flag) FormatRule { return formatRule(FormatIPv6, name, flags) }
