package dondominio

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

// Validate checks params against rules and returns one message per violation,
// in rule order. An empty result means the parameters are valid. Every rule is
// evaluated; nothing short-circuits.
func Validate(params Params, rules Rules) []string {
	var errs []string
	for _, r := range rules {
		p := r.param()

		v, present := params[p.Name]
		if p.Required && (!present || isEmpty(v)) {
			if p.Bypass == "" || isEmpty(params[p.Bypass]) {
				errs = append(errs, fmt.Sprintf(`Parameter "%s" missing`, p.Name))
			}
		}

		if !present || v == nil {
			continue
		}
		errs = append(errs, checkValue(r, v)...)
	}
	return errs
}

func checkValue(r Rule, v any) []string {
	name := r.param().Name
	switch rule := r.(type) {
	case ListRule:
		s := scalarString(v)
		if !slices.Contains(rule.Allowed, s) {
			return []string{fmt.Sprintf(`"%s" is not a valid value for parameter "%s". Accepted values: "%s"`,
				s, name, strings.Join(rule.Allowed, `", "`))}
		}
	case BooleanRule:
		if _, ok := v.(bool); !ok {
			return []string{fmt.Sprintf(`Parameter "%s" must be a boolean`, name)}
		}
	case StringRule:
		if _, ok := v.(string); !ok {
			return []string{fmt.Sprintf(`Parameter "%s" must be a string`, name)}
		}
	case IntegerRule:
		return checkInteger(rule, v)
	case FloatRule:
		return checkFloat(rule, v)
	case FormatRule:
		if !checkFormat(rule.Format, scalarString(v)) {
			return []string{fmt.Sprintf(`Parameter "%s" %s`, name, formatMessages[rule.Format])}
		}
	default:
		panic(fmt.Sprintf(`dondominio: unhandled rule type %T for "%s"`, r, name))
	}
	return nil
}

var formatMessages = map[Format]string{
	FormatEmail:       "must be a valid email address",
	FormatPhone:       "must be a valid phone number, in +DD.DDDDDDDD... format",
	FormatURL:         "must be a valid URL",
	FormatDomain:      "must be a valid domain name",
	FormatCountryCode: "must be a valid country code",
	FormatContactID:   "must be a valid Contact ID",
	FormatDate:        "must be a valid date, in YYYYMMDD or YYYY-MM-DD format",
	FormatIPv4:        "must be a valid IPv4 address",
	FormatIPv6:        "must be a valid IPv6 address",
}

func checkInteger(r IntegerRule, v any) []string {
	var errs []string
	n, ok := asInt64(v)
	if !ok {
		errs = append(errs, fmt.Sprintf(`Parameter "%s" must be an integer`, r.Name))
		f, numeric := asFloat64(v)
		if !numeric {
			return errs
		}
		// bounds still apply to a float supplied where an integer was expected
		if r.Min != nil && f < float64(*r.Min) {
			errs = append(errs, fmt.Sprintf(`Parameter "%s" must be %d or more`, r.Name, *r.Min))
		}
		if r.Max != nil && f > float64(*r.Max) {
			errs = append(errs, fmt.Sprintf(`Parameter "%s" must be %d or less`, r.Name, *r.Max))
		}
		return errs
	}
	if r.Min != nil && compareInt(v, n, *r.Min) < 0 {
		errs = append(errs, fmt.Sprintf(`Parameter "%s" must be %d or more`, r.Name, *r.Min))
	}
	if r.Max != nil && compareInt(v, n, *r.Max) > 0 {
		errs = append(errs, fmt.Sprintf(`Parameter "%s" must be %d or less`, r.Name, *r.Max))
	}
	return errs
}

func checkFloat(r FloatRule, v any) []string {
	var errs []string
	f, isFloat := v.(float64)
	if f32, ok := v.(float32); ok {
		f, isFloat = float64(f32), true
	}
	if !isFloat {
		errs = append(errs, fmt.Sprintf(`Parameter "%s" must be a float`, r.Name))
		var numeric bool
		if f, numeric = asFloat64(v); !numeric {
			return errs
		}
	}
	if r.Min != nil && f < *r.Min {
		errs = append(errs, fmt.Sprintf(`Parameter "%s" must be %v or more`, r.Name, *r.Min))
	}
	if r.Max != nil && f > *r.Max {
		errs = append(errs, fmt.Sprintf(`Parameter "%s" must be %v or less`, r.Name, *r.Max))
	}
	return errs
}

// isEmpty treats absent, nil, "", and empty slices or maps as empty. Booleans are
// never empty so an explicit false counts as supplied; numeric zero and "0" are
// also supplied values.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return false
	case string:
		return x == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func asInt64(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(min(rv.Uint(), math.MaxInt64)), true
	}
	return 0, false
}

// compareInt compares the integer v, already read as n, against bound. Unsigned
// values are compared without narrowing so ones past MaxInt64 stay in order.
func compareInt(v any, n, bound int64) int {
	if rv := reflect.ValueOf(v); rv.CanUint() {
		if bound < 0 {
			return 1
		}
		return cmp.Compare(rv.Uint(), uint64(bound))
	}
	return cmp.Compare(n, bound)
}

func asFloat64(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	if n, ok := asInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}

// scalarString renders a parameter value the way it is compared and sent.
func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
