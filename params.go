package dondominio

import (
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Params holds the fields of a single API call, keyed by wire name.
type Params map[string]any

// String returns the value of key as a string, or "" when it is absent.
func (p Params) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	return scalarString(v)
}

// Without returns a copy of p minus the given keys.
func (p Params) Without(keys ...string) Params {
	out := maps.Clone(p)
	if out == nil {
		out = Params{}
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// merge returns a new map with the entries of each argument, later ones winning.
func merge(ps ...Params) Params {
	out := Params{}
	for _, p := range ps {
		maps.Copy(out, p)
	}
	return out
}

// Contact is a registrant record. Its Params form is the shape contact/create
// expects and the shape flattened into <role>Contact* keys on domain calls.
type Contact struct {
	ID          string
	Type        string // individual | organization
	FirstName   string
	LastName    string
	OrgName     string
	OrgType     string
	IdentNumber string
	Email       string
	Phone       string
	Fax         string
	Address     string
	PostalCode  string
	City        string
	State       string
	Country     string
}

// Params returns the non-empty fields of c keyed by their API names.
func (c Contact) Params() Params {
	p := Params{}
	set := func(k, v string) {
		if v != "" {
			p[k] = v
		}
	}
	set("ID", c.ID)
	set("Type", c.Type)
	set("FirstName", c.FirstName)
	set("LastName", c.LastName)
	set("OrgName", c.OrgName)
	set("OrgType", c.OrgType)
	set("IdentNumber", c.IdentNumber)
	set("Email", c.Email)
	set("Phone", c.Phone)
	set("Fax", c.Fax)
	set("Address", c.Address)
	set("PostalCode", c.PostalCode)
	set("City", c.City)
	set("State", c.State)
	set("Country", c.Country)
	return p
}

var contactRoles = []string{"owner", "admin", "tech", "billing"}

// flattenContacts expands owner/admin/tech/billing sub-records into flat keys:
// {"owner": {"firstName": "John"}} becomes {"ownerContactFirstName": "John"}.
// Other entries pass through untouched.
func flattenContacts(args Params) Params {
	out := make(Params, len(args))
	for k, v := range args {
		sub, ok := contactFields(v)
		if !ok || !isContactRole(k) {
			out[k] = v
			continue
		}
		for field, fv := range sub {
			out[k+"Contact"+ucFirst(field)] = fv
		}
	}
	return out
}

func contactFields(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case Contact:
		return x.Params(), true
	case *Contact:
		if x == nil {
			return nil, false
		}
		return x.Params(), true
	case Params:
		return x, true
	case map[string]any:
		return x, true
	case map[string]string:
		m := make(map[string]any, len(x))
		for k, s := range x {
			m[k] = s
		}
		return m, true
	}
	return nil, false
}

func isContactRole(k string) bool {
	for _, r := range contactRoles {
		if r == k {
			return true
		}
	}
	return false
}

func ucFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// domainOrID addresses a domain either by name or by its numeric ID: anything
// containing a dot is a name.
func domainOrID(domain string) Params {
	if strings.Contains(domain, ".") {
		return Params{"domain": domain}
	}
	return Params{"domainID": domain}
}
