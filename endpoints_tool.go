package dondominio

import "context"

// ToolAPI wraps the tool/* helpers. None of them touch account data.
type ToolAPI struct{ module }

func newToolAPI(c *Client) *ToolAPI {
	t := &ToolAPI{module: newModule(c, "tool")}
	t.handle("hello", func(ctx context.Context, _ Params) (*Response, error) { return t.Hello(ctx) })
	t.handle("idnConverter", func(ctx context.Context, a Params) (*Response, error) {
		return t.IDNConverter(ctx, argString(a, "query"))
	})
	t.handle("domainSuggests", t.DomainSuggests)
	t.handle("getTable", func(ctx context.Context, a Params) (*Response, error) {
		return t.GetTable(ctx, argString(a, "tableType"))
	})
	t.handle("csrDecode", func(ctx context.Context, a Params) (*Response, error) {
		return t.CSRDecode(ctx, argString(a, "csrData"))
	})
	t.handle("dig", t.Dig)
	t.handle("zonecheck", func(ctx context.Context, a Params) (*Response, error) {
		return t.ZoneCheck(ctx, argString(a, "domain"), a.Without("domain"))
	})
	return t
}

// Hello is a connection test. Its responseData carries ip, lang and version.
func (t *ToolAPI) Hello(ctx context.Context) (*Response, error) {
	return t.c.execute(ctx, "tool/hello/", nil, nil)
}

var toolIDNRules = Rules{String("query", Required)}

// IDNConverter converts a domain between its Unicode and punycode forms.
func (t *ToolAPI) IDNConverter(ctx context.Context, query string) (*Response, error) {
	return t.c.execute(ctx, "tool/idnconverter/", Params{"query": query}, toolIDNRules)
}

var toolDomainSuggestsRules = Rules{
	String("query", Required),
	String("language"),
	String("tlds"),
}

func (t *ToolAPI) DomainSuggests(ctx context.Context, args Params) (*Response, error) {
	return t.c.execute(ctx, "tool/domainsuggests/", args, toolDomainSuggestsRules)
}

var toolGetTableRules = Rules{List("tableType", []string{"countries", "es_juridic"}, Required)}

func (t *ToolAPI) GetTable(ctx context.Context, tableType string) (*Response, error) {
	return t.c.execute(ctx, "tool/gettable/", Params{"tableType": tableType}, toolGetTableRules)
}

var csrDecodeRules = Rules{String("csrData", Required)}

func (t *ToolAPI) CSRDecode(ctx context.Context, csrData string) (*Response, error) {
	return t.c.execute(ctx, "tool/csrdecode/", Params{"csrData": csrData}, csrDecodeRules)
}

var toolDigRules = Rules{
	String("query", Required),
	List("type", []string{"A", "AAAA", "ANY", "CNAME", "MX", "NS", "SOA", "TXT", "CAA"}, Required),
	IPv4("nameserver", Required),
}

// Dig queries a public name server on the caller's behalf.
func (t *ToolAPI) Dig(ctx context.Context, args Params) (*Response, error) {
	return t.c.execute(ctx, "tool/dig/", args, toolDigRules)
}

var toolZoneCheckRules = Rules{
	Domain("domain", Required),
	String("nameservers", Required),
}

// ZoneCheck verifies that the given name servers serve a zone for domain.
func (t *ToolAPI) ZoneCheck(ctx context.Context, domain string, args Params) (*Response, error) {
	return t.c.execute(ctx, "tool/zonecheck/", merge(Params{"domain": domain}, args), toolZoneCheckRules)
}
