package dondominio

import "context"

// AccountAPI wraps the account/* operations.
type AccountAPI struct{ module }

func newAccountAPI(c *Client) *AccountAPI {
	a := &AccountAPI{module: newModule(c, "account")}
	a.handle("info", func(ctx context.Context, _ Params) (*Response, error) { return a.Info(ctx) })
	a.handle("zones", a.Zones)
	return a
}

// Info returns the account balance, limits and contact data.
func (a *AccountAPI) Info(ctx context.Context) (*Response, error) {
	return a.c.execute(ctx, "account/info/", nil, nil)
}

var accountZonesRules = Rules{
	Integer("pageLength"),
	Integer("page"),
	String("tld"),
	String("tldtop"),
}

// Zones lists the TLDs available to the account with their prices.
func (a *AccountAPI) Zones(ctx context.Context, args Params) (*Response, error) {
	return a.c.execute(ctx, "account/zones", args, accountZonesRules)
}
