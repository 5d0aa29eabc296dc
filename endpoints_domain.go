package dondominio

import (
	"context"
	"strings"
)

// DomainAPI wraps the domain/* operations. Several of them spend account
// credit (create, transfer, renew).
//
// Operations that take a domain accept either its name or its numeric ID.
type DomainAPI struct{ module }

func newDomainAPI(c *Client) *DomainAPI {
	d := &DomainAPI{module: newModule(c, "domain")}

	byName := func(fn func(context.Context, string) (*Response, error)) Handler {
		return func(ctx context.Context, a Params) (*Response, error) {
			return fn(ctx, domainArg(a))
		}
	}
	byNameWithArgs := func(fn func(context.Context, string, Params) (*Response, error)) Handler {
		return func(ctx context.Context, a Params) (*Response, error) {
			return fn(ctx, domainArg(a), a.Without("domain", "domainID"))
		}
	}

	d.handle("check", byName(d.Check))
	d.handle("checkForTransfer", byName(d.CheckForTransfer))
	d.handle("create", byNameWithArgs(d.Create))
	d.handle("transfer", byNameWithArgs(d.Transfer))
	d.handle("transferRestart", byNameWithArgs(d.TransferRestart))
	d.handle("update", byNameWithArgs(d.Update))
	d.handle("updateNameServers", func(ctx context.Context, a Params) (*Response, error) {
		return d.UpdateNameServers(ctx, domainArg(a), argStrings(a, "nameservers"))
	})
	d.handle("updateContacts", byNameWithArgs(d.UpdateContacts))
	d.handle("glueRecordCreate", byNameWithArgs(d.GlueRecordCreate))
	d.handle("glueRecordUpdate", byNameWithArgs(d.GlueRecordUpdate))
	d.handle("glueRecordDelete", byNameWithArgs(d.GlueRecordDelete))
	d.handle("getList", d.List)
	d.handle("getInfo", byNameWithArgs(d.GetInfo))
	d.handle("getAuthCode", byName(d.GetAuthCode))
	d.handle("getNameServers", byName(d.GetNameServers))
	d.handle("getGlueRecords", byName(d.GetGlueRecords))
	d.handle("getDnsSec", byName(d.GetDNSSec))
	d.handle("dnsSecCreate", byNameWithArgs(d.DNSSecCreate))
	d.handle("dnsSecDelete", byNameWithArgs(d.DNSSecDelete))
	d.handle("renew", byNameWithArgs(d.Renew))
	d.handle("whois", byName(d.Whois))
	d.handle("resendVerificationMail", byName(d.ResendVerificationMail))
	d.handle("resendFOAMail", byName(d.ResendFOAMail))
	d.handle("resetFOA", byName(d.ResetFOA))
	d.handle("getHistory", byNameWithArgs(d.GetHistory))
	d.handle("listDeleted", d.ListDeleted)
	d.aliases["list"] = "getList"
	return d
}

func domainArg(a Params) string {
	if s := argString(a, "domain"); s != "" {
		return s
	}
	return argString(a, "domainID")
}

var contactTypes = []string{"individual", "organization"}

// contactRules declares the flattened <role>Contact* fields for all four roles.
// When ownerRequired is set the owner must be given either by ID or inline, and
// an inline owner needs its full identity and postal address.
func contactRules(ownerRequired bool) Rules {
	var rs Rules
	for _, role := range contactRoles {
		p := role + "Contact"
		var id, inline []Flag
		if role == "owner" && ownerRequired {
			id = []Flag{Required, Or(p + "Type")}
			inline = []Flag{Required, Or(p + "ID")}
		}
		rs = append(rs,
			ContactID(p+"ID", id...),
			List(p+"Type", contactTypes, inline...),
			String(p+"FirstName", inline...),
			String(p+"LastName", inline...),
			String(p+"OrgName"),
			String(p+"OrgType"),
			String(p+"IdentNumber", inline...),
			Email(p+"Email", inline...),
			Phone(p+"Phone", inline...),
			Phone(p+"Fax"),
			String(p+"Address", inline...),
			String(p+"PostalCode", inline...),
			String(p+"City", inline...),
			String(p+"State", inline...),
			String(p+"Country", inline...),
		)
	}
	return rs
}

func withRules(base Rules, more ...Rules) Rules {
	out := append(Rules{}, base...)
	for _, m := range more {
		out = append(out, m...)
	}
	return out
}

var (
	domainNameRules = Rules{Domain("domain", Required)}
	// domainRefRules accepts either a domain name or a domain ID.
	domainRefRules = Rules{
		Domain("domain", Required, Or("domainID")),
		String("domainID", Required, Or("domain")),
	}
	foaContacts = []string{"owner", "admin"}
)

func (d *DomainAPI) run(ctx context.Context, path string, params Params, rules Rules) (*Response, error) {
	return d.c.execute(ctx, path, params, rules)
}

// Check reports whether domain is available for registration.
func (d *DomainAPI) Check(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/check/", Params{"domain": domain}, domainNameRules)
}

// CheckForTransfer reports whether domain can be transferred in.
func (d *DomainAPI) CheckForTransfer(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/checkfortransfer/", Params{"domain": domain}, domainNameRules)
}

var domainCreateRules = withRules(Rules{
	Domain("domain", Required),
	Integer("period"),
	Boolean("premium"),
	String("nameservers"),
}, contactRules(false))

// Create registers domain. Contacts are passed as "owner", "admin", "tech" and
// "billing" entries holding a Contact or a map of its fields.
func (d *DomainAPI) Create(ctx context.Context, domain string, args Params) (*Response, error) {
	params := merge(Params{"domain": domain}, flattenContacts(args))
	return d.run(ctx, "domain/create/", params, domainCreateRules)
}

var domainTransferRules = withRules(Rules{
	Domain("domain", Required),
	String("nameservers"),
	String("authcode"),
	List("foacontact", foaContacts),
}, contactRules(true))

func (d *DomainAPI) Transfer(ctx context.Context, domain string, args Params) (*Response, error) {
	params := merge(Params{"domain": domain}, flattenContacts(args))
	return d.run(ctx, "domain/transfer/", params, domainTransferRules)
}

var domainTransferRestartRules = withRules(domainRefRules, Rules{
	String("authcode"),
	List("foacontact", foaContacts),
})

func (d *DomainAPI) TransferRestart(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/transferrestart/", merge(domainOrID(domain), args), domainTransferRestartRules)
}

var domainUpdateRules = withRules(domainRefRules, Rules{
	List("updateType", []string{"contact", "nameservers", "transferBlock", "block", "whoisPrivacy", "renewalMode", "tag", "viewWhois"}, Required),
}, contactRules(false), Rules{
	String("nameservers"),
	Boolean("transferBlock"),
	Boolean("block"),
	Boolean("whoisPrivacy"),
	Boolean("viewWhois"),
	List("renewalMode", []string{"autorenew", "manual", "letexpire"}),
	String("tag"),
})

// Update changes one aspect of a domain, selected by the required updateType.
func (d *DomainAPI) Update(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/update/", merge(domainOrID(domain), flattenContacts(args)), domainUpdateRules)
}

var domainUpdateNameServersRules = withRules(domainRefRules, Rules{String("nameservers", Required)})

// UpdateNameServers replaces the delegation of a domain.
func (d *DomainAPI) UpdateNameServers(ctx context.Context, domain string, nameservers []string) (*Response, error) {
	params := merge(domainOrID(domain), Params{"nameservers": strings.Join(nameservers, ",")})
	return d.run(ctx, "domain/updatenameservers/", params, domainUpdateNameServersRules)
}

var domainUpdateContactsRules = withRules(domainRefRules, contactRules(false))

func (d *DomainAPI) UpdateContacts(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/updatecontacts/", merge(domainOrID(domain), flattenContacts(args)), domainUpdateContactsRules)
}

var (
	glueRecordRules = withRules(domainRefRules, Rules{
		String("name", Required),
		IPv4("ipv4", Required),
		IPv6("ipv6"),
	})
	glueRecordDeleteRules = withRules(domainRefRules, Rules{String("name", Required)})
)

func (d *DomainAPI) GlueRecordCreate(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/gluerecordcreate/", merge(domainOrID(domain), args), glueRecordRules)
}

func (d *DomainAPI) GlueRecordUpdate(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/gluerecordupdate/", merge(domainOrID(domain), args), glueRecordRules)
}

func (d *DomainAPI) GlueRecordDelete(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/gluerecorddelete/", merge(domainOrID(domain), args), glueRecordDeleteRules)
}

var domainListRules = Rules{
	Integer("pageLength"),
	Integer("page"),
	Domain("domain"),
	String("word"),
	String("tld"),
	Boolean("renewable"),
	List("infoType", []string{"status", "contact", "nameservers", "service", "gluerecords"}),
	String("owner"),
	String("tag"),
	String("status"),
	List("ownerverification", verificationStatuses),
}

// List searches the domains of the account.
func (d *DomainAPI) List(ctx context.Context, args Params) (*Response, error) {
	return d.run(ctx, "domain/list/", args, domainListRules)
}

var domainGetInfoRules = withRules(domainRefRules, Rules{
	List("infoType", []string{"status", "contact", "nameservers", "authcode", "service", "gluerecords", "dnssec"}, Required),
})

// GetInfo returns one block of domain data, selected by the required infoType.
func (d *DomainAPI) GetInfo(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/getinfo/", merge(domainOrID(domain), args), domainGetInfoRules)
}

func (d *DomainAPI) GetAuthCode(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/getauthcode/", domainOrID(domain), domainRefRules)
}

func (d *DomainAPI) GetNameServers(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/getnameservers/", domainOrID(domain), domainRefRules)
}

func (d *DomainAPI) GetGlueRecords(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/getgluerecords/", domainOrID(domain), domainRefRules)
}

func (d *DomainAPI) GetDNSSec(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/getdnssec/", domainOrID(domain), domainRefRules)
}

var (
	dnsSecKeyRules = Rules{
		Integer("keytag", Required),
		Integer("algorithm", Required),
		Integer("digesttype", Required),
		String("digest", Required),
	}
	dnsSecCreateRules = withRules(domainRefRules, dnsSecKeyRules)
	dnsSecDeleteRules = withRules(domainRefRules, Rules{String("name", Required)}, dnsSecKeyRules)
)

// DNSSecCreate adds a DS record to the domain.
func (d *DomainAPI) DNSSecCreate(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/dnsseccreate/", merge(domainOrID(domain), args), dnsSecCreateRules)
}

func (d *DomainAPI) DNSSecDelete(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/dnssecdelete/", merge(domainOrID(domain), args), dnsSecDeleteRules)
}

var domainRenewRules = withRules(domainRefRules, Rules{
	Date("curExpDate", Required),
	Integer("period"),
})

// Renew extends the registration. curExpDate must match the current expiry date.
func (d *DomainAPI) Renew(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/renew/", merge(domainOrID(domain), args), domainRenewRules)
}

// Whois only accepts domain names.
func (d *DomainAPI) Whois(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/whois/", Params{"domain": domain}, domainNameRules)
}

func (d *DomainAPI) ResendVerificationMail(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/resendverificationmail/", domainOrID(domain), domainRefRules)
}

func (d *DomainAPI) ResendFOAMail(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/resendfoamail/", domainOrID(domain), domainRefRules)
}

func (d *DomainAPI) ResetFOA(ctx context.Context, domain string) (*Response, error) {
	return d.run(ctx, "domain/resetfoa/", domainOrID(domain), domainRefRules)
}

var (
	pageRules             = Rules{Integer("pageLength"), Integer("page")}
	domainGetHistoryRules = withRules(domainRefRules, pageRules)
)

func (d *DomainAPI) GetHistory(ctx context.Context, domain string, args Params) (*Response, error) {
	return d.run(ctx, "domain/gethistory/", merge(domainOrID(domain), args), domainGetHistoryRules)
}

// ListDeleted lists domains deleted from the account.
func (d *DomainAPI) ListDeleted(ctx context.Context, args Params) (*Response, error) {
	return d.run(ctx, "domain/listdeleted/", args, pageRules)
}
