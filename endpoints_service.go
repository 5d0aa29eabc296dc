package dondominio

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ServiceAPI wraps the service/* hosting operations. The per-service entities
// (FTP accounts, databases, subdomains, redirections, mailboxes, mail aliases
// and DNS records) share one shape and are reached through the entity fields.
type ServiceAPI struct {
	module

	FTP       *ServiceEntityAPI
	DDBB      *ServiceEntityAPI
	Subdomain *ServiceEntityAPI
	Redirect  *ServiceEntityAPI
	Mail      *ServiceEntityAPI
	MailAlias *ServiceEntityAPI
	DNS       *ServiceEntityAPI
}

func newServiceAPI(c *Client) *ServiceAPI {
	s := &ServiceAPI{module: newModule(c, "service")}

	withName := func(fn func(context.Context, string, Params) (*Response, error)) Handler {
		return func(ctx context.Context, a Params) (*Response, error) {
			return fn(ctx, argString(a, "serviceName"), a.Without("serviceName"))
		}
	}
	nameOnly := func(fn func(context.Context, string) (*Response, error)) Handler {
		return func(ctx context.Context, a Params) (*Response, error) {
			return fn(ctx, argString(a, "serviceName"))
		}
	}

	s.handle("getList", s.List)
	s.handle("getInfo", withName(s.GetInfo))
	s.handle("create", withName(s.Create))
	s.handle("renew", withName(s.Renew))
	s.handle("upgrade", withName(s.Upgrade))
	s.handle("update", withName(s.Update))
	s.handle("parkingGetInfo", nameOnly(s.ParkingGetInfo))
	s.handle("parkingUpdate", withName(s.ParkingUpdate))
	s.handle("webConstructorLogin", withName(s.WebConstructorLogin))
	s.handle("dnsRestore", nameOnly(s.DNSRestore))
	s.handle("dnsSetZone", func(ctx context.Context, a Params) (*Response, error) {
		return s.DNSSetZone(ctx, argString(a, "serviceName"), a["dnsZoneData"])
	})
	s.handle("dnsDeleteAll", nameOnly(s.DNSDeleteAll))
	s.aliases["list"] = "getList"

	for _, kind := range serviceEntities {
		e := &ServiceEntityAPI{c: c, entity: kind}
		switch kind.name {
		case "ftp":
			s.FTP = e
		case "ddbb":
			s.DDBB = e
		case "subdomain":
			s.Subdomain = e
		case "redirect":
			s.Redirect = e
		case "mail":
			s.Mail = e
		case "mailAlias":
			s.MailAlias = e
		case "dns":
			s.DNS = e
		}
		e.register(&s.module)
	}
	return s
}

var serviceNameRules = Rules{String("serviceName", Required)}

var productKeys = []string{"redir", "mini", "mail", "mailplus", "mailpro", "basic", "professional", "advanced", "corporate"}

var serviceListRules = Rules{
	Integer("pageLength"),
	Integer("page"),
	String("name"),
	String("word"),
	String("tld"),
	Boolean("renewable"),
	List("status", []string{"init", "active", "inactive", "renewed", "renewable"}),
}

func (s *ServiceAPI) List(ctx context.Context, args Params) (*Response, error) {
	return s.c.execute(ctx, "service/list/", args, serviceListRules)
}

func (s *ServiceAPI) named(ctx context.Context, path, serviceName string, args Params, rules Rules) (*Response, error) {
	return s.c.execute(ctx, path, merge(Params{"serviceName": serviceName}, args), rules)
}

var serviceGetInfoRules = withRules(serviceNameRules, Rules{
	List("infoType", []string{"status", "resources", "serverinfo", "php", "logerror"}),
})

func (s *ServiceAPI) GetInfo(ctx context.Context, serviceName string, args Params) (*Response, error) {
	return s.named(ctx, "service/getinfo/", serviceName, args, serviceGetInfoRules)
}

var serviceCreateRules = withRules(serviceNameRules, Rules{
	List("productKey", productKeys, Required),
	Integer("period"),
})

// Create orders a hosting service of the given productKey.
func (s *ServiceAPI) Create(ctx context.Context, serviceName string, args Params) (*Response, error) {
	return s.named(ctx, "service/create/", serviceName, args, serviceCreateRules)
}

var serviceRenewRules = withRules(serviceNameRules, Rules{Integer("period")})

func (s *ServiceAPI) Renew(ctx context.Context, serviceName string, args Params) (*Response, error) {
	return s.named(ctx, "service/renew/", serviceName, args, serviceRenewRules)
}

var serviceUpgradeRules = withRules(serviceNameRules, Rules{List("productKey", productKeys, Required)})

func (s *ServiceAPI) Upgrade(ctx context.Context, serviceName string, args Params) (*Response, error) {
	return s.named(ctx, "service/upgrade/", serviceName, args, serviceUpgradeRules)
}

var serviceUpdateRules = withRules(serviceNameRules, Rules{
	List("updateType", []string{"renewalMode", "php"}, Required),
	List("renewalMode", []string{"autorenew", "manual"}),
	String("phpversion"),
})

func (s *ServiceAPI) Update(ctx context.Context, serviceName string, args Params) (*Response, error) {
	return s.named(ctx, "service/update/", serviceName, args, serviceUpdateRules)
}

func (s *ServiceAPI) ParkingGetInfo(ctx context.Context, serviceName string) (*Response, error) {
	return s.named(ctx, "service/parkinggetinfo/", serviceName, nil, serviceNameRules)
}

var serviceParkingUpdateRules = withRules(serviceNameRules, Rules{Boolean("enabled", Required)})

func (s *ServiceAPI) ParkingUpdate(ctx context.Context, serviceName string, args Params) (*Response, error) {
	return s.named(ctx, "service/parkingupdate/", serviceName, args, serviceParkingUpdateRules)
}

var serviceWebConstructorLoginRules = withRules(serviceNameRules, Rules{
	String("subdomain", Required),
	String("loginlang"),
})

// WebConstructorLogin returns a one-time login URL for the site builder.
func (s *ServiceAPI) WebConstructorLogin(ctx context.Context, serviceName string, args Params) (*Response, error) {
	return s.named(ctx, "service/webconstructorlogin/", serviceName, args, serviceWebConstructorLoginRules)
}

// DNSRestore resets the zone of a service to its default records.
func (s *ServiceAPI) DNSRestore(ctx context.Context, serviceName string) (*Response, error) {
	return s.named(ctx, "service/dnsrestore/", serviceName, nil, serviceNameRules)
}

var serviceDNSSetZoneRules = withRules(serviceNameRules, Rules{String("dnsZoneData", Required)})

// DNSSetZone replaces the whole zone. records is sent JSON encoded, then base64
// encoded, as the API requires.
func (s *ServiceAPI) DNSSetZone(ctx context.Context, serviceName string, records any) (*Response, error) {
	params := Params{"serviceName": serviceName}
	if records != nil {
		b, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("dondominio: encode dns zone: %w", err)
		}
		params["dnsZoneData"] = base64.StdEncoding.EncodeToString(b)
	}
	return s.c.execute(ctx, "service/dnssetzone/", params, serviceDNSSetZoneRules)
}

func (s *ServiceAPI) DNSDeleteAll(ctx context.Context, serviceName string) (*Response, error) {
	return s.named(ctx, "service/dnsdeleteall/", serviceName, nil, serviceNameRules)
}

// serviceEntity describes one kind of per-service entity.
type serviceEntity struct {
	name              string // operation prefix, e.g. "mailAlias"
	list, create, upd Rules  // extra rules beyond serviceName / entityID
}

var (
	entityListRules = Rules{Integer("pageLength"), Integer("page").AtLeast(1), String("filter")}
	dnsRecordTypes  = []string{"A", "AAAA", "CNAME", "MX", "SRV", "TXT", "NS", "CAA"}
	ftpQuota        = Integer("quota", Required).AtLeast(1 << 20)
	sslFields       = Rules{String("sslCert"), String("sslKey"), String("sslCertChain"), String("sslPath")}
)

var serviceEntities = []serviceEntity{
	{
		name:   "ftp",
		list:   entityListRules,
		create: Rules{String("name", Required), String("ftpPath", Required), String("password", Required), ftpQuota},
		upd:    Rules{String("ftpPath", Required), String("password", Required), ftpQuota},
	},
	{
		name:   "ddbb",
		list:   entityListRules,
		create: Rules{String("password", Required), Boolean("externalAccess")},
		upd:    Rules{String("password", Required), Boolean("externalAccess")},
	},
	{
		name:   "subdomain",
		list:   entityListRules,
		create: withRules(Rules{String("name", Required), String("ftpPath", Required)}, sslFields),
		upd:    withRules(Rules{String("ftpPath", Required)}, sslFields),
	},
	{
		name:   "redirect",
		list:   entityListRules,
		create: Rules{String("origin", Required), String("destination", Required), List("type", []string{"301", "302", "frame"}, Required)},
		upd:    Rules{String("destination", Required), List("type", []string{"301", "302", "frame"}, Required)},
	},
	{
		name:   "mail",
		list:   entityListRules,
		create: Rules{String("name", Required), String("password", Required)},
		upd:    Rules{String("password", Required)},
	},
	{
		name:   "mailAlias",
		list:   entityListRules,
		create: Rules{String("name", Required), String("target", Required)},
		upd:    Rules{String("target", Required)},
	},
	{
		name:   "dns",
		list:   withRules(entityListRules, Rules{List("filterType", dnsRecordTypes), String("filterValue")}),
		create: Rules{String("name", Required), List("type", dnsRecordTypes, Required), String("value", Required), String("ttl"), String("priority")},
		upd:    Rules{String("value", Required), String("ttl"), String("priority")},
	},
}

// ServiceEntityAPI runs the list/get/create/update/delete operations of one
// entity kind of a hosting service.
type ServiceEntityAPI struct {
	c      *Client
	entity serviceEntity
}

var entityRefRules = withRules(serviceNameRules, Rules{String("entityID", Required)})

func (e *ServiceEntityAPI) path(op string) string {
	return "service/" + strings.ToLower(e.entity.name) + op + "/"
}

func (e *ServiceEntityAPI) List(ctx context.Context, serviceName string, args Params) (*Response, error) {
	return e.c.execute(ctx, e.path("list"), merge(Params{"serviceName": serviceName}, args),
		withRules(serviceNameRules, e.entity.list))
}

func (e *ServiceEntityAPI) GetInfo(ctx context.Context, serviceName, entityID string) (*Response, error) {
	return e.c.execute(ctx, e.path("getinfo"), Params{"serviceName": serviceName, "entityID": entityID}, entityRefRules)
}

func (e *ServiceEntityAPI) Create(ctx context.Context, serviceName string, args Params) (*Response, error) {
	return e.c.execute(ctx, e.path("create"), merge(Params{"serviceName": serviceName}, args),
		withRules(serviceNameRules, e.entity.create))
}

func (e *ServiceEntityAPI) Update(ctx context.Context, serviceName, entityID string, args Params) (*Response, error) {
	params := merge(Params{"serviceName": serviceName, "entityID": entityID}, args)
	return e.c.execute(ctx, e.path("update"), params, withRules(entityRefRules, e.entity.upd))
}

func (e *ServiceEntityAPI) Delete(ctx context.Context, serviceName, entityID string) (*Response, error) {
	return e.c.execute(ctx, e.path("delete"), Params{"serviceName": serviceName, "entityID": entityID}, entityRefRules)
}

// register adds <name>List, <name>GetInfo, <name>Create, <name>Update and
// <name>Delete to the service dispatch table.
func (e *ServiceEntityAPI) register(m *module) {
	n := e.entity.name
	m.handle(n+"List", func(ctx context.Context, a Params) (*Response, error) {
		return e.List(ctx, argString(a, "serviceName"), a.Without("serviceName"))
	})
	m.handle(n+"GetInfo", func(ctx context.Context, a Params) (*Response, error) {
		return e.GetInfo(ctx, argString(a, "serviceName"), argString(a, "entityID"))
	})
	m.handle(n+"Create", func(ctx context.Context, a Params) (*Response, error) {
		return e.Create(ctx, argString(a, "serviceName"), a.Without("serviceName"))
	})
	m.handle(n+"Update", func(ctx context.Context, a Params) (*Response, error) {
		return e.Update(ctx, argString(a, "serviceName"), argString(a, "entityID"), a.Without("serviceName", "entityID"))
	})
	m.handle(n+"Delete", func(ctx context.Context, a Params) (*Response, error) {
		return e.Delete(ctx, argString(a, "serviceName"), argString(a, "entityID"))
	})
}
