package dondominio

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Call / proxy ----------

func TestCall_RoutesToWrapper(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)
	ctx := context.Background()

	tests := []struct {
		name string
		args Params
		path string
	}{
		{"domain_check", Params{"domain": "example.com"}, "domain/check/"},
		{"domain_list", Params{"tld": "es"}, "domain/list/"},
		{"domain_getList", nil, "domain/list/"},
		{"contact_list", nil, "contact/list/"},
		{"user_list", nil, "user/list/"},
		{"ssl_list", nil, "ssl/list/"},
		{"service_list", nil, "service/list/"},
		{"account_info", nil, "account/info/"},
		{"account_zones", Params{"tld": "com"}, "account/zones"},
		{"tool_hello", nil, "tool/hello/"},
		{"tool_getTable", Params{"tableType": "countries"}, "tool/gettable/"},
		{"service_mailAliasList", Params{"serviceName": "example.com"}, "service/mailaliaslist/"},
		{"service_dnsDelete", Params{"serviceName": "example.com", "entityID": "42"}, "service/dnsdelete/"},
		{"ssl_productGetInfo", Params{"productID": "7"}, "ssl/productgetinfo/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Call(ctx, tt.name, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.path, ft.last(t).path)
		})
	}
}

func TestCall_ProgrammingErrorsPanic(t *testing.T) {
	c := newTestClient(t, &fakeTransport{body: okBody})
	ctx := context.Background()

	assert.PanicsWithValue(t, "dondominio: invalid call: hello", func() {
		_, _ = c.Call(ctx, "hello", nil)
	})
	assert.PanicsWithValue(t, "dondominio: undefined module: registrar", func() {
		_, _ = c.Call(ctx, "registrar_check", nil)
	})
	assert.PanicsWithValue(t, "dondominio: method frobnicate not found in module domain", func() {
		_, _ = c.Call(ctx, "domain_frobnicate", nil)
	})
}

func TestHasCallAndCalls(t *testing.T) {
	c := newTestClient(t, &fakeTransport{})

	for _, name := range []string{"domain_check", "domain_list", "domain_getList", "service_ftpCreate", "service_dnsSetZone", "ssl_create"} {
		assert.True(t, c.HasCall(name), name)
	}
	for _, name := range []string{"domain", "domain_frobnicate", "registrar_check", ""} {
		assert.False(t, c.HasCall(name), name)
	}

	calls := c.Calls()
	assert.Len(t, calls, 7)
	assert.Equal(t, []string{"info", "zones"}, calls["account"])
	assert.Subset(t, calls["service"], []string{
		"ftpList", "ftpGetInfo", "ftpCreate", "ftpUpdate", "ftpDelete",
		"ddbbList", "subdomainCreate", "redirectUpdate", "mailDelete",
		"mailAliasGetInfo", "dnsList", "getList", "getInfo",
	})
	assert.NotContains(t, calls["domain"], "list", "aliases are not listed")
	assert.IsIncreasing(t, calls["domain"])
}

// ---------- wrapper parameter assembly ----------

func TestDomain_ByNameOrID(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)
	ctx := context.Background()

	_, err := c.Domain.GetAuthCode(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", ft.last(t).params["domain"])
	assert.NotContains(t, ft.last(t).params, "domainID")

	_, err = c.Call(ctx, "domain_getAuthCode", Params{"domainID": "12345"})
	require.NoError(t, err)
	assert.Equal(t, "12345", ft.last(t).params["domainID"])
	assert.NotContains(t, ft.last(t).params, "domain")

	_, err = c.Domain.GetAuthCode(ctx, "")
	require.ErrorIs(t, err, ErrValidation)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{`Parameter "domain" missing`, `Parameter "domainID" missing`}, apiErr.Messages)
}

func TestDomain_CreateFlattensContacts(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)

	_, err := c.Domain.Create(context.Background(), "example.com", Params{
		"period": 1,
		"owner": Contact{
			Type:        "individual",
			FirstName:   "John",
			LastName:    "Doe",
			IdentNumber: "12345678Z",
			Email:       "john@example.com",
			Phone:       "+34.123456789",
			Address:     "Calle Mayor 1",
			PostalCode:  "28001",
			City:        "Madrid",
			State:       "Madrid",
			Country:     "ES",
		},
		"admin": Params{"ID": "ABCD-1234"},
	})
	require.NoError(t, err)

	p := ft.last(t).params
	assert.Equal(t, "domain/create/", ft.last(t).path)
	assert.Equal(t, "example.com", p["domain"])
	assert.Equal(t, 1, p["period"])
	assert.Equal(t, "John", p["ownerContactFirstName"])
	assert.Equal(t, "28001", p["ownerContactPostalCode"])
	assert.Equal(t, "ABCD-1234", p["adminContactID"])
	assert.NotContains(t, p, "owner")
}

func TestDomain_CreateRejectsBadContact(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)

	_, err := c.Domain.Create(context.Background(), "example.com", Params{
		"owner": Params{"type": "company", "phone": "555-1234"},
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	want := []string{
		`"company" is not a valid value for parameter "ownerContactType". Accepted values: "individual", "organization"`,
		`Parameter "ownerContactPhone" must be a valid phone number, in +DD.DDDDDDDD... format`,
	}
	if diff := cmp.Diff(want, apiErr.Messages); diff != "" {
		t.Fatalf("messages (-want +got):\n%s", diff)
	}
	assert.Zero(t, ft.count())
}

func TestDomain_TransferNeedsOwner(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)
	ctx := context.Background()

	_, err := c.Domain.Transfer(ctx, "example.com", Params{"authcode": "xyz"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `Parameter "ownerContactID" missing`)

	_, err = c.Domain.Transfer(ctx, "example.com", Params{"authcode": "xyz", "owner": Params{"ID": "ABCD-1234"}})
	require.NoError(t, err)
	require.Equal(t, 1, ft.count())

	// an inline owner needs every identity and address field
	_, err = c.Domain.Transfer(ctx, "example.com", Params{"owner": Params{"Type": "individual"}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	var want []string
	for _, f := range []string{"FirstName", "LastName", "IdentNumber", "Email", "Phone", "Address", "PostalCode", "City", "State", "Country"} {
		want = append(want, fmt.Sprintf(`Parameter "ownerContact%s" missing`, f))
	}
	assert.Equal(t, want, apiErr.Messages)
	assert.Equal(t, 1, ft.count(), "invalid transfers never reach the transport")
}

func TestDomain_UpdateNameServers(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)

	_, err := c.Call(context.Background(), "domain_updateNameServers", Params{
		"domain":      "example.com",
		"nameservers": []any{"ns1.example.net", "ns2.example.net"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ns1.example.net,ns2.example.net", ft.last(t).params["nameservers"])

	_, err = c.Domain.UpdateNameServers(context.Background(), "example.com", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDomain_RenewDate(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)
	ctx := context.Background()

	_, err := c.Domain.Renew(ctx, "example.com", Params{"curExpDate": "2025-02-30x"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = c.Domain.Renew(ctx, "example.com", Params{"curExpDate": "20250228", "period": 1})
	require.NoError(t, err)
	assert.Equal(t, "domain/renew/", ft.last(t).path)
}

func TestContact_GetInfoDefaultsInfoType(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)

	_, err := c.Contact.GetInfo(context.Background(), "ABCD-1234", "")
	require.NoError(t, err)
	assert.Equal(t, "data", ft.last(t).params["infoType"])

	_, err = c.Contact.GetInfo(context.Background(), "not-an-id", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSSL_RequiredIDs(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)
	ctx := context.Background()

	_, err := c.SSL.Create(ctx, 0, Params{"csrData": "-----BEGIN CERTIFICATE REQUEST-----"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{`Parameter "productID" missing`}, apiErr.Messages)

	_, err = c.SSL.Create(ctx, 12, Params{"csrData": "-----BEGIN CERTIFICATE REQUEST-----", "period": 1})
	require.NoError(t, err)
	assert.Equal(t, "ssl/create/", ft.last(t).path)
	assert.Equal(t, int64(12), ft.last(t).params["productID"])

	_, err = c.Call(ctx, "ssl_getInfo", Params{"certificateID": 99, "infoType": "ssldata"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), ft.last(t).params["certificateID"])
}

// ---------- service ----------

func TestService_EntityOperations(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)
	ctx := context.Background()

	_, err := c.Service.MailAlias.Create(ctx, "example.com", Params{"name": "info", "target": "john@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "service/mailaliascreate/", ft.last(t).path)
	assert.Equal(t, "example.com", ft.last(t).params["serviceName"])

	_, err = c.Service.FTP.Update(ctx, "example.com", "7", Params{"ftpPath": "/www", "password": "pw", "quota": 1048576})
	require.NoError(t, err)
	assert.Equal(t, "service/ftpupdate/", ft.last(t).path)
	assert.Equal(t, "7", ft.last(t).params["entityID"])

	_, err = c.Call(ctx, "service_redirectCreate", Params{
		"serviceName": "example.com",
		"origin":      "/old",
		"destination": "https://example.com/new",
		"type":        "303",
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `"303" is not a valid value for parameter "type"`)

	_, err = c.Service.DNS.Delete(ctx, "example.com", "")
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `Parameter "entityID" missing`)
}

func TestService_EntityBounds(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)
	ctx := context.Background()

	_, err := c.Service.FTP.Create(ctx, "example.com", Params{"name": "web", "ftpPath": "/www", "password": "pw", "quota": 1})
	require.ErrorIs(t, err, ErrValidation)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{`Parameter "quota" must be 1048576 or more`}, apiErr.Messages)

	_, err = c.Service.FTP.Update(ctx, "example.com", "7", Params{"ftpPath": "/www", "password": "pw", "quota": 1024})
	require.ErrorIs(t, err, ErrValidation)

	_, err = c.Service.Mail.List(ctx, "example.com", Params{"page": 0})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{`Parameter "page" must be 1 or more`}, apiErr.Messages)
	assert.Zero(t, ft.count())

	_, err = c.Service.Mail.List(ctx, "example.com", Params{"page": 1})
	require.NoError(t, err)
	assert.Equal(t, 1, ft.count())
}

func TestService_DNSSetZoneEncodesRecords(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)

	records := []map[string]any{
		{"name": "www.example.com", "type": "A", "value": "81.25.117.9"},
	}
	_, err := c.Service.DNSSetZone(context.Background(), "example.com", records)
	require.NoError(t, err)

	enc, ok := ft.last(t).params["dnsZoneData"].(string)
	require.True(t, ok)
	raw, err := base64.StdEncoding.DecodeString(enc)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatalf("zone (-want +got):\n%s", diff)
	}

	_, err = c.Service.DNSSetZone(context.Background(), "example.com", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ParkingUpdateAcceptsFalse(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)

	_, err := c.Call(context.Background(), "service_parkingUpdate", Params{"serviceName": "example.com", "enabled": false})
	require.NoError(t, err)
	assert.Equal(t, false, ft.last(t).params["enabled"])
}

// ---------- tool ----------

func TestTool_Dig(t *testing.T) {
	ft := &fakeTransport{body: okBody}
	c := newTestClient(t, ft)

	_, err := c.Tool.Dig(context.Background(), Params{"query": "example.com", "type": "MX", "nameserver": "192.168.0.1"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `Parameter "nameserver" must be a valid IPv4 address`)

	_, err = c.Tool.Dig(context.Background(), Params{"query": "example.com", "type": "MX", "nameserver": "8.8.8.8"})
	require.NoError(t, err)
}

// ---------- Info ----------

func TestInfo(t *testing.T) {
	ft := &fakeTransport{body: `{"success":true,"version":"1.1","responseData":{"ip":"81.25.117.9","lang":"es","version":"1.1.0"}}`}
	c := newTestClient(t, ft)

	info, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "apiuser", info.User)
	assert.Equal(t, "******", info.Password)
	assert.Equal(t, "81.25.117.9", info.IP)
	assert.Equal(t, "es", info.Lang)
	assert.Equal(t, "1.1.0", info.APIVersion)
	assert.Equal(t, DefaultEndpoint, info.Endpoint)

	ft.body = `{"success":false,"errorCode":201,"messages":["bad login"]}`
	c.SetThrowOnError(false)
	info, err = c.Info(context.Background())
	require.ErrorIs(t, err, ErrLoginInvalid)
	require.NotNil(t, info)
	assert.Empty(t, info.IP)
}
