package dondominio

import "context"

// ContactAPI wraps the contact/* operations.
type ContactAPI struct{ module }

func newContactAPI(c *Client) *ContactAPI {
	ct := &ContactAPI{module: newModule(c, "contact")}
	ct.handle("getList", ct.List)
	ct.handle("getInfo", func(ctx context.Context, a Params) (*Response, error) {
		return ct.GetInfo(ctx, argString(a, "contactID"), argString(a, "infoType"))
	})
	ct.handle("resendVerificationMail", func(ctx context.Context, a Params) (*Response, error) {
		return ct.ResendVerificationMail(ctx, argString(a, "contactID"))
	})
	ct.handle("create", ct.Create)
	ct.aliases["list"] = "getList"
	return ct
}

var contactListRules = Rules{
	Integer("pageLength"),
	Integer("page"),
	String("name"),
	Email("email"),
	CountryCode("country"),
	String("identNumber"),
	List("verificationstatus", verificationStatuses),
	Boolean("daaccepted"),
}

var verificationStatuses = []string{"verified", "notapplicable", "inprocess", "failed"}

// List searches the contacts of the account.
func (ct *ContactAPI) List(ctx context.Context, args Params) (*Response, error) {
	return ct.c.execute(ctx, "contact/list/", args, contactListRules)
}

var contactGetInfoRules = Rules{
	ContactID("contactID", Required),
	List("infoType", []string{"data"}),
}

// GetInfo returns a contact. infoType defaults to "data".
func (ct *ContactAPI) GetInfo(ctx context.Context, contactID, infoType string) (*Response, error) {
	if infoType == "" {
		infoType = "data"
	}
	return ct.c.execute(ctx, "contact/getinfo/", Params{
		"contactID": contactID,
		"infoType":  infoType,
	}, contactGetInfoRules)
}

var contactResendRules = Rules{ContactID("contactID", Required)}

func (ct *ContactAPI) ResendVerificationMail(ctx context.Context, contactID string) (*Response, error) {
	return ct.c.execute(ctx, "contact/resendverificationmail/", Params{"contactID": contactID}, contactResendRules)
}

var contactCreateRules = Rules{
	List("Type", contactTypes, Required),
	String("FirstName", Required),
	String("LastName", Required),
	String("IdentNumber", Required),
	String("Email", Required),
	Phone("Phone", Required),
	String("Address", Required),
	String("PostalCode", Required),
	String("City", Required),
	String("State", Required),
	String("Country", Required),
	String("OrgName"),
	String("OrgType"),
	Phone("Fax"),
}

// Create registers a new contact. args may be built with Contact.Params.
func (ct *ContactAPI) Create(ctx context.Context, args Params) (*Response, error) {
	return ct.c.execute(ctx, "contact/create/", args, contactCreateRules)
}

// CreateContact is Create for a typed record.
func (ct *ContactAPI) CreateContact(ctx context.Context, contact Contact) (*Response, error) {
	return ct.Create(ctx, contact.Params())
}
