package dondominio

import "context"

// SSLAPI wraps the ssl/* certificate operations.
type SSLAPI struct{ module }

func newSSLAPI(c *Client) *SSLAPI {
	s := &SSLAPI{module: newModule(c, "ssl")}
	s.handle("csrDecode", func(ctx context.Context, a Params) (*Response, error) {
		return s.CSRDecode(ctx, argString(a, "csrData"))
	})
	s.handle("csrCreate", s.CSRCreate)
	s.handle("productList", s.ProductList)
	s.handle("productGetInfo", func(ctx context.Context, a Params) (*Response, error) {
		return s.ProductGetInfo(ctx, argInt(a, "productID"))
	})
	s.handle("getList", s.List)
	s.handle("getInfo", func(ctx context.Context, a Params) (*Response, error) {
		return s.GetInfo(ctx, argInt(a, "certificateID"), a.Without("certificateID"))
	})
	s.handle("create", func(ctx context.Context, a Params) (*Response, error) {
		return s.Create(ctx, argInt(a, "productID"), a.Without("productID"))
	})
	s.aliases["list"] = "getList"
	return s
}

func (s *SSLAPI) CSRDecode(ctx context.Context, csrData string) (*Response, error) {
	return s.c.execute(ctx, "ssl/csrdecode/", Params{"csrData": csrData}, csrDecodeRules)
}

var sslCSRCreateRules = Rules{
	String("commonName", Required),
	String("organizationName", Required),
	String("organizationalUnitName", Required),
	String("countryName", Required),
	String("stateOrProvinceName", Required),
	String("localityName", Required),
	String("emailAddress", Required),
}

// CSRCreate generates a key pair and signing request on the server side.
func (s *SSLAPI) CSRCreate(ctx context.Context, args Params) (*Response, error) {
	return s.c.execute(ctx, "ssl/csrcreate/", args, sslCSRCreateRules)
}

var sslProductListRules = Rules{
	Integer("pageLength"),
	Integer("page"),
	Boolean("wildcard"),
	Boolean("multidomain"),
	List("validationType", []string{"dv", "ov", "ev"}),
	Boolean("trial"),
}

func (s *SSLAPI) ProductList(ctx context.Context, args Params) (*Response, error) {
	return s.c.execute(ctx, "ssl/productlist/", args, sslProductListRules)
}

var sslProductGetInfoRules = Rules{Integer("productID", Required)}

func (s *SSLAPI) ProductGetInfo(ctx context.Context, productID int64) (*Response, error) {
	return s.c.execute(ctx, "ssl/productgetinfo/", idParam("productID", productID), sslProductGetInfoRules)
}

var sslListRules = Rules{
	Integer("pageLength"),
	Integer("page"),
	Integer("productID"),
	List("status", []string{"process", "valid", "expired", "renew", "reissue", "cancel"}),
	Boolean("renewable"),
	String("commonName"),
}

// List searches the certificates of the account.
func (s *SSLAPI) List(ctx context.Context, args Params) (*Response, error) {
	return s.c.execute(ctx, "ssl/list/", args, sslListRules)
}

var sslGetInfoRules = Rules{
	Integer("certificateID", Required),
	List("infoType", []string{"status", "ssldata"}),
}

func (s *SSLAPI) GetInfo(ctx context.Context, certificateID int64, args Params) (*Response, error) {
	return s.c.execute(ctx, "ssl/getinfo/", merge(idParam("certificateID", certificateID), args), sslGetInfoRules)
}

var sslCreateRules = Rules{
	Integer("productID", Required),
	String("csrData", Required),
	String("keyData"),
	Integer("period"),
}

// Create orders a certificate for the product using the given CSR.
func (s *SSLAPI) Create(ctx context.Context, productID int64, args Params) (*Response, error) {
	return s.c.execute(ctx, "ssl/create/", merge(idParam("productID", productID), args), sslCreateRules)
}

// idParam leaves out a zero ID so that the required-field check reports it.
func idParam(key string, id int64) Params {
	if id == 0 {
		return Params{}
	}
	return Params{key: id}
}
