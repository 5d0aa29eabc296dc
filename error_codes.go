package dondominio

import "errors"

// Families group the kinds below; errors.Is(err, ErrDomain) matches any domain error.
var (
	ErrSyntax         = errors.New("dondominio: syntax error")
	ErrAuthentication = errors.New("dondominio: authentication error")
	ErrAccount        = errors.New("dondominio: account error")
	ErrDomain         = errors.New("dondominio: domain error")
	ErrContact        = errors.New("dondominio: contact error")
	ErrService        = errors.New("dondominio: service error")
)

var (
	ErrUndefined = errors.New("dondominio: undefined error")

	ErrParameterFault               = errors.New("dondominio: parameter fault")
	ErrInvalidParameter             = errors.New("dondominio: invalid parameter")
	ErrObjectOrActionNotValid       = errors.New("dondominio: object or action not valid")
	ErrObjectOrActionNotAllowed     = errors.New("dondominio: object or action not allowed")
	ErrObjectOrActionNotImplemented = errors.New("dondominio: object or action not implemented")

	ErrLoginRequired  = errors.New("dondominio: login required")
	ErrLoginInvalid   = errors.New("dondominio: login invalid")
	ErrSessionInvalid = errors.New("dondominio: session invalid")

	ErrActionNotAllowed = errors.New("dondominio: action not allowed")

	ErrAccountBlocked      = errors.New("dondominio: account blocked")
	ErrAccountDeleted      = errors.New("dondominio: account deleted")
	ErrAccountInactive     = errors.New("dondominio: account inactive")
	ErrAccountNotExists    = errors.New("dondominio: account does not exist")
	ErrAccountInvalidPass  = errors.New("dondominio: invalid account password")
	ErrAccountFiltered     = errors.New("dondominio: account filtered")
	ErrAccountBanned       = errors.New("dondominio: account banned")
	ErrInsufficientBalance = errors.New("dondominio: insufficient balance")

	ErrInvalidDomainName        = errors.New("dondominio: invalid domain name")
	ErrTLDNotSupported          = errors.New("dondominio: tld not supported")
	ErrTLDUnderMaintenance      = errors.New("dondominio: tld under maintenance")
	ErrDomainCheck              = errors.New("dondominio: domain check error")
	ErrDomainTransferNotAllowed = errors.New("dondominio: domain transfer not allowed")
	ErrDomainWhoisNotAllowed    = errors.New("dondominio: domain whois not allowed")
	ErrDomainWhois              = errors.New("dondominio: domain whois error")
	ErrDomainNotFound           = errors.New("dondominio: domain not found")
	ErrDomainCreate             = errors.New("dondominio: domain create error")
	ErrDomainTaken              = errors.New("dondominio: domain taken")
	ErrDomainPremium            = errors.New("dondominio: premium domain")
	ErrDomainTransfer           = errors.New("dondominio: domain transfer error")
	ErrDomainRenew              = errors.New("dondominio: domain renew error")
	ErrDomainRenewNotAllowed    = errors.New("dondominio: domain renew not allowed")
	ErrDomainRenewBlocked       = errors.New("dondominio: domain renew blocked")
	ErrDomainUpdate             = errors.New("dondominio: domain update error")
	ErrDomainUpdateNotAllowed   = errors.New("dondominio: domain update not allowed")
	ErrDomainUpdateBlocked      = errors.New("dondominio: domain update blocked")
	ErrDomainVerification       = errors.New("dondominio: domain verification status")

	ErrContactNotExists    = errors.New("dondominio: contact does not exist")
	ErrContactData         = errors.New("dondominio: contact data error")
	ErrContactVerification = errors.New("dondominio: contact verification status")

	ErrServiceNotFound           = errors.New("dondominio: service not found")
	ErrServiceEntityNotFound     = errors.New("dondominio: service entity not found")
	ErrServiceEntityLimitReached = errors.New("dondominio: service entity limit reached")
	ErrServiceEntityCreate       = errors.New("dondominio: service entity create error")
	ErrServiceEntityUpdate       = errors.New("dondominio: service entity update error")
	ErrServiceEntityDelete       = errors.New("dondominio: service entity delete error")
	ErrServiceCreate             = errors.New("dondominio: service create error")
	ErrServiceUpgrade            = errors.New("dondominio: service upgrade error")
	ErrServiceRenew              = errors.New("dondominio: service renew error")
	ErrServiceParkingUpdate      = errors.New("dondominio: service parking update error")

	ErrWebconstructor = errors.New("dondominio: webconstructor error")
)

// errorCodes maps the envelope's errorCode to a kind. Codes not listed here
// become ErrAPI.
var errorCodes = map[string]error{
	"-1": ErrValidation,
	"1":  ErrUndefined,

	"100": ErrSyntax,
	"101": ErrParameterFault,
	"102": ErrObjectOrActionNotValid,
	"103": ErrObjectOrActionNotAllowed,
	"104": ErrObjectOrActionNotImplemented,
	"105": ErrInvalidParameter,

	"200": ErrLoginRequired,
	"201": ErrLoginInvalid,
	"210": ErrSessionInvalid,

	"300": ErrActionNotAllowed,

	"1000": ErrAccountBlocked,
	"1001": ErrAccountDeleted,
	"1002": ErrAccountInactive,
	"1003": ErrAccountNotExists,
	"1004": ErrAccountInvalidPass,
	"1005": ErrAccountInvalidPass,
	"1006": ErrAccountBlocked,
	"1007": ErrAccountFiltered,
	"1009": ErrAccountInvalidPass,
	"1010": ErrAccountBlocked,
	"1011": ErrAccountBlocked,
	"1012": ErrAccountBlocked,
	"1013": ErrAccountBlocked,
	"1014": ErrAccountFiltered,
	"1030": ErrAccountBanned,
	"1100": ErrInsufficientBalance,

	"2001": ErrInvalidDomainName,
	"2002": ErrTLDNotSupported,
	"2003": ErrTLDUnderMaintenance,
	"2004": ErrDomainCheck,
	"2005": ErrDomainTransferNotAllowed,
	"2006": ErrDomainWhoisNotAllowed,
	"2007": ErrDomainWhois,
	"2008": ErrDomainNotFound,
	"2009": ErrDomainCreate,
	"2010": ErrDomainTaken,
	"2011": ErrDomainPremium,
	"2012": ErrDomainTransfer,
	"2100": ErrDomainRenew,
	"2101": ErrDomainRenewNotAllowed,
	"2102": ErrDomainRenewBlocked,
	"2200": ErrDomainUpdate,
	"2201": ErrDomainUpdateNotAllowed,
	"2202": ErrDomainUpdateBlocked,
	"2210": ErrDomainVerification,

	"3001": ErrContactNotExists,
	"3002": ErrContactData,
	"3003": ErrContactVerification,

	"4001": ErrServiceNotFound,
	"4002": ErrServiceEntityNotFound,
	"4003": ErrServiceEntityLimitReached,
	"4004": ErrServiceEntityCreate,
	"4005": ErrServiceEntityUpdate,
	"4006": ErrServiceEntityDelete,
	"4007": ErrServiceCreate,
	"4008": ErrServiceUpgrade,
	"4009": ErrServiceRenew,
	"4010": ErrServiceParkingUpdate,

	"10001": ErrWebconstructor,
}

// kindParent links a kind to the family it belongs to. Kinds absent here stand alone.
var kindParent = map[error]error{
	ErrParameterFault:   ErrSyntax,
	ErrInvalidParameter: ErrSyntax,

	ErrLoginRequired:  ErrAuthentication,
	ErrLoginInvalid:   ErrAuthentication,
	ErrSessionInvalid: ErrAuthentication,

	ErrAccountBlocked:      ErrAccount,
	ErrAccountDeleted:      ErrAccount,
	ErrAccountInactive:     ErrAccount,
	ErrAccountNotExists:    ErrAccount,
	ErrAccountInvalidPass:  ErrAccount,
	ErrAccountFiltered:     ErrAccount,
	ErrAccountBanned:       ErrAccount,
	ErrInsufficientBalance: ErrAccount,

	ErrInvalidDomainName:        ErrDomain,
	ErrTLDNotSupported:          ErrDomain,
	ErrTLDUnderMaintenance:      ErrDomain,
	ErrDomainCheck:              ErrDomain,
	ErrDomainTransferNotAllowed: ErrDomain,
	ErrDomainWhoisNotAllowed:    ErrDomain,
	ErrDomainWhois:              ErrDomain,
	ErrDomainNotFound:           ErrDomain,
	ErrDomainCreate:             ErrDomain,
	ErrDomainTaken:              ErrDomainCreate,
	ErrDomainPremium:            ErrDomainCreate,
	ErrDomainTransfer:           ErrDomain,
	ErrDomainRenew:              ErrDomain,
	ErrDomainRenewNotAllowed:    ErrDomain,
	ErrDomainRenewBlocked:       ErrDomain,
	ErrDomainUpdate:             ErrDomain,
	ErrDomainUpdateNotAllowed:   ErrDomain,
	ErrDomainUpdateBlocked:      ErrDomain,
	ErrDomainVerification:       ErrDomain,

	ErrContactNotExists:    ErrContact,
	ErrContactData:         ErrContact,
	ErrContactVerification: ErrContact,

	ErrServiceNotFound:           ErrService,
	ErrServiceEntityNotFound:     ErrService,
	ErrServiceEntityLimitReached: ErrService,
	ErrServiceEntityCreate:       ErrService,
	ErrServiceEntityUpdate:       ErrService,
	ErrServiceEntityDelete:       ErrService,
	ErrServiceCreate:             ErrService,
	ErrServiceUpgrade:            ErrService,
	ErrServiceRenew:              ErrService,
	ErrServiceParkingUpdate:      ErrService,
}

// KindForCode returns the error kind registered for an API error code, or ErrAPI.
func KindForCode(code string) error {
	if k, ok := errorCodes[code]; ok {
		return k
	}
	return ErrAPI
}
