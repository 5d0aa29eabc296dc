package dondominio

import "context"

// UserAPI wraps the user/* operations (reseller sub-users).
type UserAPI struct{ module }

func newUserAPI(c *Client) *UserAPI {
	u := &UserAPI{module: newModule(c, "user")}
	u.handle("getList", u.List)
	u.handle("getInfo", func(ctx context.Context, a Params) (*Response, error) {
		return u.GetInfo(ctx, argString(a, "username"))
	})
	u.aliases["list"] = "getList"
	return u
}

var userListRules = Rules{
	Integer("pageLength"),
	Integer("page"),
	List("status", []string{"enabled", "disabled"}),
	String("username"),
}

func (u *UserAPI) List(ctx context.Context, args Params) (*Response, error) {
	return u.c.execute(ctx, "user/list/", args, userListRules)
}

var userGetInfoRules = Rules{String("username", Required)}

func (u *UserAPI) GetInfo(ctx context.Context, username string) (*Response, error) {
	return u.c.execute(ctx, "user/getinfo/", Params{"username": username}, userGetInfoRules)
}
