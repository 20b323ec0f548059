package cookiejar

import "github.com/signinflow/idsignin/pkg/signin"

var (
	_ signin.MessageStore[signin.SignInMessage]  = (*CookieStore[signin.SignInMessage])(nil)
	_ signin.MessageStore[signin.SignOutMessage] = (*CookieStore[signin.SignOutMessage])(nil)
	_ signin.MessageStore[signin.SignInMessage]  = (*MemoryStore[signin.SignInMessage])(nil)
	_ signin.MessageStore[signin.SignOutMessage] = (*MemoryStore[signin.SignOutMessage])(nil)
	_ signin.ValueStore                          = (*CookieValueStore)(nil)
	_ signin.ValueStore                          = (*MemoryValueStore)(nil)
)
