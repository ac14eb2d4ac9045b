package middlewares

type middleware struct {
	allowedMethods string
}

func NewMiddleware(allowedMethods string) *middleware {
	return &middleware{
		allowedMethods: allowedMethods,
	}
}
