package vipps

// ExchangeError reports a failed code-for-tokens exchange. ErrorCode and
// ErrorDescription carry the provider's OAuth error fields when the
// response contained them; Err holds the transport-level cause.
type ExchangeError struct {
	ErrorCode        string
	ErrorDescription string
	Err              error
}

func (e *ExchangeError) Error() string {
	return "vipps token exchange failed: " + e.Message()
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// Message returns the most specific description available:
// error_description, then error, then the transport error text.
func (e *ExchangeError) Message() string {
	return providerMessage(e.ErrorCode, e.ErrorDescription, e.Err)
}

// ProfileError reports a failed userinfo fetch, with the same
// error-extraction policy as ExchangeError.
type ProfileError struct {
	ErrorCode        string
	ErrorDescription string
	Err              error
}

func (e *ProfileError) Error() string {
	return "vipps userinfo fetch failed: " + e.Message()
}

func (e *ProfileError) Unwrap() error { return e.Err }

func (e *ProfileError) Message() string {
	return providerMessage(e.ErrorCode, e.ErrorDescription, e.Err)
}

func providerMessage(code, description string, err error) string {
	switch {
	case description != "":
		return description
	case code != "":
		return code
	case err != nil:
		return err.Error()
	}
	return "unknown error"
}
