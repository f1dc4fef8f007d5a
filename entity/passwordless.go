package entity

type PasswordlessChallenge struct {
	Email      string `json:"email"`
	CodeLength string `json:"code_length"`
	Error      bool   `json:"error"`
}

func (c PasswordlessChallenge) Pending() bool {
	return c.Email != ""
}

// CodeRequestResponse is what the identity provider answers to a code
// request. Response holds the length of the code it sent.
type CodeRequestResponse struct {
	Response string `json:"response"`
}

type LoginResult struct {
	AccessToken      string `json:"access_token,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func (r LoginResult) Failed() bool {
	return r.Error != "" || r.ErrorDescription != ""
}
