package apiclient

import "github.com/fboard-dev/fboard/internal/api"

func (c *APIClient) SendVerificationCode(email string) error {
	resp, err := c.do("POST", "/v1/auth/send_verification_code", api.SendCodeRequest{Email: email}, "")
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

func (c *APIClient) CheckVerificationCode(email, code string) (api.VerificationResponse, error) {
	var out api.VerificationResponse
	resp, err := c.do("POST", "/v1/auth/check_verification_code", api.CheckCodeRequest{Email: email, Code: code}, "")
	if err != nil {
		return out, err
	}
	return out, decodeOrError(resp, &out)
}

func (c *APIClient) SendLoginCode(email string) error {
	resp, err := c.do("POST", "/v1/auth/send_login_code", api.SendCodeRequest{Email: email}, "")
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// Login returns the access token for Authorization: Bearer use.
func (c *APIClient) Login(email, code string) (api.LoginResponse, error) {
	var out api.LoginResponse
	resp, err := c.do("POST", "/v1/auth/login", api.LoginRequest{Email: email, Code: code}, "")
	if err != nil {
		return out, err
	}
	return out, decodeOrError(resp, &out)
}
