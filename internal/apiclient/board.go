package apiclient

import "github.com/fboard-dev/fboard/internal/api"

// CreateBoard creates a board and returns the response containing the one
// and only copy of the claim token.
func (c *APIClient) CreateBoard(name string) (api.CreateBoardResponse, error) {
	var out api.CreateBoardResponse
	resp, err := c.do("POST", "/v1/boards", api.CreateBoardRequest{Name: name}, "")
	if err != nil {
		return out, err
	}
	return out, decodeOrError(resp, &out)
}

func (c *APIClient) GetBoard(slug string) (api.BoardPageResponse, error) {
	var out api.BoardPageResponse
	resp, err := c.do("GET", "/v1/boards/"+slug, nil, "")
	if err != nil {
		return out, err
	}
	return out, decodeOrError(resp, &out)
}

func (c *APIClient) RenameBoard(slug, name, claimToken string) error {
	resp, err := c.do("PATCH", "/v1/boards/"+slug, api.RenameBoardRequest{Name: name}, claimToken)
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

func (c *APIClient) DeleteBoard(slug, claimToken string) error {
	resp, err := c.do("DELETE", "/v1/boards/"+slug, nil, claimToken)
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}
