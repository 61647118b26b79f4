package apiclient

import "github.com/fboard-dev/fboard/internal/api"

func (c *APIClient) CreatePost(slug string, req api.CreatePostRequest) (api.PostResponse, error) {
	var out api.PostResponse
	resp, err := c.do("POST", "/v1/boards/"+slug+"/posts", req, "")
	if err != nil {
		return out, err
	}
	return out, decodeOrError(resp, &out)
}

func (c *APIClient) UpdatePostStatus(slug, postId, status, claimToken string) error {
	resp, err := c.do("PATCH", "/v1/boards/"+slug+"/posts/"+postId, api.UpdatePostStatusRequest{Status: status}, claimToken)
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

func (c *APIClient) CastVote(postId, email string) error {
	resp, err := c.do("POST", "/v1/posts/"+postId+"/votes", api.VoteRequest{Email: email}, "")
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

func (c *APIClient) RetractVote(postId, email string) error {
	resp, err := c.do("DELETE", "/v1/posts/"+postId+"/votes", api.VoteRequest{Email: email}, "")
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

func (c *APIClient) CreateComment(postId string, req api.CreateCommentRequest) (api.CommentResponse, error) {
	var out api.CommentResponse
	resp, err := c.do("POST", "/v1/posts/"+postId+"/comments", req, "")
	if err != nil {
		return out, err
	}
	return out, decodeOrError(resp, &out)
}

func (c *APIClient) GetComments(postId string) (api.CommentListResponse, error) {
	var out api.CommentListResponse
	resp, err := c.do("GET", "/v1/posts/"+postId+"/comments", nil, "")
	if err != nil {
		return out, err
	}
	return out, decodeOrError(resp, &out)
}
