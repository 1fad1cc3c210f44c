package client

import (
	"encoding/json"
	"fmt"

	"pipid/pkg/identity"
)

type IdentityClient struct {
	httpClient *HttpClient
}

func NewIdentityClient(baseUrl string) *IdentityClient {
	return &IdentityClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *IdentityClient) Validate(doc any) (*Response, error) {
	return c.httpClient.POST("/api/v1/identity/validate", doc)
}

func (c *IdentityClient) ValidateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/identity/validate", rawBody)
}

func (c *IdentityClient) Normalize(doc any) (*Response, error) {
	return c.httpClient.POST("/api/v1/identity/normalize", doc)
}

func (c *IdentityClient) Ingest(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/identity/ingest", body)
}

func (c *IdentityClient) DecodeResult(resp *Response) (*identity.Result, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode result wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var result identity.Result
	if err := json.Unmarshal(wrapper.Data, &result); err != nil {
		return nil, fmt.Errorf("could not decode result json:\n%+v\n%s", resp.ToString(), err)
	}

	return &result, nil
}

func (c *IdentityClient) DecodeDocument(resp *Response) (identity.Document, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode document wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var doc identity.Document
	if err := json.Unmarshal(wrapper.Data, &doc); err != nil {
		return nil, fmt.Errorf("could not decode document json:\n%+v\n%s", resp.ToString(), err)
	}

	return doc, nil
}
