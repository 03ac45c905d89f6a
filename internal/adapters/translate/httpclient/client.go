// Package httpclient implements HTTP-backed machine-translation providers.
package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	TypeLibreTranslate = "libretranslate"
	TypeMyMemory       = "mymemory"
)

type Client struct {
	ProviderType string
	APIKey       string
	BaseURL      string
	http         *resty.Client
}

func New(providerType, apiKey, baseURL string) *Client {
	c := resty.New().SetTimeout(20 * time.Second)
	return &Client{ProviderType: strings.ToLower(providerType), APIKey: apiKey, BaseURL: baseURL, http: c}
}

func (c *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	switch c.ProviderType {
	case TypeLibreTranslate:
		return c.translateLibre(ctx, text, from, to)
	case TypeMyMemory:
		return c.translateMyMemory(ctx, text, from, to)
	default:
		return "", fmt.Errorf("unsupported provider: %s", c.ProviderType)
	}
}

func (c *Client) Test(ctx context.Context) error {
	_, err := c.Translate(ctx, "ping", "en", "es")
	return err
}

func (c *Client) translateLibre(ctx context.Context, text, from, to string) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = "http://localhost:5000"
	}
	url := strings.TrimRight(base, "/") + "/translate"
	body := map[string]any{
		"q":      text,
		"source": from,
		"target": to,
		"format": "text",
	}
	if c.APIKey != "" {
		body["api_key"] = c.APIKey
	}
	var resp struct {
		TranslatedText string `json:"translatedText"`
		Error          string `json:"error"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).SetError(&resp).
		Post(url)
	if err != nil {
		return "", err
	}
	if r.IsError() {
		msg := resp.Error
		if msg == "" {
			msg = r.String()
		}
		return "", fmt.Errorf("libretranslate: %s; body: %s", r.Status(), msg)
	}
	if resp.TranslatedText == "" {
		return "", fmt.Errorf("libretranslate: empty translation returned")
	}
	return resp.TranslatedText, nil
}

func (c *Client) translateMyMemory(ctx context.Context, text, from, to string) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = "https://api.mymemory.translated.net"
	}
	url := strings.TrimRight(base, "/") + "/get"
	var resp struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus  any    `json:"responseStatus"`
		ResponseDetails string `json:"responseDetails"`
	}
	req := c.http.R().SetContext(ctx).
		SetQueryParam("q", text).
		SetQueryParam("langpair", from+"|"+to).
		SetResult(&resp)
	if c.APIKey != "" {
		req.SetQueryParam("key", c.APIKey)
	}
	r, err := req.Get(url)
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("mymemory: %s; body: %s", r.Status(), r.String())
	}
	// MyMemory reports errors with HTTP 200 and a non-200 responseStatus.
	if s := fmt.Sprint(resp.ResponseStatus); s != "200" {
		return "", fmt.Errorf("mymemory: status %s: %s", s, resp.ResponseDetails)
	}
	if resp.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("mymemory: empty translation returned")
	}
	return resp.ResponseData.TranslatedText, nil
}
