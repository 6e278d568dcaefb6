package trier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Integration endpoints of the Trier ERP REST API.
const (
	ProdutoEndpoint = "/rest/integracao/produto/obter-v1"
	EstoqueEndpoint = "/rest/integracao/estoque/obter-v1"
	VendaEndpoint   = "/rest/integracao/venda/obter-v1"
)

const DefaultPageSize = 200

// UpstreamError marks a failure talking to the Trier API: transport errors,
// non-2xx responses and undecodable bodies. Callers use it to distinguish
// gateway failures from local ones.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("trier: %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("trier: request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client is a thin wrapper over a single authenticated HTTP session against
// the Trier API.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{http: httpClient}
}

// Get issues a single GET and decodes the JSON body.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (any, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: err}
	}
	if resp.IsError() {
		return nil, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode()}
	}

	var payload any
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode(), Err: err}
	}
	return payload, nil
}

// PaginatedGet walks endpoint with the Trier page cursor
// (primeiroRegistro/quantidadeRegistros), invoking fn once per non-empty
// page. It stops on an empty page or on the first short page.
func (c *Client) PaginatedGet(ctx context.Context, endpoint string, params map[string]string, pageSize int, fn func(page []Record) error) error {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	firstRecord := 0
	for {
		query := make(map[string]string, len(params)+2)
		for k, v := range params {
			query[k] = v
		}
		query["primeiroRegistro"] = strconv.Itoa(firstRecord)
		query["quantidadeRegistros"] = strconv.Itoa(pageSize)

		payload, err := c.Get(ctx, endpoint, query)
		if err != nil {
			return err
		}

		records := extractRecords(payload)
		if len(records) == 0 {
			return nil
		}

		if err := fn(records); err != nil {
			return err
		}

		if len(records) < pageSize {
			return nil
		}
		firstRecord += pageSize
	}
}

// FetchAll drains every page of endpoint into memory. Bounded by catalog
// size, which is counted in thousands for the installations this serves.
func (c *Client) FetchAll(ctx context.Context, endpoint string, params map[string]string, pageSize int) ([]Record, error) {
	var all []Record
	err := c.PaginatedGet(ctx, endpoint, params, pageSize, func(page []Record) error {
		all = append(all, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}
