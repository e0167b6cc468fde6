package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (d *APIDriver) post(path string, body any) (*http.Response, error) {
	var reader *bytes.Buffer
	if body == nil {
		reader = bytes.NewBuffer(nil)
	} else {
		reqBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(reqBody)
	}
	req, err := http.NewRequest(http.MethodPost, d.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Operator", "functional")
	return d.client.Do(req)
}

func (d *APIDriver) do(method, path string, body any) (*http.Response, error) {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, d.baseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return d.client.Do(req)
}

func (d *APIDriver) GetProcedure() (*http.Response, error) {
	return d.client.Get(d.baseURL + "/v1/procedure")
}

func (d *APIDriver) GetNextTask() (*http.Response, error) {
	return d.client.Get(d.baseURL + "/v1/procedure/next-task")
}

func (d *APIDriver) Advance() (*http.Response, error) {
	return d.post("/v1/procedure/advance", nil)
}

func (d *APIDriver) Regress() (*http.Response, error) {
	return d.post("/v1/procedure/regress", nil)
}

func (d *APIDriver) Abort() (*http.Response, error) {
	return d.post("/v1/procedure/abort", nil)
}

func (d *APIDriver) CompleteTask(task string) (*http.Response, error) {
	return d.post(fmt.Sprintf("/v1/procedure/tasks/%s/complete", url.PathEscape(task)), nil)
}

func (d *APIDriver) UncompleteTask(task string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/v1/procedure/tasks/%s/complete", d.baseURL, url.PathEscape(task)), nil)
	if err != nil {
		return nil, err
	}
	return d.client.Do(req)
}

func (d *APIDriver) GetLink() (*http.Response, error) {
	return d.client.Get(d.baseURL + "/v1/link")
}

func (d *APIDriver) ListPorts() (*http.Response, error) {
	return d.client.Get(d.baseURL + "/v1/link/ports")
}

func (d *APIDriver) SetupLink(port string, baud int) (*http.Response, error) {
	return d.post("/v1/link", map[string]any{"port": port, "baud_rate": baud})
}

func (d *APIDriver) StartWorker() (*http.Response, error) {
	return d.post("/v1/link/worker", nil)
}

func (d *APIDriver) StopLink() (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, d.baseURL+"/v1/link", nil)
	if err != nil {
		return nil, err
	}
	return d.client.Do(req)
}

func (d *APIDriver) Toggle(pins string) (*http.Response, error) {
	return d.post("/v1/link/toggle", map[string]any{"pins": pins})
}

func (d *APIDriver) SetPins(pins string) (*http.Response, error) {
	return d.do(http.MethodPut, "/v1/link/pins", map[string]any{"pins": pins})
}

func (d *APIDriver) GetTelemetry() (*http.Response, error) {
	return d.client.Get(d.baseURL + "/v1/telemetry")
}

func (d *APIDriver) ListEvents(kind string) (*http.Response, error) {
	query := url.Values{}
	if kind != "" {
		query.Set("kind", kind)
	}
	query.Set("limit", "100")
	return d.client.Get(d.baseURL + "/v1/events?" + query.Encode())
}
