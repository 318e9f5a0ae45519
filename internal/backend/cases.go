package backend

import (
	"context"
	"net/http"
	"net/url"

	"anilink/internal/domain/medcase"
)

var _ medcase.Upstream = (*Client)(nil)

func (c *Client) ListCases(ctx context.Context, f medcase.ListFilter) ([]medcase.Case, error) {
	var out []medcase.Case
	path := withQuery("/cases", url.Values{
		"animal_id": {f.AnimalID},
		"status":    {f.Status},
		"scope":     {f.Scope},
	})
	err := c.DoJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) GetCase(ctx context.Context, id string) (*medcase.Case, error) {
	var out *medcase.Case
	err := c.DoJSON(ctx, http.MethodGet, pathID("/cases", id), nil, &out)
	return out, err
}

// CreateCase forwards the case form; optional fields are only sent when set.
func (c *Client) CreateCase(ctx context.Context, req medcase.CreateCaseRequest) (*medcase.Case, error) {
	fields := []FormField{
		{Name: "animal_type", Value: req.AnimalType},
		{Name: "symptoms", Value: req.Symptoms},
	}
	for _, f := range []FormField{
		{Name: "notes", Value: req.Notes},
		{Name: "location", Value: req.Location},
		{Name: "district", Value: req.District},
		{Name: "animal_id", Value: req.AnimalID},
	} {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}

	files := make([]FormFile, 0, len(req.Images))
	for _, img := range req.Images {
		files = append(files, FormFile{
			Field:       "images",
			Filename:    img.Filename,
			ContentType: img.ContentType,
			Content:     img.Content,
		})
	}

	var out medcase.Case
	if err := c.DoMultipart(ctx, http.MethodPost, "/cases", fields, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CloseCase(ctx context.Context, id string) (*medcase.Case, error) {
	var out medcase.Case
	if err := c.DoJSON(ctx, http.MethodPost, pathID("/cases", id, "close"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
