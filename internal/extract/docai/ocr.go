// Package docai reads scanned resumes through a Google Document AI OCR processor.
package docai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

const requestTimeout = time.Minute

// OCR calls one processor, named projects/{p}/locations/{l}/processors/{id}.
type OCR struct {
	client    *documentai.DocumentProcessorClient
	processor string
}

func New(ctx context.Context, processor string, opts ...option.ClientOption) (*OCR, error) {
	processor = strings.TrimSpace(processor)
	location, err := locationOf(processor)
	if err != nil {
		return nil, err
	}
	// Processors are only reachable through their regional endpoint.
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)
	opts = append([]option.ClientOption{option.WithEndpoint(endpoint)}, opts...)
	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("documentai client: %w", err)
	}
	return &OCR{client: client, processor: processor}, nil
}

// Recognize returns the full text Document AI read from the file.
func (o *OCR) Recognize(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := o.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: o.processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{Content: data, MimeType: mimeType},
		},
	})
	if err != nil {
		return "", fmt.Errorf("documentai process: %w", err)
	}
	return strings.TrimSpace(resp.GetDocument().GetText()), nil
}

func (o *OCR) Close() error {
	return o.client.Close()
}

func locationOf(processor string) (string, error) {
	parts := strings.Split(processor, "/")
	if len(parts) < 6 || parts[0] != "projects" || parts[2] != "locations" || parts[4] != "processors" {
		return "", errors.New("documentai processor must look like projects/{project}/locations/{location}/processors/{id}")
	}
	if parts[1] == "" || parts[3] == "" || parts[5] == "" {
		return "", errors.New("documentai processor has empty segments")
	}
	return parts[3], nil
}
