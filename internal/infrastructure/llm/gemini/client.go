// Package gemini adapts Google's Gemini models to the extraction ports:
// statement validation, per-page transaction extraction and category
// finalization. Every call goes through the resilience executor and every
// response is expected to be strict JSON.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/finparse/statement-extractor/internal/core/domain"
	"github.com/finparse/statement-extractor/internal/infrastructure/resilience"
)

type Client struct {
	genai *genai.Client
	model string
	exec  *resilience.Executor
}

// New builds a Gemini client for the given model. Credentials come from
// the environment (GEMINI_API_KEY), resolved by the genai library.
func New(ctx context.Context, model string, exec *resilience.Executor) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{genai: client, model: model, exec: exec}, nil
}

func (c *Client) generate(ctx context.Context, operation, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	var text string
	err := c.exec.Execute(ctx, operation, func(ctx context.Context) error {
		resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
		if err != nil {
			return err
		}
		text = strings.TrimSpace(resp.Text())
		if text == "" {
			return fmt.Errorf("empty model response")
		}
		return nil
	}, classifyGeminiError)
	if err != nil {
		return "", wrapTemporaryIfNeeded(operation, err)
	}
	return text, nil
}

type Validator struct {
	client *Client
}

func NewValidator(client *Client) *Validator {
	return &Validator{client: client}
}

func (v *Validator) Validate(ctx context.Context, expected domain.ExpectedStatement, firstPagesText string) (domain.ValidationResult, error) {
	respText, err := v.client.generate(ctx, "validate_statement", buildValidationPrompt(expected, firstPagesText))
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return parseValidationResult(respText)
}

type PageProcessor struct {
	client *Client
}

func NewPageProcessor(client *Client) *PageProcessor {
	return &PageProcessor{client: client}
}

func (p *PageProcessor) ProcessPage(ctx context.Context, req domain.PageRequest) (domain.PageResult, error) {
	respText, err := p.client.generate(ctx, "process_page", buildPagePrompt(req))
	if err != nil {
		return domain.PageResult{}, err
	}
	return parsePageResult(respText, req.Number, req.TotalPages)
}

type Finalizer struct {
	client *Client
}

func NewFinalizer(client *Client) *Finalizer {
	return &Finalizer{client: client}
}

// FinalizeCategories asks the model to reconcile every transaction's
// category against the vocabulary. Transactions the model does not mention
// keep their current category.
func (f *Finalizer) FinalizeCategories(ctx context.Context, transactions []domain.Transaction, categories []string) ([]domain.Transaction, error) {
	if len(transactions) == 0 {
		return transactions, nil
	}
	respText, err := f.client.generate(ctx, "finalize_categories", buildFinalizePrompt(transactions, categories))
	if err != nil {
		return nil, err
	}
	return applyFinalizedCategories(respText, transactions, categories)
}
