package gemini

import (
	"fmt"
	"strings"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

const maxPromptText = 60000

func clip(text string) string {
	if len(text) > maxPromptText {
		return text[:maxPromptText]
	}
	return text
}

func buildValidationPrompt(expected domain.ExpectedStatement, firstPagesText string) string {
	return fmt.Sprintf(`You are a bank statement validator.
Decide whether the document below is a %s bank statement for %s %d.

Return STRICT JSON only, no markdown, with exactly these keys:
{"is_valid": bool, "bank_match": bool, "month_match": bool, "year_match": bool,
 "error": string, "detected_bank": string, "detected_month": string,
 "detected_year": number, "confidence": number from 0 to 1}

Rules:
- is_valid is true only when bank, month and year all match.
- On mismatch, error must say which attribute differed and what was detected.
- detected_month is the full English month name, or "" if unreadable.

Document:
%s`, expected.Bank, expected.Month.String(), expected.Year, clip(firstPagesText))
}

func buildPagePrompt(req domain.PageRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a bank statement transaction extractor.
Extract every transaction from page %d of %d below.

Return STRICT JSON only, no markdown, with exactly these keys:
{"transactions": [{"date": "YYYY-MM-DD", "description": string,
  "amount": number (positive credit, negative debit), "category": string,
  "is_transfer": bool}],
 "balance": {"opening": number or null, "closing": number or null,
  "available": number or null, "current": number or null,
  "confidence": number from 0 to 1} or null,
 "page_ending_balance": number or null,
 "notes": string,
 "suspect_truncation": bool,
 "success": bool,
 "security": {"account_numbers": int, "mobile_numbers": int, "emails": int,
  "government_ids": int, "customer_ids": int, "routing_codes": int,
  "card_numbers": int, "addresses": int, "person_names": int}}

Rules:
- Redact sensitive data from descriptions (account numbers, phone numbers,
  emails, government IDs, customer IDs, routing codes, card numbers,
  addresses, person names) and count each redaction in "security".
- page_ending_balance is the running balance after the LAST transaction on
  this page, null if none is printed.
- A page with no transactions is still "success": true when it was read
  cleanly; set "success": false only when the page could not be parsed.
- Set "suspect_truncation" when the page appears cut off mid-transaction.
`, req.Number, req.TotalPages)

	if req.PreviousBalance != nil {
		fmt.Fprintf(&b, "- The balance carried in from the previous page is %s; use it to sanity-check amounts.\n", req.PreviousBalance.StringFixed(2))
	}
	if len(req.Categories) > 0 {
		fmt.Fprintf(&b, "- Categorize using ONLY these categories: %s. Use %q when unsure.\n",
			strings.Join(req.Categories, ", "), domain.CategoryUncategorized)
	}

	b.WriteString("\nPage text:\n")
	b.WriteString(clip(req.Text))
	return b.String()
}

func buildFinalizePrompt(transactions []domain.Transaction, categories []string) string {
	var list strings.Builder
	for _, tx := range transactions {
		fmt.Fprintf(&list, "%s\t%s\t%s\t%s\n", tx.ID, tx.Date.Format("2006-01-02"), tx.Description, tx.Category)
	}

	return fmt.Sprintf(`You are a transaction categorizer.
Each line below is: id, date, description, current category.
Assign every transaction the best category from the allowed list.

Allowed categories: %s

Return STRICT JSON only, no markdown: a JSON array of
{"id": string, "category": string} with one entry per transaction.

Transactions:
%s`, strings.Join(categories, ", "), clip(list.String()))
}
