// Package apicheck fetches a product list from a remote API and checks a
// small set of field-level rules per item, producing a textual report.
package apicheck

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultURL is the product endpoint checked when none is configured.
const DefaultURL = "https://fakestoreapi.com/products"

// Fetch performs a single bounded-time GET and returns the status code and
// raw body. Transport failures halt the pipeline.
func Fetch(client *http.Client, url string) (int, []byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// Decode parses the body as a JSON array of loosely-typed objects. The items
// stay untyped on purpose: the checks below validate presence and dynamic
// type of fields, which binding to a struct would mask.
func Decode(body []byte) ([]map[string]interface{}, error) {
	var items []map[string]interface{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}
	return items, nil
}

// ValidateItem checks one product against the three rules. The checks are
// independent: every failing rule contributes one violation, they do not
// short-circuit. position is the item's 1-based index, used as the label
// when the item carries no numeric id.
func ValidateItem(item map[string]interface{}, position int) []string {
	label := itemLabel(item, position)
	var violations []string

	// title must be a non-empty string
	if title, ok := item["title"]; !ok {
		violations = append(violations, fmt.Sprintf("%s: Missing title field", label))
	} else if s, ok := title.(string); !ok {
		violations = append(violations, fmt.Sprintf("%s: Title is not a string", label))
	} else if strings.TrimSpace(s) == "" {
		violations = append(violations, fmt.Sprintf("%s: Empty title", label))
	}

	// price must be a non-negative number
	if price, ok := item["price"]; !ok {
		violations = append(violations, fmt.Sprintf("%s: Missing price field", label))
	} else if n, ok := asNumber(price); !ok {
		violations = append(violations, fmt.Sprintf("%s: Price is not a number", label))
	} else if n < 0 {
		violations = append(violations, fmt.Sprintf("%s: Negative price (%v)", label, price))
	}

	// rating.rate must be a number no greater than 5
	if rating, ok := item["rating"]; !ok {
		violations = append(violations, fmt.Sprintf("%s: Missing rating field", label))
	} else if obj, ok := rating.(map[string]interface{}); !ok {
		violations = append(violations, fmt.Sprintf("%s: Rating is not an object", label))
	} else if rate, ok := obj["rate"]; !ok {
		violations = append(violations, fmt.Sprintf("%s: Missing rating.rate field", label))
	} else if n, ok := asNumber(rate); !ok {
		violations = append(violations, fmt.Sprintf("%s: Rating.rate is not a number", label))
	} else if n > 5 {
		violations = append(violations, fmt.Sprintf("%s: Rating exceeds 5 (%v)", label, rate))
	}

	return violations
}

// itemLabel names an item by its numeric id, falling back to its position.
func itemLabel(item map[string]interface{}, position int) string {
	if id, ok := asNumber(item["id"]); ok {
		return fmt.Sprintf("Product %d", int(id))
	}
	return fmt.Sprintf("Product %d", position)
}

// asNumber reports whether a decoded JSON value is numeric. json.Unmarshal
// yields float64; int is accepted for values built in code.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// ItemResult holds the violations found for a single item.
type ItemResult struct {
	Label      string
	Violations []string
}

// Report summarizes a validation run.
type Report struct {
	Total           int
	Valid           int
	Defective       int
	TotalViolations int
	Results         []ItemResult
}

// Validate runs ValidateItem over every item and aggregates the results.
func Validate(items []map[string]interface{}) Report {
	report := Report{Total: len(items)}
	for i, item := range items {
		violations := ValidateItem(item, i+1)
		if len(violations) == 0 {
			report.Valid++
			continue
		}
		report.Defective++
		report.TotalViolations += len(violations)
		report.Results = append(report.Results, ItemResult{
			Label:      itemLabel(item, i+1),
			Violations: violations,
		})
	}
	return report
}

// Print renders the report: every violation grouped by item, then totals.
func (r Report) Print(w io.Writer) {
	for _, res := range r.Results {
		fmt.Fprintf(w, "%s has %d validation error(s):\n", res.Label, len(res.Violations))
		for _, v := range res.Violations {
			fmt.Fprintf(w, "  - %s\n", v)
		}
	}
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "Total products tested: %d\n", r.Total)
	fmt.Fprintf(w, "Valid products: %d\n", r.Valid)
	fmt.Fprintf(w, "Products with defects: %d\n", r.Defective)
	fmt.Fprintf(w, "Total validation errors: %d\n", r.TotalViolations)
	if r.TotalViolations == 0 {
		fmt.Fprintln(w, "No defects found. All products passed validation.")
	}
}

// Run executes the whole pipeline: fetch, require status 200, decode,
// validate, print. Any transport or decode failure is returned as a
// terminal error; nothing is retried.
func Run(w io.Writer, url string, timeout time.Duration) error {
	fmt.Fprintf(w, "Checking endpoint: %s\n", url)

	client := &http.Client{Timeout: timeout}
	status, body, err := Fetch(client, url)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("expected status code 200, got %d", status)
	}

	items, err := Decode(body)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Found %d products to validate\n", len(items))
	Validate(items).Print(w)
	return nil
}
